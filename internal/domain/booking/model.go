package booking

import (
	"errors"
	"time"
)

// Booking status constants
const (
	StatusRegistered = "registered"
	StatusCheckedIn  = "checked_in"
	StatusNoShow     = "no_show"
	StatusCancelled  = "cancelled"
)

// ValidStatuses contains all valid booking status values.
var ValidStatuses = []string{StatusRegistered, StatusCheckedIn, StatusNoShow, StatusCancelled}

// ActiveStatuses are the statuses that hold a seat and count against
// session capacity. The store's uniqueness backstop covers exactly these.
var ActiveStatuses = []string{StatusRegistered, StatusCheckedIn}

// Domain errors
var (
	ErrEmptySessionID = errors.New("session ID cannot be empty")
	ErrEmptyMemberID  = errors.New("member ID cannot be empty")
	ErrInvalidStatus  = errors.New("status must be 'registered', 'checked_in', 'no_show', or 'cancelled'")
	ErrNotRegistered  = errors.New("booking is not in registered state")

	// Reservation failures surfaced by the store's atomic reserve.
	ErrInsufficientBalance = errors.New("member has no remaining sessions")
	ErrDuplicateBooking    = errors.New("member already has an active booking for this session")
	ErrSessionFull         = errors.New("session capacity is exhausted")
	ErrSessionNotFound     = errors.New("session does not exist")
)

// Booking reserves one seat in a session for a member.
type Booking struct {
	ID        string
	SessionID string
	MemberID  string
	Status    string
	CreatedAt time.Time
}

// Validate checks if the Booking has valid data.
// PRE: Booking struct is populated
// POST: Returns nil if valid, error otherwise
func (b *Booking) Validate() error {
	if b.SessionID == "" {
		return ErrEmptySessionID
	}
	if b.MemberID == "" {
		return ErrEmptyMemberID
	}
	if !isValidStatus(b.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// IsActive returns true if this booking holds a seat.
// INVARIANT: Booking fields are not mutated
func (b *Booking) IsActive() bool {
	return b.Status == StatusRegistered || b.Status == StatusCheckedIn
}

// CheckIn transitions a registered booking to checked-in.
// PRE: Status is registered
// POST: Status is checked_in
func (b *Booking) CheckIn() error {
	if b.Status != StatusRegistered {
		return ErrNotRegistered
	}
	b.Status = StatusCheckedIn
	return nil
}

// MarkNoShow transitions a registered booking to no-show.
// The consumed session unit is NOT refunded.
// PRE: Status is registered
// POST: Status is no_show
func (b *Booking) MarkNoShow() error {
	if b.Status != StatusRegistered {
		return ErrNotRegistered
	}
	b.Status = StatusNoShow
	return nil
}

func isValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
