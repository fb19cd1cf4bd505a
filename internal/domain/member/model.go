package member

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Membership status constants
const (
	StatusActive  = "active"
	StatusExpired = "expired"
	StatusPending = "pending"
)

// ValidStatuses contains all valid membership status values.
var ValidStatuses = []string{StatusActive, StatusExpired, StatusPending}

// Domain errors
var (
	ErrEmptyName          = errors.New("member name cannot be empty")
	ErrInvalidEmail       = errors.New("member email must be valid")
	ErrInvalidStatus      = errors.New("status must be 'active', 'expired', or 'pending'")
	ErrNegativeBalance    = errors.New("remaining sessions cannot be negative")
	ErrBalanceExceedsPass = errors.New("remaining sessions cannot exceed total sessions")
	ErrNoBalance          = errors.New("member has no remaining sessions")
	ErrNotActive          = errors.New("member is not active")
)

// Member holds state for a studio member and their session pass.
// RemainingSessions is the live balance: decremented on booking,
// refunded on cancellation, topped up by an admin.
type Member struct {
	ID                string
	AccountID         string
	Name              string
	Email             string
	Status            string
	RemainingSessions int
	TotalSessions     int
	JoinDate          time.Time
	LastVisit         time.Time
}

// Validate checks if the Member has valid data.
// PRE: Member struct is populated
// POST: Returns nil if valid, error otherwise
// INVARIANT: 0 <= RemainingSessions <= TotalSessions
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if len(m.Name) > MaxNameLength {
		return errors.New("member name cannot exceed 100 characters")
	}
	if !strings.Contains(m.Email, "@") {
		return ErrInvalidEmail
	}
	if !isValidStatus(m.Status) {
		return ErrInvalidStatus
	}
	if m.RemainingSessions < 0 {
		return ErrNegativeBalance
	}
	if m.RemainingSessions > m.TotalSessions {
		return ErrBalanceExceedsPass
	}
	return nil
}

// IsActive returns true if the member can currently book classes.
// INVARIANT: Status field is not mutated
func (m *Member) IsActive() bool {
	return m.Status == StatusActive
}

// CanBook checks whether this member may attempt a booking.
// PRE: Member struct is populated
// POST: Returns nil if active with balance, error naming the blocker otherwise
func (m *Member) CanBook() error {
	if !m.IsActive() {
		return ErrNotActive
	}
	if m.RemainingSessions <= 0 {
		return ErrNoBalance
	}
	return nil
}

// TopUp adds purchased sessions to both the balance and the pass size.
// PRE: count > 0
// POST: RemainingSessions and TotalSessions both grow by count
func (m *Member) TopUp(count int) error {
	if count <= 0 {
		return errors.New("top-up count must be positive")
	}
	m.RemainingSessions += count
	m.TotalSessions += count
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
