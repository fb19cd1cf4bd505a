package booking

import (
	"context"
	"time"

	domain "studiobook/internal/domain/booking"
)

// Store persists Booking state and owns the seat-reservation transaction.
//
// Reserve and CancelAndRefund mutate a booking row and the member's balance
// together. They are the only write paths that touch both tables, and each
// runs as one SQLite transaction so the capacity and balance checks are
// evaluated against committed state, never against a value the caller read
// earlier.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Booking, error)
	Save(ctx context.Context, value domain.Booking) error
	ListByMember(ctx context.Context, memberID string, activeOnly bool) ([]domain.Booking, error)
	ListBySession(ctx context.Context, sessionID string) ([]domain.Booking, error)
	CountActiveBySession(ctx context.Context, sessionID string) (int, error)
	CountActiveBySessions(ctx context.Context, sessionIDs []string) (map[string]int, error)
	ActiveBookingID(ctx context.Context, sessionID, memberID string) (string, error)

	// Reserve atomically: decrements the member's balance if positive,
	// inserts a registered booking if the session has a free seat, and
	// relies on the active-booking unique index as the duplicate backstop.
	// On any failure nothing is written. Failure errors: domain
	// ErrInsufficientBalance, ErrSessionFull, ErrDuplicateBooking,
	// ErrSessionNotFound.
	Reserve(ctx context.Context, bookingID, sessionID, memberID string, now time.Time) error

	// CancelAndRefund atomically cancels a registered booking and refunds
	// one session unit, capped at the member's pass size.
	CancelAndRefund(ctx context.Context, bookingID string) error
}
