package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	bookingdomain "studiobook/internal/domain/booking"
)

// CancelBookingInput carries input for the cancellation orchestrator.
type CancelBookingInput struct {
	BookingID string
	// MemberID of the caller; empty means an admin acting on any booking.
	MemberID string
}

// CancelBookingDeps holds dependencies for CancelBooking.
type CancelBookingDeps struct {
	BookingStore BookingStore
	SessionStore SessionStoreForBooking
	Now          func() time.Time
}

// ExecuteCancelBooking cancels a registered booking and refunds one session
// unit, capped at the member's pass size. Cancellation closes when the
// session starts; an admin can still cancel after that (manual corrections).
// PRE: BookingID is non-empty
// POST: Booking is cancelled and the unit refunded, or nothing changes
func ExecuteCancelBooking(ctx context.Context, input CancelBookingInput, deps CancelBookingDeps) error {
	if input.BookingID == "" {
		return errors.New("booking ID is required")
	}

	b, err := deps.BookingStore.GetByID(ctx, input.BookingID)
	if err != nil {
		return errors.New("booking not found")
	}
	if input.MemberID != "" {
		if b.MemberID != input.MemberID {
			return ErrNotYourBooking
		}
		sess, err := deps.SessionStore.GetByID(ctx, b.SessionID)
		if err != nil {
			return bookingdomain.ErrSessionNotFound
		}
		if sess.HasStarted(deps.Now()) {
			return ErrSessionStarted
		}
	}

	if err := deps.BookingStore.CancelAndRefund(ctx, input.BookingID); err != nil {
		return err
	}

	slog.Info("booking_event", "event", "booking_cancelled", "booking_id", input.BookingID, "session_id", b.SessionID, "member_id", b.MemberID)
	return nil
}
