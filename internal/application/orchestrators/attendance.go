package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// CheckInBookingInput carries input for the check-in orchestrator.
type CheckInBookingInput struct {
	BookingID string
}

// CheckInBookingDeps holds dependencies for CheckInBooking.
type CheckInBookingDeps struct {
	BookingStore BookingStore
	MemberStore  MemberStoreForBooking
	Now          func() time.Time
}

// ExecuteCheckInBooking marks a registered booking as attended and stamps
// the member's last visit. The session unit stays consumed.
// PRE: BookingID refers to a registered booking
// POST: Booking is checked_in; member's LastVisit is now
func ExecuteCheckInBooking(ctx context.Context, input CheckInBookingInput, deps CheckInBookingDeps) error {
	if input.BookingID == "" {
		return errors.New("booking ID is required")
	}

	b, err := deps.BookingStore.GetByID(ctx, input.BookingID)
	if err != nil {
		return errors.New("booking not found")
	}
	if err := b.CheckIn(); err != nil {
		return err
	}
	if err := deps.BookingStore.Save(ctx, b); err != nil {
		return err
	}

	// LastVisit is a convenience stamp; losing it on a crash here is fine.
	// The targeted update leaves the balance columns alone.
	_ = deps.MemberStore.StampLastVisit(ctx, b.MemberID, deps.Now())

	slog.Info("booking_event", "event", "member_checked_in", "booking_id", b.ID, "session_id", b.SessionID, "member_id", b.MemberID)
	return nil
}

// MarkNoShowInput carries input for the no-show orchestrator.
type MarkNoShowInput struct {
	BookingID string
}

// MarkNoShowDeps holds dependencies for MarkNoShow.
type MarkNoShowDeps struct {
	BookingStore BookingStore
}

// ExecuteMarkNoShow marks a registered booking as a no-show. The session
// unit is not refunded.
// PRE: BookingID refers to a registered booking
// POST: Booking is no_show; member balance is unchanged
func ExecuteMarkNoShow(ctx context.Context, input MarkNoShowInput, deps MarkNoShowDeps) error {
	if input.BookingID == "" {
		return errors.New("booking ID is required")
	}

	b, err := deps.BookingStore.GetByID(ctx, input.BookingID)
	if err != nil {
		return errors.New("booking not found")
	}
	if err := b.MarkNoShow(); err != nil {
		return err
	}
	if err := deps.BookingStore.Save(ctx, b); err != nil {
		return err
	}

	slog.Info("booking_event", "event", "no_show_recorded", "booking_id", b.ID, "session_id", b.SessionID, "member_id", b.MemberID)
	return nil
}
