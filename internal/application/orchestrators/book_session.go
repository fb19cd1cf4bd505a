package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"studiobook/internal/adapters/email"
	bookingdomain "studiobook/internal/domain/booking"
	"studiobook/internal/domain/classtemplate"
	"studiobook/internal/domain/member"
	"studiobook/internal/domain/session"
)

// MemberStoreForBooking defines the member store interface needed by booking orchestrators.
type MemberStoreForBooking interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
	StampLastVisit(ctx context.Context, id string, at time.Time) error
}

// SessionStoreForBooking defines the session store interface needed by booking orchestrators.
type SessionStoreForBooking interface {
	GetByID(ctx context.Context, id string) (session.Session, error)
}

// TemplateStoreForBooking defines the template store interface needed for confirmation emails.
type TemplateStoreForBooking interface {
	GetByID(ctx context.Context, id string) (classtemplate.ClassTemplate, error)
}

// BookingStore defines the interface for booking persistence.
type BookingStore interface {
	GetByID(ctx context.Context, id string) (bookingdomain.Booking, error)
	Save(ctx context.Context, b bookingdomain.Booking) error
	Reserve(ctx context.Context, bookingID, sessionID, memberID string, now time.Time) error
	CancelAndRefund(ctx context.Context, bookingID string) error
}

var (
	ErrSessionStarted = errors.New("session has already started")
	ErrNotYourBooking = errors.New("booking belongs to another member")
)

// BookSessionInput carries input for the booking orchestrator.
type BookSessionInput struct {
	SessionID string
	MemberID  string
}

// BookSessionResult carries the created booking and the member's new balance.
type BookSessionResult struct {
	Booking           bookingdomain.Booking
	RemainingSessions int
}

// BookSessionDeps holds dependencies for BookSession.
type BookSessionDeps struct {
	MemberStore   MemberStoreForBooking
	SessionStore  SessionStoreForBooking
	TemplateStore TemplateStoreForBooking
	BookingStore  BookingStore
	EmailSender   email.Sender // optional: nil skips the confirmation email
	GenerateID    func() string
	Now           func() time.Time
	FromAddress   string
}

// ExecuteBookSession books one seat in a session for a member.
//
// The store's Reserve is the single authority on balance, capacity and
// duplicates. The member and session reads before it only produce friendlier
// errors for states that cannot race (unknown member, session in the past);
// every decision that concurrent requests could invalidate is made inside
// the reservation transaction.
//
// PRE: SessionID and MemberID are non-empty
// POST: On success a registered booking exists and the balance is one lower;
// on error nothing is written
func ExecuteBookSession(ctx context.Context, input BookSessionInput, deps BookSessionDeps) (BookSessionResult, error) {
	if input.SessionID == "" {
		return BookSessionResult{}, bookingdomain.ErrEmptySessionID
	}
	if input.MemberID == "" {
		return BookSessionResult{}, bookingdomain.ErrEmptyMemberID
	}

	now := deps.Now()

	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return BookSessionResult{}, errors.New("member not found")
	}
	if !m.IsActive() {
		return BookSessionResult{}, member.ErrNotActive
	}

	sess, err := deps.SessionStore.GetByID(ctx, input.SessionID)
	if err != nil {
		return BookSessionResult{}, bookingdomain.ErrSessionNotFound
	}
	if sess.HasStarted(now) {
		return BookSessionResult{}, ErrSessionStarted
	}

	bookingID := deps.GenerateID()
	if err := deps.BookingStore.Reserve(ctx, bookingID, input.SessionID, input.MemberID, now); err != nil {
		slog.Info("booking_event", "event", "booking_rejected", "session_id", input.SessionID, "member_id", input.MemberID, "reason", err.Error())
		return BookSessionResult{}, err
	}

	b, err := deps.BookingStore.GetByID(ctx, bookingID)
	if err != nil {
		return BookSessionResult{}, err
	}
	m, err = deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return BookSessionResult{}, err
	}

	slog.Info("booking_event", "event", "booking_created", "booking_id", bookingID, "session_id", input.SessionID, "member_id", input.MemberID, "remaining", m.RemainingSessions)

	// Best-effort confirmation; a failed email never unwinds the booking.
	if deps.EmailSender != nil {
		sendBookingConfirmation(ctx, deps, m, sess)
	}

	return BookSessionResult{Booking: b, RemainingSessions: m.RemainingSessions}, nil
}

func sendBookingConfirmation(ctx context.Context, deps BookSessionDeps, m member.Member, sess session.Session) {
	className := "your class"
	if deps.TemplateStore != nil {
		if tpl, err := deps.TemplateStore.GetByID(ctx, sess.ClassTemplateID); err == nil {
			className = tpl.Name + " with " + tpl.TeacherName
		}
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>You're booked into %s on %s.</p><p>Sessions left on your pass: %d.</p>",
		m.Name, className, sess.StartTime.Format("Mon 2 Jan 15:04"), m.RemainingSessions)

	_, err := deps.EmailSender.Send(ctx, email.SendRequest{
		To:      []string{m.Email},
		From:    deps.FromAddress,
		Subject: "Booking confirmed",
		HTML:    body,
	})
	if err != nil {
		slog.Warn("booking_event", "event", "confirmation_email_failed", "member_id", m.ID, "error", err)
	}
}
