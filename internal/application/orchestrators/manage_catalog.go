package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"studiobook/internal/domain/classtemplate"
	"studiobook/internal/domain/session"
)

// TemplateStore defines the interface for class template persistence.
type TemplateStore interface {
	GetByID(ctx context.Context, id string) (classtemplate.ClassTemplate, error)
	Save(ctx context.Context, t classtemplate.ClassTemplate) error
	Delete(ctx context.Context, id string) error
}

// SessionStore defines the interface for session persistence.
type SessionStore interface {
	GetByID(ctx context.Context, id string) (session.Session, error)
	Save(ctx context.Context, s session.Session) error
	Delete(ctx context.Context, id string) error
}

// BookingCounter reports how many seats a session currently holds.
type BookingCounter interface {
	CountActiveBySession(ctx context.Context, sessionID string) (int, error)
}

var ErrSessionHasBookings = errors.New("session still has active bookings")

// SaveTemplateInput carries input for creating or updating a class template.
// An empty TemplateID creates a new template.
type SaveTemplateInput struct {
	TemplateID  string
	Name        string
	TeacherName string
	Category    string
	ColorTheme  string
}

// SaveTemplateDeps holds dependencies for SaveTemplate.
type SaveTemplateDeps struct {
	TemplateStore TemplateStore
	GenerateID    func() string
}

// ExecuteSaveTemplate creates or updates a class template.
// PRE: Name, TeacherName and Category are non-empty
// POST: Template is persisted; a new ID is generated when TemplateID is empty
func ExecuteSaveTemplate(ctx context.Context, input SaveTemplateInput, deps SaveTemplateDeps) (classtemplate.ClassTemplate, error) {
	tpl := classtemplate.ClassTemplate{
		ID:          input.TemplateID,
		Name:        input.Name,
		TeacherName: input.TeacherName,
		Category:    input.Category,
		ColorTheme:  input.ColorTheme,
	}
	created := tpl.ID == ""
	if created {
		tpl.ID = deps.GenerateID()
	} else {
		if _, err := deps.TemplateStore.GetByID(ctx, tpl.ID); err != nil {
			return classtemplate.ClassTemplate{}, errors.New("class template not found")
		}
	}
	if tpl.ColorTheme == "" {
		tpl.ColorTheme = classtemplate.ColorIndigo
	}

	if err := tpl.Validate(); err != nil {
		return classtemplate.ClassTemplate{}, err
	}
	if err := deps.TemplateStore.Save(ctx, tpl); err != nil {
		return classtemplate.ClassTemplate{}, err
	}

	slog.Info("catalog_event", "event", "template_saved", "template_id", tpl.ID, "name", tpl.Name, "created", created)
	return tpl, nil
}

// ScheduleSessionInput carries input for scheduling a class session.
// An empty SessionID creates a new session.
type ScheduleSessionInput struct {
	SessionID       string
	ClassTemplateID string
	StartTime       time.Time
	DurationMinutes int
	Capacity        int
}

// ScheduleSessionDeps holds dependencies for ScheduleSession.
type ScheduleSessionDeps struct {
	SessionStore   SessionStore
	TemplateStore  TemplateStore
	BookingCounter BookingCounter
	GenerateID     func() string
}

// ExecuteScheduleSession creates or updates a class session.
// Capacity can never be lowered below the number of seats already booked.
// PRE: ClassTemplateID refers to an existing template
// POST: Session is persisted
func ExecuteScheduleSession(ctx context.Context, input ScheduleSessionInput, deps ScheduleSessionDeps) (session.Session, error) {
	if _, err := deps.TemplateStore.GetByID(ctx, input.ClassTemplateID); err != nil {
		return session.Session{}, errors.New("class template not found")
	}

	sess := session.Session{
		ID:              input.SessionID,
		ClassTemplateID: input.ClassTemplateID,
		StartTime:       input.StartTime,
		DurationMinutes: input.DurationMinutes,
		Capacity:        input.Capacity,
	}
	created := sess.ID == ""
	if created {
		sess.ID = deps.GenerateID()
	} else {
		if _, err := deps.SessionStore.GetByID(ctx, sess.ID); err != nil {
			return session.Session{}, errors.New("session not found")
		}
		booked, err := deps.BookingCounter.CountActiveBySession(ctx, sess.ID)
		if err != nil {
			return session.Session{}, err
		}
		if sess.Capacity < booked {
			return session.Session{}, errors.New("capacity cannot drop below booked seats")
		}
	}

	if err := sess.Validate(); err != nil {
		return session.Session{}, err
	}
	if err := deps.SessionStore.Save(ctx, sess); err != nil {
		return session.Session{}, err
	}

	slog.Info("catalog_event", "event", "session_scheduled", "session_id", sess.ID, "template_id", sess.ClassTemplateID, "start", sess.StartTime, "created", created)
	return sess, nil
}

// DeleteSessionInput carries input for deleting a session.
type DeleteSessionInput struct {
	SessionID string
}

// DeleteSessionDeps holds dependencies for DeleteSession.
type DeleteSessionDeps struct {
	SessionStore   SessionStore
	BookingCounter BookingCounter
}

// ExecuteDeleteSession removes a session from the schedule. A session with
// active bookings must have them cancelled first so the units are refunded.
// PRE: SessionID refers to an existing session
// POST: Session row is deleted, or ErrSessionHasBookings
func ExecuteDeleteSession(ctx context.Context, input DeleteSessionInput, deps DeleteSessionDeps) error {
	if input.SessionID == "" {
		return errors.New("session ID is required")
	}
	if _, err := deps.SessionStore.GetByID(ctx, input.SessionID); err != nil {
		return errors.New("session not found")
	}

	booked, err := deps.BookingCounter.CountActiveBySession(ctx, input.SessionID)
	if err != nil {
		return err
	}
	if booked > 0 {
		return ErrSessionHasBookings
	}

	if err := deps.SessionStore.Delete(ctx, input.SessionID); err != nil {
		return err
	}
	slog.Info("catalog_event", "event", "session_deleted", "session_id", input.SessionID)
	return nil
}
