package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"studiobook/internal/adapters/email"
	"studiobook/internal/domain/account"
	"studiobook/internal/domain/member"
)

// MemberStore defines the interface for member persistence.
type MemberStore interface {
	Save(ctx context.Context, m member.Member) error
	GetByID(ctx context.Context, id string) (member.Member, error)
	GetByEmail(ctx context.Context, email string) (member.Member, error)
	AddSessions(ctx context.Context, id string, count int) (member.Member, error)
	UpdateProfile(ctx context.Context, id, name, email, status string) (member.Member, error)
}

// AccountStore defines the interface for account persistence.
type AccountStore interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	Count(ctx context.Context) (int, error)
}

// RegisterMemberInput carries input for the registration orchestrator.
type RegisterMemberInput struct {
	Name            string
	Email           string
	InitialSessions int    // starting pass size; zero is allowed
	Password        string // optional: non-empty creates a login account
}

// RegisterMemberDeps holds dependencies for RegisterMember.
type RegisterMemberDeps struct {
	MemberStore  MemberStore
	AccountStore AccountStore
	EmailSender  email.Sender // optional: nil skips the welcome email
	GenerateID   func() string
	Now          func() time.Time
	FromAddress  string
}

// ExecuteRegisterMember creates a member with a fresh pass, optionally with
// a linked login account.
// PRE: Name and Email are non-empty; InitialSessions >= 0
// POST: Member created with Status=active and balance == pass size
// INVARIANT: Email must be unique (enforced by store)
func ExecuteRegisterMember(ctx context.Context, input RegisterMemberInput, deps RegisterMemberDeps) (member.Member, error) {
	if input.InitialSessions < 0 {
		return member.Member{}, errors.New("initial sessions cannot be negative")
	}

	now := deps.Now()
	m := member.Member{
		ID:                deps.GenerateID(),
		Name:              input.Name,
		Email:             input.Email,
		Status:            member.StatusActive,
		RemainingSessions: input.InitialSessions,
		TotalSessions:     input.InitialSessions,
		JoinDate:          now,
	}

	if input.Password != "" {
		acct := account.Account{
			ID:        deps.GenerateID(),
			Email:     input.Email,
			Role:      account.RoleMember,
			CreatedAt: now,
		}
		if err := acct.SetPassword(input.Password); err != nil {
			return member.Member{}, err
		}
		if err := acct.Validate(); err != nil {
			return member.Member{}, err
		}
		if err := deps.AccountStore.Save(ctx, acct); err != nil {
			return member.Member{}, fmt.Errorf("create account: %w", err)
		}
		m.AccountID = acct.ID
	}

	if err := m.Validate(); err != nil {
		return member.Member{}, err
	}
	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return member.Member{}, err
	}

	slog.Info("member_event", "event", "member_registered", "member_id", m.ID, "name", m.Name, "initial_sessions", input.InitialSessions, "has_login", m.AccountID != "")

	if deps.EmailSender != nil {
		body := fmt.Sprintf("<p>Hi %s,</p><p>Welcome to the studio! Your pass has %d sessions on it.</p>", m.Name, m.RemainingSessions)
		_, err := deps.EmailSender.Send(ctx, email.SendRequest{
			To:      []string{m.Email},
			From:    deps.FromAddress,
			Subject: "Welcome to the studio",
			HTML:    body,
		})
		if err != nil {
			slog.Warn("member_event", "event", "welcome_email_failed", "member_id", m.ID, "error", err)
		}
	}

	return m, nil
}

// TopUpMemberInput carries input for the top-up orchestrator.
type TopUpMemberInput struct {
	MemberID string
	Count    int
}

// TopUpMemberDeps holds dependencies for TopUpMember.
type TopUpMemberDeps struct {
	MemberStore MemberStore
}

// ExecuteTopUpMember adds purchased sessions to a member's pass. An expired
// member becomes active again. The store applies the increment in place so
// a booking that commits concurrently keeps its decrement.
// PRE: Count > 0
// POST: Balance and pass size both grow by Count; Status is active
func ExecuteTopUpMember(ctx context.Context, input TopUpMemberInput, deps TopUpMemberDeps) (member.Member, error) {
	if input.MemberID == "" {
		return member.Member{}, errors.New("member ID is required")
	}
	if input.Count <= 0 {
		return member.Member{}, errors.New("top-up count must be positive")
	}

	m, err := deps.MemberStore.AddSessions(ctx, input.MemberID, input.Count)
	if err != nil {
		return member.Member{}, errors.New("member not found")
	}

	slog.Info("member_event", "event", "member_topped_up", "member_id", m.ID, "count", input.Count, "remaining", m.RemainingSessions)
	return m, nil
}

// UpdateMemberInput carries input for the member update orchestrator.
// Empty fields keep their current values.
type UpdateMemberInput struct {
	MemberID string
	Name     string
	Email    string
	Status   string
}

// UpdateMemberDeps holds dependencies for UpdateMember.
type UpdateMemberDeps struct {
	MemberStore MemberStore
}

// ExecuteUpdateMember applies a partial update to a member's profile fields.
// PRE: MemberID refers to an existing member
// POST: Non-empty input fields are persisted
func ExecuteUpdateMember(ctx context.Context, input UpdateMemberInput, deps UpdateMemberDeps) (member.Member, error) {
	if input.MemberID == "" {
		return member.Member{}, errors.New("member ID is required")
	}

	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return member.Member{}, errors.New("member not found")
	}
	if input.Name != "" {
		m.Name = input.Name
	}
	if input.Email != "" {
		m.Email = input.Email
	}
	if input.Status != "" {
		m.Status = input.Status
	}
	if err := m.Validate(); err != nil {
		return member.Member{}, err
	}
	// Targeted update: the balance columns stay out of the statement so a
	// booking that commits between the read above and this write survives.
	m, err = deps.MemberStore.UpdateProfile(ctx, m.ID, m.Name, m.Email, m.Status)
	if err != nil {
		return member.Member{}, err
	}

	slog.Info("member_event", "event", "member_updated", "member_id", m.ID)
	return m, nil
}
