package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"studiobook/internal/domain/account"
	"studiobook/internal/domain/classtemplate"
	"studiobook/internal/domain/member"
	"studiobook/internal/domain/session"

	"github.com/google/uuid"
)

// SeedAdminInput carries the bootstrap admin credentials.
type SeedAdminInput struct {
	Email    string
	Password string
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AccountStore AccountStore
}

// ExecuteSeedAdmin creates the bootstrap admin account when the account
// table is empty. Subsequent boots are no-ops.
// PRE: Database is migrated
// POST: At least one admin account exists
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) error {
	count, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed admin: count accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	acct := account.Account{
		ID:        uuid.New().String(),
		Email:     input.Email,
		Role:      account.RoleAdmin,
		CreatedAt: time.Now(),
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return fmt.Errorf("seed admin: set password: %w", err)
	}
	if err := acct.Validate(); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return fmt.Errorf("seed admin: save: %w", err)
	}

	slog.Info("seed_event", "event", "admin_seeded", "email", input.Email)
	return nil
}

// SeedDemoDeps holds stores needed for demo data seeding.
type SeedDemoDeps struct {
	TemplateStore TemplateStore
	SessionStore  SessionStore
	MemberStore   MemberStore
	AccountStore  AccountStore
}

// demoTemplates returns the class catalog seeded in demo mode.
func demoTemplates() []classtemplate.ClassTemplate {
	return []classtemplate.ClassTemplate{
		{ID: "demo-tpl-flow", Name: "Morning Flow", TeacherName: "Ana Reyes", Category: classtemplate.CategoryYoga, ColorTheme: classtemplate.ColorRose},
		{ID: "demo-tpl-core", Name: "Core Pilates", TeacherName: "Marta Lindt", Category: classtemplate.CategoryPilates, ColorTheme: classtemplate.ColorTeal},
		{ID: "demo-tpl-lift", Name: "Barbell Basics", TeacherName: "Jo Kessler", Category: classtemplate.CategoryStrength, ColorTheme: classtemplate.ColorSlate},
		{ID: "demo-tpl-hiit", Name: "Lunch HIIT", TeacherName: "Sam Oduya", Category: classtemplate.CategoryHIIT, ColorTheme: classtemplate.ColorAmber},
	}
}

// ExecuteSeedDemoData populates the catalog with demo templates, a week of
// sessions and two demo members. Idempotent: the fixed demo IDs make every
// Save an upsert.
// PRE: Database is migrated
// POST: Demo catalog, schedule and members exist
func ExecuteSeedDemoData(ctx context.Context, deps SeedDemoDeps) error {
	for _, tpl := range demoTemplates() {
		if err := deps.TemplateStore.Save(ctx, tpl); err != nil {
			return fmt.Errorf("seed demo template %s: %w", tpl.ID, err)
		}
	}

	// One session per template per weekday for the coming week.
	today := time.Now().Truncate(24 * time.Hour)
	hours := map[string]int{"demo-tpl-flow": 7, "demo-tpl-core": 9, "demo-tpl-hiit": 12, "demo-tpl-lift": 18}
	for day := 0; day < 7; day++ {
		for _, tpl := range demoTemplates() {
			sess := session.Session{
				ID:              fmt.Sprintf("demo-sess-%s-%d", tpl.ID, day),
				ClassTemplateID: tpl.ID,
				StartTime:       today.AddDate(0, 0, day).Add(time.Duration(hours[tpl.ID]) * time.Hour),
				DurationMinutes: 60,
				Capacity:        12,
			}
			if err := deps.SessionStore.Save(ctx, sess); err != nil {
				return fmt.Errorf("seed demo session %s: %w", sess.ID, err)
			}
		}
	}

	demoMembers := []struct {
		id, name, email, password string
		sessions                  int
	}{
		{"demo-member-iris", "Iris Vega", "iris@studiobook.test", "iris-demo-password", 10},
		{"demo-member-tom", "Tom Albrecht", "tom@studiobook.test", "tom-demo-password!", 5},
	}
	for _, dm := range demoMembers {
		acctID := dm.id + "-acct"
		acct := account.Account{
			ID:        acctID,
			Email:     dm.email,
			Role:      account.RoleMember,
			CreatedAt: time.Now(),
		}
		if err := acct.SetPassword(dm.password); err != nil {
			return fmt.Errorf("seed demo account %s: %w", dm.email, err)
		}
		if err := deps.AccountStore.Save(ctx, acct); err != nil {
			return fmt.Errorf("seed demo account %s: %w", dm.email, err)
		}

		m := member.Member{
			ID:                dm.id,
			AccountID:         acctID,
			Name:              dm.name,
			Email:             dm.email,
			Status:            member.StatusActive,
			RemainingSessions: dm.sessions,
			TotalSessions:     dm.sessions,
			JoinDate:          time.Now(),
		}
		if err := deps.MemberStore.Save(ctx, m); err != nil {
			return fmt.Errorf("seed demo member %s: %w", dm.id, err)
		}
	}

	slog.Info("seed_event", "event", "demo_data_seeded", "templates", len(demoTemplates()))
	return nil
}
