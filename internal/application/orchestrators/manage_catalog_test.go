package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"studiobook/internal/domain/classtemplate"
	"studiobook/internal/domain/member"
	"studiobook/internal/domain/session"
)

func TestExecuteSaveTemplate_Create(t *testing.T) {
	templates := newMockTemplateStore()

	tpl, err := ExecuteSaveTemplate(context.Background(), SaveTemplateInput{
		Name:        "Morning Flow",
		TeacherName: "Ana Reyes",
		Category:    classtemplate.CategoryYoga,
	}, SaveTemplateDeps{TemplateStore: templates, GenerateID: fixedID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tpl.ID != "test-id-001" {
		t.Errorf("id = %q", tpl.ID)
	}
	if tpl.ColorTheme != classtemplate.ColorIndigo {
		t.Errorf("color = %q, want default indigo", tpl.ColorTheme)
	}
}

func TestExecuteSaveTemplate_Update(t *testing.T) {
	templates := newMockTemplateStore()
	templates.templates["tpl-1"] = classtemplate.ClassTemplate{
		ID: "tpl-1", Name: "Morning Flow", TeacherName: "Ana",
		Category: classtemplate.CategoryYoga, ColorTheme: classtemplate.ColorRose,
	}

	tpl, err := ExecuteSaveTemplate(context.Background(), SaveTemplateInput{
		TemplateID:  "tpl-1",
		Name:        "Sunrise Flow",
		TeacherName: "Ana Reyes",
		Category:    classtemplate.CategoryYoga,
		ColorTheme:  classtemplate.ColorTeal,
	}, SaveTemplateDeps{TemplateStore: templates, GenerateID: fixedID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tpl.Name != "Sunrise Flow" || tpl.ColorTheme != classtemplate.ColorTeal {
		t.Errorf("tpl = %+v", tpl)
	}
}

func TestExecuteSaveTemplate_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   SaveTemplateInput
		wantErr error
	}{
		{"unknown id", SaveTemplateInput{TemplateID: "ghost", Name: "X", TeacherName: "Y", Category: classtemplate.CategoryYoga}, nil},
		{"bad category", SaveTemplateInput{Name: "X", TeacherName: "Y", Category: "swimming"}, classtemplate.ErrInvalidCategory},
		{"empty name", SaveTemplateInput{TeacherName: "Y", Category: classtemplate.CategoryYoga}, classtemplate.ErrEmptyName},
		{"bad color", SaveTemplateInput{Name: "X", TeacherName: "Y", Category: classtemplate.CategoryYoga, ColorTheme: "mauve"}, classtemplate.ErrInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			templates := newMockTemplateStore()
			_, err := ExecuteSaveTemplate(context.Background(), tt.input, SaveTemplateDeps{TemplateStore: templates, GenerateID: fixedID})
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func catalogFixtures() (*mockTemplateStore, *mockSessionStore, *mockBookingStore, *mockMemberStore) {
	templates := newMockTemplateStore()
	templates.templates["tpl-1"] = classtemplate.ClassTemplate{
		ID: "tpl-1", Name: "Morning Flow", TeacherName: "Ana",
		Category: classtemplate.CategoryYoga, ColorTheme: classtemplate.ColorRose,
	}
	sessions := newMockSessionStore()
	members := newMockMemberStore()
	bookings := newMockBookingStore(members)
	return templates, sessions, bookings, members
}

func TestExecuteScheduleSession_Create(t *testing.T) {
	templates, sessions, bookings, _ := catalogFixtures()

	sess, err := ExecuteScheduleSession(context.Background(), ScheduleSessionInput{
		ClassTemplateID: "tpl-1",
		StartTime:       fixedTime.Add(24 * time.Hour),
		DurationMinutes: 60,
		Capacity:        12,
	}, ScheduleSessionDeps{
		SessionStore: sessions, TemplateStore: templates,
		BookingCounter: bookings, GenerateID: fixedID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ID != "test-id-001" {
		t.Errorf("id = %q", sess.ID)
	}
	if _, ok := sessions.sessions["test-id-001"]; !ok {
		t.Error("session not persisted")
	}
}

func TestExecuteScheduleSession_UnknownTemplate(t *testing.T) {
	templates, sessions, bookings, _ := catalogFixtures()

	_, err := ExecuteScheduleSession(context.Background(), ScheduleSessionInput{
		ClassTemplateID: "ghost",
		StartTime:       fixedTime,
		DurationMinutes: 60,
		Capacity:        12,
	}, ScheduleSessionDeps{
		SessionStore: sessions, TemplateStore: templates,
		BookingCounter: bookings, GenerateID: fixedID,
	})
	if err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestExecuteScheduleSession_CapacityBelowBooked(t *testing.T) {
	templates, sessions, bookings, members := catalogFixtures()
	sessions.sessions["s1"] = session.Session{
		ID: "s1", ClassTemplateID: "tpl-1",
		StartTime: fixedTime, DurationMinutes: 60, Capacity: 12,
	}
	bookings.capacity["s1"] = 12
	for i, id := range []string{"m1", "m2", "m3"} {
		members.members[id] = testActiveMember(id)
		if err := bookings.Reserve(context.Background(), "b"+id, "s1", id, fixedTime); err != nil {
			t.Fatalf("fixture Reserve %d failed: %v", i, err)
		}
	}

	_, err := ExecuteScheduleSession(context.Background(), ScheduleSessionInput{
		SessionID:       "s1",
		ClassTemplateID: "tpl-1",
		StartTime:       fixedTime,
		DurationMinutes: 60,
		Capacity:        2,
	}, ScheduleSessionDeps{
		SessionStore: sessions, TemplateStore: templates,
		BookingCounter: bookings, GenerateID: fixedID,
	})
	if err == nil {
		t.Error("expected error when capacity drops below booked seats")
	}
}

func TestExecuteDeleteSession(t *testing.T) {
	templates, sessions, bookings, members := catalogFixtures()
	_ = templates
	sessions.sessions["s1"] = session.Session{
		ID: "s1", ClassTemplateID: "tpl-1",
		StartTime: fixedTime, DurationMinutes: 60, Capacity: 12,
	}
	bookings.capacity["s1"] = 12

	deps := DeleteSessionDeps{SessionStore: sessions, BookingCounter: bookings}

	// With an active booking the delete is refused.
	members.members["m1"] = testActiveMember("m1")
	if err := bookings.Reserve(context.Background(), "b1", "s1", "m1", fixedTime); err != nil {
		t.Fatalf("fixture Reserve failed: %v", err)
	}
	err := ExecuteDeleteSession(context.Background(), DeleteSessionInput{SessionID: "s1"}, deps)
	if !errors.Is(err, ErrSessionHasBookings) {
		t.Fatalf("err = %v, want ErrSessionHasBookings", err)
	}

	// After cancellation the delete goes through.
	if err := bookings.CancelAndRefund(context.Background(), "b1"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if err := ExecuteDeleteSession(context.Background(), DeleteSessionInput{SessionID: "s1"}, deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sessions.sessions["s1"]; ok {
		t.Error("session still present after delete")
	}
}

func testActiveMember(id string) member.Member {
	return member.Member{
		ID: id, Name: "Member " + id, Email: id + "@test.com",
		Status: member.StatusActive, RemainingSessions: 5, TotalSessions: 10,
		JoinDate: fixedTime,
	}
}
