package projections

import (
	"context"
	"testing"
	"time"

	bookingdomain "studiobook/internal/domain/booking"
	"studiobook/internal/domain/classtemplate"
	"studiobook/internal/domain/member"
	"studiobook/internal/domain/session"
)

func scheduleFixtures() (*mockSessionStore, *mockTemplateStore, *mockBookingStore, *mockMemberStore) {
	templates := newMockTemplateStore()
	templates.templates["tpl-yoga"] = classtemplate.ClassTemplate{
		ID: "tpl-yoga", Name: "Morning Flow", TeacherName: "Ana Reyes",
		Category: classtemplate.CategoryYoga, ColorTheme: classtemplate.ColorRose,
	}
	templates.templates["tpl-hiit"] = classtemplate.ClassTemplate{
		ID: "tpl-hiit", Name: "Lunch HIIT", TeacherName: "Sam Oduya",
		Category: classtemplate.CategoryHIIT, ColorTheme: classtemplate.ColorAmber,
	}

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sessions := newMockSessionStore()
	sessions.sessions["s-yoga"] = session.Session{
		ID: "s-yoga", ClassTemplateID: "tpl-yoga",
		StartTime: day.Add(7 * time.Hour), DurationMinutes: 60, Capacity: 10,
	}
	sessions.sessions["s-hiit"] = session.Session{
		ID: "s-hiit", ClassTemplateID: "tpl-hiit",
		StartTime: day.Add(12 * time.Hour + 30*time.Minute), DurationMinutes: 45, Capacity: 2,
	}
	sessions.sessions["s-tomorrow"] = session.Session{
		ID: "s-tomorrow", ClassTemplateID: "tpl-yoga",
		StartTime: day.AddDate(0, 0, 1), DurationMinutes: 60, Capacity: 10,
	}

	bookings := newMockBookingStore()
	bookings.bookings["b1"] = bookingdomain.Booking{
		ID: "b1", SessionID: "s-hiit", MemberID: "m1",
		Status: bookingdomain.StatusRegistered, CreatedAt: fixedTime,
	}
	bookings.bookings["b2"] = bookingdomain.Booking{
		ID: "b2", SessionID: "s-hiit", MemberID: "m2",
		Status: bookingdomain.StatusCancelled, CreatedAt: fixedTime,
	}

	members := newMockMemberStore()
	members.members["m1"] = member.Member{
		ID: "m1", AccountID: "acc-1", Name: "Iris", Email: "iris@test.com",
		Status: member.StatusActive, RemainingSessions: 5, TotalSessions: 10, JoinDate: fixedTime,
	}
	return sessions, templates, bookings, members
}

func TestQueryGetDaySchedule(t *testing.T) {
	sessions, templates, bookings, members := scheduleFixtures()

	result, err := QueryGetDaySchedule(context.Background(), GetDayScheduleQuery{
		Date: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}, GetDayScheduleDeps{
		SessionStore: sessions, TemplateStore: templates,
		BookingStore: bookings, MemberStore: members, Now: fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Date != "2026-03-02" {
		t.Errorf("date = %q", result.Date)
	}
	// Tomorrow's session is outside the window.
	if len(result.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(result.Entries))
	}
	// Sorted by start time: yoga 07:00 before hiit 12:30.
	if result.Entries[0].ClassName != "Morning Flow" {
		t.Errorf("first entry = %q", result.Entries[0].ClassName)
	}

	hiit := result.Entries[1]
	if hiit.BookedCount != 1 {
		t.Errorf("hiit booked = %d, want 1 (cancelled bookings excluded)", hiit.BookedCount)
	}
	if hiit.SpotsLeft != 1 {
		t.Errorf("hiit spots left = %d, want 1", hiit.SpotsLeft)
	}
	if hiit.ColorHex != classtemplate.ColorHex[classtemplate.ColorAmber] {
		t.Errorf("hiit color = %q", hiit.ColorHex)
	}
	// Noon fixture clock: 07:00 has started, 12:30 has not.
	if !result.Entries[0].HasStarted || hiit.HasStarted {
		t.Errorf("has started flags = %v/%v", result.Entries[0].HasStarted, hiit.HasStarted)
	}
}

func TestQueryGetDaySchedule_ViewerFlags(t *testing.T) {
	sessions, templates, bookings, members := scheduleFixtures()

	result, err := QueryGetDaySchedule(context.Background(), GetDayScheduleQuery{
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		AccountID: "acc-1",
	}, GetDayScheduleDeps{
		SessionStore: sessions, TemplateStore: templates,
		BookingStore: bookings, MemberStore: members, Now: fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, entry := range result.Entries {
		switch entry.SessionID {
		case "s-hiit":
			if !entry.BookedByViewer || entry.ViewerBookingID != "b1" {
				t.Errorf("hiit viewer flags = %v/%q", entry.BookedByViewer, entry.ViewerBookingID)
			}
		case "s-yoga":
			if entry.BookedByViewer {
				t.Error("yoga should not be flagged for viewer")
			}
		}
	}
}

func TestQueryGetDaySchedule_Filters(t *testing.T) {
	sessions, templates, bookings, members := scheduleFixtures()
	deps := GetDayScheduleDeps{
		SessionStore: sessions, TemplateStore: templates,
		BookingStore: bookings, MemberStore: members, Now: fixedNow,
	}
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		query    GetDayScheduleQuery
		wantIDs  []string
	}{
		{"category", GetDayScheduleQuery{Date: day, Category: classtemplate.CategoryHIIT}, []string{"s-hiit"}},
		{"search by class", GetDayScheduleQuery{Date: day, Search: "flow"}, []string{"s-yoga"}},
		{"search by teacher", GetDayScheduleQuery{Date: day, Search: "oduya"}, []string{"s-hiit"}},
		{"search no match", GetDayScheduleQuery{Date: day, Search: "spin"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := QueryGetDaySchedule(context.Background(), tt.query, deps)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result.Entries) != len(tt.wantIDs) {
				t.Fatalf("entries = %d, want %d", len(result.Entries), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if result.Entries[i].SessionID != want {
					t.Errorf("entry[%d] = %q, want %q", i, result.Entries[i].SessionID, want)
				}
			}
		})
	}
}
