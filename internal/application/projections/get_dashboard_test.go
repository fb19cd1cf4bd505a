package projections

import (
	"context"
	"testing"
	"time"

	bookingdomain "studiobook/internal/domain/booking"
	"studiobook/internal/domain/classtemplate"
	"studiobook/internal/domain/member"
	"studiobook/internal/domain/notice"
	"studiobook/internal/domain/session"
)

func TestQueryGetDashboard(t *testing.T) {
	members := newMockMemberStore()
	members.members["m1"] = member.Member{ID: "m1", Name: "A", Status: member.StatusActive}
	members.members["m2"] = member.Member{ID: "m2", Name: "B", Status: member.StatusActive}
	members.members["m3"] = member.Member{ID: "m3", Name: "C", Status: member.StatusExpired}

	templates := newMockTemplateStore()
	templates.templates["tpl-1"] = classtemplate.ClassTemplate{
		ID: "tpl-1", Name: "Morning Flow", TeacherName: "Ana Reyes",
		Category: classtemplate.CategoryYoga,
	}

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sessions := newMockSessionStore()
	sessions.sessions["s-today-1"] = session.Session{
		ID: "s-today-1", ClassTemplateID: "tpl-1",
		StartTime: day.Add(9 * time.Hour), DurationMinutes: 60, Capacity: 10,
	}
	sessions.sessions["s-today-2"] = session.Session{
		ID: "s-today-2", ClassTemplateID: "tpl-1",
		StartTime: day.Add(18 * time.Hour), DurationMinutes: 60, Capacity: 8,
	}
	sessions.sessions["s-tomorrow"] = session.Session{
		ID: "s-tomorrow", ClassTemplateID: "tpl-1",
		StartTime: day.AddDate(0, 0, 1).Add(9 * time.Hour), DurationMinutes: 60, Capacity: 10,
	}

	bookings := newMockBookingStore()
	bookings.bookings["b1"] = bookingdomain.Booking{
		ID: "b1", SessionID: "s-today-1", MemberID: "m1", Status: bookingdomain.StatusRegistered,
	}
	bookings.bookings["b2"] = bookingdomain.Booking{
		ID: "b2", SessionID: "s-today-1", MemberID: "m2", Status: bookingdomain.StatusCheckedIn,
	}
	bookings.bookings["b3"] = bookingdomain.Booking{
		ID: "b3", SessionID: "s-today-2", MemberID: "m1", Status: bookingdomain.StatusCancelled,
	}

	notices := &mockNoticeStore{notices: []notice.Notice{
		{ID: "n1", Status: notice.StatusPublished, Audience: notice.AudienceEveryone, Title: "One"},
		{ID: "n2", Status: notice.StatusDraft, Audience: notice.AudienceEveryone, Title: "Two"},
	}}

	result, err := QueryGetDashboard(context.Background(), GetDashboardDeps{
		MemberStore: members, NoticeStore: notices,
		SessionStore: sessions, TemplateStore: templates,
		BookingStore: bookings, Now: fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalMembers != 3 || result.ActiveMembers != 2 || result.ExpiredMembers != 1 {
		t.Errorf("member counts = %d/%d/%d", result.TotalMembers, result.ActiveMembers, result.ExpiredMembers)
	}
	if len(result.TodaySessions) != 2 {
		t.Fatalf("today sessions = %d, want 2", len(result.TodaySessions))
	}
	if result.TodaySessions[0].SessionID != "s-today-1" {
		t.Errorf("first session = %q", result.TodaySessions[0].SessionID)
	}
	if result.TodaySessions[0].BookedCount != 2 {
		t.Errorf("booked count = %d, want 2 (checked-in counts, cancelled does not)", result.TodaySessions[0].BookedCount)
	}
	if result.SeatsToday != 18 || result.BookedToday != 2 {
		t.Errorf("seats/booked today = %d/%d", result.SeatsToday, result.BookedToday)
	}
	if len(result.LatestNotices) != 1 || result.LatestNotices[0].ID != "n1" {
		t.Errorf("latest notices = %+v", result.LatestNotices)
	}
}
