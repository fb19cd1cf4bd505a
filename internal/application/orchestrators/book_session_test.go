package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingdomain "studiobook/internal/domain/booking"
	"studiobook/internal/domain/classtemplate"
	"studiobook/internal/domain/member"
	"studiobook/internal/domain/session"
)

func bookingFixtures() (*mockMemberStore, *mockSessionStore, *mockTemplateStore, *mockBookingStore) {
	members := newMockMemberStore()
	members.members["m1"] = member.Member{
		ID: "m1", Name: "Iris Vega", Email: "iris@test.com",
		Status: member.StatusActive, RemainingSessions: 5, TotalSessions: 10,
		JoinDate: fixedTime.AddDate(0, -1, 0),
	}

	sessions := newMockSessionStore()
	sessions.sessions["s1"] = session.Session{
		ID: "s1", ClassTemplateID: "tpl-1",
		StartTime:       fixedTime.Add(2 * time.Hour),
		DurationMinutes: 60, Capacity: 8,
	}

	templates := newMockTemplateStore()
	templates.templates["tpl-1"] = classtemplate.ClassTemplate{
		ID: "tpl-1", Name: "Morning Flow", TeacherName: "Ana",
		Category: classtemplate.CategoryYoga, ColorTheme: classtemplate.ColorRose,
	}

	bookings := newMockBookingStore(members)
	bookings.capacity["s1"] = 8
	return members, sessions, templates, bookings
}

func TestExecuteBookSession_Success(t *testing.T) {
	members, sessions, templates, bookings := bookingFixtures()
	sender := &mockEmailSender{}

	result, err := ExecuteBookSession(context.Background(), BookSessionInput{
		SessionID: "s1", MemberID: "m1",
	}, BookSessionDeps{
		MemberStore:   members,
		SessionStore:  sessions,
		TemplateStore: templates,
		BookingStore:  bookings,
		EmailSender:   sender,
		GenerateID:    fixedID,
		Now:           fixedNow,
		FromAddress:   "noreply@studiobook.test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Booking.Status != bookingdomain.StatusRegistered {
		t.Errorf("status = %q, want registered", result.Booking.Status)
	}
	if result.RemainingSessions != 4 {
		t.Errorf("remaining = %d, want 4", result.RemainingSessions)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("emails sent = %d, want 1", len(sender.sent))
	}
	if sender.sent[0].To[0] != "iris@test.com" {
		t.Errorf("email to = %v", sender.sent[0].To)
	}
}

func TestExecuteBookSession_EmailFailureDoesNotUnwind(t *testing.T) {
	members, sessions, templates, bookings := bookingFixtures()
	sender := &mockEmailSender{sendErr: errors.New("provider down")}

	result, err := ExecuteBookSession(context.Background(), BookSessionInput{
		SessionID: "s1", MemberID: "m1",
	}, BookSessionDeps{
		MemberStore:   members,
		SessionStore:  sessions,
		TemplateStore: templates,
		BookingStore:  bookings,
		EmailSender:   sender,
		GenerateID:    fixedID,
		Now:           fixedNow,
	})
	if err != nil {
		t.Fatalf("booking should succeed despite email failure, got %v", err)
	}
	if result.RemainingSessions != 4 {
		t.Errorf("remaining = %d, want 4", result.RemainingSessions)
	}
}

func TestExecuteBookSession_Failures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*mockMemberStore, *mockSessionStore, *mockBookingStore)
		input   BookSessionInput
		wantErr error
	}{
		{
			name:    "empty session ID",
			setup:   func(*mockMemberStore, *mockSessionStore, *mockBookingStore) {},
			input:   BookSessionInput{MemberID: "m1"},
			wantErr: bookingdomain.ErrEmptySessionID,
		},
		{
			name:    "empty member ID",
			setup:   func(*mockMemberStore, *mockSessionStore, *mockBookingStore) {},
			input:   BookSessionInput{SessionID: "s1"},
			wantErr: bookingdomain.ErrEmptyMemberID,
		},
		{
			name: "inactive member",
			setup: func(members *mockMemberStore, _ *mockSessionStore, _ *mockBookingStore) {
				m := members.members["m1"]
				m.Status = member.StatusExpired
				members.members["m1"] = m
			},
			input:   BookSessionInput{SessionID: "s1", MemberID: "m1"},
			wantErr: member.ErrNotActive,
		},
		{
			name: "session already started",
			setup: func(_ *mockMemberStore, sessions *mockSessionStore, _ *mockBookingStore) {
				s := sessions.sessions["s1"]
				s.StartTime = fixedTime.Add(-time.Hour)
				sessions.sessions["s1"] = s
			},
			input:   BookSessionInput{SessionID: "s1", MemberID: "m1"},
			wantErr: ErrSessionStarted,
		},
		{
			name: "no balance",
			setup: func(members *mockMemberStore, _ *mockSessionStore, _ *mockBookingStore) {
				m := members.members["m1"]
				m.RemainingSessions = 0
				members.members["m1"] = m
			},
			input:   BookSessionInput{SessionID: "s1", MemberID: "m1"},
			wantErr: bookingdomain.ErrInsufficientBalance,
		},
		{
			name: "session full",
			setup: func(_ *mockMemberStore, _ *mockSessionStore, bookings *mockBookingStore) {
				bookings.capacity["s1"] = 0
			},
			input:   BookSessionInput{SessionID: "s1", MemberID: "m1"},
			wantErr: bookingdomain.ErrSessionFull,
		},
		{
			name: "duplicate booking",
			setup: func(_ *mockMemberStore, _ *mockSessionStore, bookings *mockBookingStore) {
				bookings.bookings["existing"] = bookingdomain.Booking{
					ID: "existing", SessionID: "s1", MemberID: "m1",
					Status: bookingdomain.StatusRegistered,
				}
			},
			input:   BookSessionInput{SessionID: "s1", MemberID: "m1"},
			wantErr: bookingdomain.ErrDuplicateBooking,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members, sessions, templates, bookings := bookingFixtures()
			tt.setup(members, sessions, bookings)

			_, err := ExecuteBookSession(context.Background(), tt.input, BookSessionDeps{
				MemberStore:   members,
				SessionStore:  sessions,
				TemplateStore: templates,
				BookingStore:  bookings,
				GenerateID:    fixedID,
				Now:           fixedNow,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExecuteBookSession_UnknownSession(t *testing.T) {
	members, sessions, templates, bookings := bookingFixtures()

	_, err := ExecuteBookSession(context.Background(), BookSessionInput{
		SessionID: "ghost", MemberID: "m1",
	}, BookSessionDeps{
		MemberStore:   members,
		SessionStore:  sessions,
		TemplateStore: templates,
		BookingStore:  bookings,
		GenerateID:    fixedID,
		Now:           fixedNow,
	})
	if !errors.Is(err, bookingdomain.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}
