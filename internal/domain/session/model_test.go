package session_test

import (
	"testing"
	"time"

	"studiobook/internal/domain/session"
)

// TestSession_Validate tests validation of Session.
func TestSession_Validate(t *testing.T) {
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		s       session.Session
		wantErr bool
	}{
		{
			name:    "valid session",
			s:       session.Session{ID: "1", ClassTemplateID: "ct-1", StartTime: start, DurationMinutes: 60, Capacity: 20},
			wantErr: false,
		},
		{
			name:    "empty template ID",
			s:       session.Session{ID: "2", ClassTemplateID: "", StartTime: start, DurationMinutes: 60, Capacity: 20},
			wantErr: true,
		},
		{
			name:    "zero start time",
			s:       session.Session{ID: "3", ClassTemplateID: "ct-1", DurationMinutes: 60, Capacity: 20},
			wantErr: true,
		},
		{
			name:    "duration too short",
			s:       session.Session{ID: "4", ClassTemplateID: "ct-1", StartTime: start, DurationMinutes: 10, Capacity: 20},
			wantErr: true,
		},
		{
			name:    "duration too long",
			s:       session.Session{ID: "5", ClassTemplateID: "ct-1", StartTime: start, DurationMinutes: 300, Capacity: 20},
			wantErr: true,
		},
		{
			name:    "zero capacity",
			s:       session.Session{ID: "6", ClassTemplateID: "ct-1", StartTime: start, DurationMinutes: 60, Capacity: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Session.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestSession_EndTime verifies end time derivation from duration.
func TestSession_EndTime(t *testing.T) {
	start := time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC)
	s := session.Session{ClassTemplateID: "ct-1", StartTime: start, DurationMinutes: 75, Capacity: 20}

	want := time.Date(2026, 3, 2, 18, 45, 0, 0, time.UTC)
	if got := s.EndTime(); !got.Equal(want) {
		t.Errorf("EndTime() = %v, want %v", got, want)
	}
}

// TestSession_HasStarted verifies the start boundary is inclusive.
func TestSession_HasStarted(t *testing.T) {
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	s := session.Session{StartTime: start}

	if s.HasStarted(start.Add(-time.Minute)) {
		t.Error("HasStarted() = true one minute before start")
	}
	if !s.HasStarted(start) {
		t.Error("HasStarted() = false exactly at start")
	}
	if !s.HasStarted(start.Add(time.Hour)) {
		t.Error("HasStarted() = false after start")
	}
}
