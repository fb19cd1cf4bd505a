package session

import (
	"errors"
	"time"
)

// Duration and capacity bounds for a scheduled session.
const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 240
	MaxCapacity        = 200
)

// Domain errors
var (
	ErrEmptyTemplateID  = errors.New("class template ID cannot be empty")
	ErrZeroStartTime    = errors.New("start time must be set")
	ErrInvalidDuration  = errors.New("duration must be between 15 and 240 minutes")
	ErrInvalidCapacity  = errors.New("capacity must be between 1 and 200")
)

// Session is one scheduled occurrence of a class template.
type Session struct {
	ID              string
	ClassTemplateID string
	StartTime       time.Time
	DurationMinutes int
	Capacity        int
}

// Validate checks if the Session has valid data.
// PRE: Session struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Session) Validate() error {
	if s.ClassTemplateID == "" {
		return ErrEmptyTemplateID
	}
	if s.StartTime.IsZero() {
		return ErrZeroStartTime
	}
	if s.DurationMinutes < MinDurationMinutes || s.DurationMinutes > MaxDurationMinutes {
		return ErrInvalidDuration
	}
	if s.Capacity < 1 || s.Capacity > MaxCapacity {
		return ErrInvalidCapacity
	}
	return nil
}

// EndTime returns the moment the session finishes.
// INVARIANT: Session fields are not mutated
func (s *Session) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// HasStarted reports whether the session has already begun at the given time.
// INVARIANT: Session fields are not mutated
func (s *Session) HasStarted(now time.Time) bool {
	return !now.Before(s.StartTime)
}
