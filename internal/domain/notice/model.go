package notice

import (
	"errors"
	"time"
)

// Notice audience constants
const (
	AudienceEveryone = "everyone"
	AudienceMembers  = "members"
)

// Notice statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Domain errors
var (
	ErrEmptyTitle       = errors.New("notice title cannot be empty")
	ErrEmptyContent     = errors.New("notice content cannot be empty")
	ErrInvalidAudience  = errors.New("audience must be 'everyone' or 'members'")
	ErrInvalidStatus    = errors.New("notice status must be 'draft' or 'published'")
	ErrAlreadyPublished = errors.New("notice is already published")
)

// ValidAudiences contains all valid audience values.
var ValidAudiences = []string{AudienceEveryone, AudienceMembers}

// ValidStatuses contains all valid notice statuses.
var ValidStatuses = []string{StatusDraft, StatusPublished}

// Notice is a studio announcement shown in the booking and profile views.
// Content supports Markdown formatting; the API renders it to safe HTML.
type Notice struct {
	ID          string
	Status      string
	Audience    string
	Title       string
	Content     string // Markdown content
	CreatedBy   string // AccountID of creator
	CreatedAt   time.Time
	PublishedAt time.Time
}

// Validate checks if the Notice has valid data.
// PRE: Notice struct is populated
// POST: Returns nil if valid, error otherwise
func (n *Notice) Validate() error {
	if n.Title == "" {
		return ErrEmptyTitle
	}
	if n.Content == "" {
		return ErrEmptyContent
	}
	if !isValidAudience(n.Audience) {
		return ErrInvalidAudience
	}
	if !isValidStatus(n.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// Publish transitions a draft notice to published.
// PRE: Status is draft
// POST: Status is published, PublishedAt is set
func (n *Notice) Publish(now time.Time) error {
	if n.Status == StatusPublished {
		return ErrAlreadyPublished
	}
	n.Status = StatusPublished
	n.PublishedAt = now
	return nil
}

// IsPublished returns true if the notice is visible to its audience.
// INVARIANT: Notice fields are not mutated
func (n *Notice) IsPublished() bool {
	return n.Status == StatusPublished
}

func isValidAudience(audience string) bool {
	for _, a := range ValidAudiences {
		if a == audience {
			return true
		}
	}
	return false
}

func isValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
