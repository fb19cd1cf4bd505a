package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"studiobook/internal/adapters/email"
	"studiobook/internal/application/markdown"
	"studiobook/internal/domain/member"
	"studiobook/internal/domain/notice"
)

// NoticeStore defines the store interface needed by notice orchestrators.
type NoticeStore interface {
	GetByID(ctx context.Context, id string) (notice.Notice, error)
	Save(ctx context.Context, n notice.Notice) error
}

// CreateNoticeInput carries input for the create notice orchestrator.
type CreateNoticeInput struct {
	Title     string
	Content   string // Markdown
	Audience  string
	CreatedBy string // AccountID of creator
}

// CreateNoticeDeps holds dependencies for CreateNotice.
type CreateNoticeDeps struct {
	NoticeStore NoticeStore
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteCreateNotice creates a new notice in draft status.
// PRE: Title, Content and CreatedBy must be non-empty
// POST: Notice created in draft status with generated ID
func ExecuteCreateNotice(ctx context.Context, input CreateNoticeInput, deps CreateNoticeDeps) (notice.Notice, error) {
	if input.CreatedBy == "" {
		return notice.Notice{}, errors.New("creator account ID is required")
	}

	audience := input.Audience
	if audience == "" {
		audience = notice.AudienceEveryone
	}

	n := notice.Notice{
		ID:        deps.GenerateID(),
		Status:    notice.StatusDraft,
		Audience:  audience,
		Title:     input.Title,
		Content:   input.Content,
		CreatedBy: input.CreatedBy,
		CreatedAt: deps.Now(),
	}

	if err := n.Validate(); err != nil {
		return notice.Notice{}, err
	}
	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}

	slog.Info("notice_event", "event", "notice_created", "notice_id", n.ID, "audience", n.Audience, "created_by", input.CreatedBy)
	return n, nil
}

// PublishNoticeInput carries input for the publish orchestrator.
type PublishNoticeInput struct {
	NoticeID string
}

// PublishNoticeDeps holds dependencies for PublishNotice.
type PublishNoticeDeps struct {
	NoticeStore NoticeStore
	// ListRecipients returns the members emailed on publication.
	// nil skips the fan-out entirely.
	ListRecipients func(ctx context.Context) ([]member.Member, error)
	EmailSender    email.Sender
	Now            func() time.Time
	FromAddress    string
}

// ExecutePublishNotice publishes a draft notice and fans it out to active
// members by email. The fan-out is best effort; the notice stays published
// even when every send fails.
// PRE: NoticeID refers to a draft notice
// POST: Notice status is published with PublishedAt set
func ExecutePublishNotice(ctx context.Context, input PublishNoticeInput, deps PublishNoticeDeps) (notice.Notice, error) {
	if input.NoticeID == "" {
		return notice.Notice{}, errors.New("notice ID is required")
	}

	n, err := deps.NoticeStore.GetByID(ctx, input.NoticeID)
	if err != nil {
		return notice.Notice{}, errors.New("notice not found")
	}
	if err := n.Publish(deps.Now()); err != nil {
		return notice.Notice{}, err
	}
	if err := deps.NoticeStore.Save(ctx, n); err != nil {
		return notice.Notice{}, err
	}
	slog.Info("notice_event", "event", "notice_published", "notice_id", n.ID, "audience", n.Audience)

	if deps.ListRecipients != nil && deps.EmailSender != nil {
		fanOutNotice(ctx, deps, n)
	}
	return n, nil
}

func fanOutNotice(ctx context.Context, deps PublishNoticeDeps, n notice.Notice) {
	recipients, err := deps.ListRecipients(ctx)
	if err != nil {
		slog.Warn("notice_event", "event", "fanout_recipient_lookup_failed", "notice_id", n.ID, "error", err)
		return
	}
	if len(recipients) == 0 {
		return
	}

	html, err := markdown.Render(n.Content)
	if err != nil {
		slog.Warn("notice_event", "event", "fanout_render_failed", "notice_id", n.ID, "error", err)
		return
	}

	reqs := make([]email.SendRequest, 0, len(recipients))
	for _, m := range recipients {
		reqs = append(reqs, email.SendRequest{
			To:      []string{m.Email},
			From:    deps.FromAddress,
			Subject: n.Title,
			HTML:    html,
		})
	}
	if _, err := deps.EmailSender.SendBatch(ctx, reqs); err != nil {
		slog.Warn("notice_event", "event", "fanout_send_failed", "notice_id", n.ID, "error", err)
		return
	}
	slog.Info("notice_event", "event", "notice_fanned_out", "notice_id", n.ID, "recipients", len(reqs))
}
