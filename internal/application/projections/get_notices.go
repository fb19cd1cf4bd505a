package projections

import (
	"context"
	"time"

	"studiobook/internal/application/markdown"
	"studiobook/internal/domain/notice"
)

// NoticeListStore defines the notice store interface for the notice projection.
type NoticeListStore interface {
	List(ctx context.Context, publishedOnly bool) ([]notice.Notice, error)
}

// GetNoticesQuery carries input for the notice projection.
type GetNoticesQuery struct {
	// IncludeDrafts is an admin-only view; members see published notices.
	IncludeDrafts bool
	// MemberAudience includes members-only notices alongside public ones.
	MemberAudience bool
}

// NoticeView is one notice with its content rendered to safe HTML.
type NoticeView struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Audience    string `json:"audience"`
	Title       string `json:"title"`
	ContentHTML string `json:"content_html"`
	PublishedAt string `json:"published_at,omitempty"`
}

// GetNoticesDeps holds dependencies for the notice projection.
type GetNoticesDeps struct {
	NoticeStore NoticeListStore
}

// QueryGetNotices returns visible notices with markdown rendered.
// PRE: none
// POST: Drafts appear only when IncludeDrafts; members-only notices only
// when MemberAudience or IncludeDrafts
func QueryGetNotices(ctx context.Context, query GetNoticesQuery, deps GetNoticesDeps) ([]NoticeView, error) {
	notices, err := deps.NoticeStore.List(ctx, !query.IncludeDrafts)
	if err != nil {
		return nil, err
	}

	views := make([]NoticeView, 0, len(notices))
	for _, n := range notices {
		if n.Audience == notice.AudienceMembers && !query.MemberAudience && !query.IncludeDrafts {
			continue
		}
		html, err := markdown.Render(n.Content)
		if err != nil {
			return nil, err
		}
		view := NoticeView{
			ID:          n.ID,
			Status:      n.Status,
			Audience:    n.Audience,
			Title:       n.Title,
			ContentHTML: html,
		}
		if !n.PublishedAt.IsZero() {
			view.PublishedAt = n.PublishedAt.Format(time.RFC3339)
		}
		views = append(views, view)
	}
	return views, nil
}
