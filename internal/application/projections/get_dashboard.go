package projections

import (
	"context"
	"time"

	memberstore "studiobook/internal/adapters/storage/member"
	"studiobook/internal/domain/classtemplate"
	"studiobook/internal/domain/member"
	"studiobook/internal/domain/notice"
	"studiobook/internal/domain/session"
)

// DashboardMemberStore defines the member store interface for the dashboard.
type DashboardMemberStore interface {
	Count(ctx context.Context, filter memberstore.ListFilter) (int, error)
}

// DashboardNoticeStore defines the notice store interface for the dashboard.
type DashboardNoticeStore interface {
	List(ctx context.Context, publishedOnly bool) ([]notice.Notice, error)
}

// DashboardSessionStore defines the session store interface for the dashboard.
type DashboardSessionStore interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]session.Session, error)
}

// DashboardTemplateStore defines the template store interface for the dashboard.
type DashboardTemplateStore interface {
	List(ctx context.Context) ([]classtemplate.ClassTemplate, error)
}

// DashboardBookingStore defines the booking store interface for the dashboard.
type DashboardBookingStore interface {
	CountActiveBySessions(ctx context.Context, sessionIDs []string) (map[string]int, error)
}

// TodaySessionSummary is one of today's sessions on the admin dashboard.
type TodaySessionSummary struct {
	SessionID   string `json:"session_id"`
	ClassName   string `json:"class_name"`
	TeacherName string `json:"teacher_name"`
	StartTime   string `json:"start_time"`
	Capacity    int    `json:"capacity"`
	BookedCount int    `json:"booked_count"`
}

// GetDashboardResult carries the admin dashboard numbers.
type GetDashboardResult struct {
	TotalMembers   int                   `json:"total_members"`
	ActiveMembers  int                   `json:"active_members"`
	ExpiredMembers int                   `json:"expired_members"`
	TodaySessions  []TodaySessionSummary `json:"today_sessions"`
	SeatsToday     int                   `json:"seats_today"`
	BookedToday    int                   `json:"booked_today"`
	LatestNotices  []notice.Notice       `json:"latest_notices"`
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	MemberStore   DashboardMemberStore
	NoticeStore   DashboardNoticeStore
	SessionStore  DashboardSessionStore
	TemplateStore DashboardTemplateStore
	BookingStore  DashboardBookingStore
	Now           func() time.Time
}

// QueryGetDashboard assembles the admin landing view: membership counts,
// today's utilisation and the latest published notices.
// PRE: none
// POST: TodaySessions is ordered by start time
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps) (GetDashboardResult, error) {
	var result GetDashboardResult
	var err error

	if result.TotalMembers, err = deps.MemberStore.Count(ctx, memberstore.ListFilter{}); err != nil {
		return GetDashboardResult{}, err
	}
	if result.ActiveMembers, err = deps.MemberStore.Count(ctx, memberstore.ListFilter{Status: member.StatusActive}); err != nil {
		return GetDashboardResult{}, err
	}
	if result.ExpiredMembers, err = deps.MemberStore.Count(ctx, memberstore.ListFilter{Status: member.StatusExpired}); err != nil {
		return GetDashboardResult{}, err
	}

	now := deps.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sessions, err := deps.SessionStore.ListBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return GetDashboardResult{}, err
	}

	templates, err := deps.TemplateStore.List(ctx)
	if err != nil {
		return GetDashboardResult{}, err
	}
	templateByID := make(map[string]classtemplate.ClassTemplate, len(templates))
	for _, tpl := range templates {
		templateByID[tpl.ID] = tpl
	}

	sessionIDs := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		sessionIDs = append(sessionIDs, sess.ID)
	}
	counts, err := deps.BookingStore.CountActiveBySessions(ctx, sessionIDs)
	if err != nil {
		return GetDashboardResult{}, err
	}

	result.TodaySessions = make([]TodaySessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		tpl := templateByID[sess.ClassTemplateID]
		result.TodaySessions = append(result.TodaySessions, TodaySessionSummary{
			SessionID:   sess.ID,
			ClassName:   tpl.Name,
			TeacherName: tpl.TeacherName,
			StartTime:   sess.StartTime.Format(time.RFC3339),
			Capacity:    sess.Capacity,
			BookedCount: counts[sess.ID],
		})
		result.SeatsToday += sess.Capacity
		result.BookedToday += counts[sess.ID]
	}

	notices, err := deps.NoticeStore.List(ctx, true)
	if err != nil {
		return GetDashboardResult{}, err
	}
	if len(notices) > 5 {
		notices = notices[:5]
	}
	result.LatestNotices = notices

	return result, nil
}
