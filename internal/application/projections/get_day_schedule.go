package projections

import (
	"context"
	"sort"
	"time"

	"studiobook/internal/domain/classtemplate"
	"studiobook/internal/domain/member"
	"studiobook/internal/domain/session"
)

// ScheduleSessionStore defines the session store interface for the schedule projection.
type ScheduleSessionStore interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]session.Session, error)
}

// ScheduleTemplateStore defines the template store interface for the schedule projection.
type ScheduleTemplateStore interface {
	List(ctx context.Context) ([]classtemplate.ClassTemplate, error)
}

// ScheduleBookingStore defines the booking store interface for the schedule projection.
type ScheduleBookingStore interface {
	CountActiveBySessions(ctx context.Context, sessionIDs []string) (map[string]int, error)
	ActiveBookingID(ctx context.Context, sessionID, memberID string) (string, error)
}

// ScheduleMemberStore resolves the viewing member, when there is one.
type ScheduleMemberStore interface {
	GetByAccountID(ctx context.Context, accountID string) (member.Member, error)
}

// GetDayScheduleQuery carries input for the day schedule projection.
type GetDayScheduleQuery struct {
	Date     time.Time // any instant inside the requested day, in the studio's zone
	Category string    // optional filter
	Search   string    // optional class/teacher text filter
	// AccountID of the viewer; empty for anonymous or admin views.
	// When it resolves to a member, per-session booked flags are filled in.
	AccountID string
}

// ScheduleEntry is one bookable session with its display data.
type ScheduleEntry struct {
	SessionID       string `json:"session_id"`
	ClassName       string `json:"class_name"`
	TeacherName     string `json:"teacher_name"`
	Category        string `json:"category"`
	ColorHex        string `json:"color_hex"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Capacity        int    `json:"capacity"`
	BookedCount     int    `json:"booked_count"`
	SpotsLeft       int    `json:"spots_left"`
	HasStarted      bool   `json:"has_started"`
	BookedByViewer  bool   `json:"booked_by_viewer"`
	ViewerBookingID string `json:"viewer_booking_id,omitempty"`
}

// GetDayScheduleResult carries the projection output.
type GetDayScheduleResult struct {
	Date    string          `json:"date"`
	Entries []ScheduleEntry `json:"entries"`
}

// GetDayScheduleDeps holds dependencies for the day schedule projection.
type GetDayScheduleDeps struct {
	SessionStore  ScheduleSessionStore
	TemplateStore ScheduleTemplateStore
	BookingStore  ScheduleBookingStore
	MemberStore   ScheduleMemberStore // optional: nil skips viewer flags
	Now           func() time.Time
}

// QueryGetDaySchedule assembles the booking grid for one day: sessions in
// the day window joined with their templates and live seat counts.
//
// Counts are a snapshot for display; the reservation transaction re-checks
// them, so a stale count can never oversell a session.
//
// PRE: query.Date is set
// POST: Entries are sorted by start time, then class name
func QueryGetDaySchedule(ctx context.Context, query GetDayScheduleQuery, deps GetDayScheduleDeps) (GetDayScheduleResult, error) {
	dayStart := time.Date(query.Date.Year(), query.Date.Month(), query.Date.Day(), 0, 0, 0, 0, query.Date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	sessions, err := deps.SessionStore.ListBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return GetDayScheduleResult{}, err
	}

	templates, err := deps.TemplateStore.List(ctx)
	if err != nil {
		return GetDayScheduleResult{}, err
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
		return GetDayScheduleResult{}, err
	}

	var viewer member.Member
	haveViewer := false
	if query.AccountID != "" && deps.MemberStore != nil {
		if m, err := deps.MemberStore.GetByAccountID(ctx, query.AccountID); err == nil {
			viewer = m
			haveViewer = true
		}
	}

	now := deps.Now()
	entries := make([]ScheduleEntry, 0, len(sessions))
	for _, sess := range sessions {
		tpl, ok := templateByID[sess.ClassTemplateID]
		if !ok {
			continue
		}
		if query.Category != "" && tpl.Category != query.Category {
			continue
		}
		if query.Search != "" && !matchesSearch(tpl, query.Search) {
			continue
		}

		booked := counts[sess.ID]
		entry := ScheduleEntry{
			SessionID:       sess.ID,
			ClassName:       tpl.Name,
			TeacherName:     tpl.TeacherName,
			Category:        tpl.Category,
			ColorHex:        classtemplate.ColorHex[tpl.ColorTheme],
			StartTime:       sess.StartTime.Format(time.RFC3339),
			EndTime:         sess.EndTime().Format(time.RFC3339),
			DurationMinutes: sess.DurationMinutes,
			Capacity:        sess.Capacity,
			BookedCount:     booked,
			SpotsLeft:       sess.Capacity - booked,
			HasStarted:      sess.HasStarted(now),
		}
		if entry.SpotsLeft < 0 {
			entry.SpotsLeft = 0
		}

		if haveViewer {
			if bookingID, err := deps.BookingStore.ActiveBookingID(ctx, sess.ID, viewer.ID); err == nil && bookingID != "" {
				entry.BookedByViewer = true
				entry.ViewerBookingID = bookingID
			}
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].StartTime != entries[j].StartTime {
			return entries[i].StartTime < entries[j].StartTime
		}
		return entries[i].ClassName < entries[j].ClassName
	})

	return GetDayScheduleResult{
		Date:    dayStart.Format("2006-01-02"),
		Entries: entries,
	}, nil
}

func matchesSearch(tpl classtemplate.ClassTemplate, search string) bool {
	return containsFold(tpl.Name, search) || containsFold(tpl.TeacherName, search)
}
