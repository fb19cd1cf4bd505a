package projections

import (
	"context"
	"errors"
	"sort"
	"time"

	bookingdomain "studiobook/internal/domain/booking"
	"studiobook/internal/domain/classtemplate"
	"studiobook/internal/domain/member"
	"studiobook/internal/domain/session"
)

// ProfileMemberStore defines the member store interface for the profile projection.
type ProfileMemberStore interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
	GetByAccountID(ctx context.Context, accountID string) (member.Member, error)
}

// ProfileBookingStore defines the booking store interface for the profile projection.
type ProfileBookingStore interface {
	ListByMember(ctx context.Context, memberID string, activeOnly bool) ([]bookingdomain.Booking, error)
}

// ProfileSessionStore defines the session store interface for the profile projection.
type ProfileSessionStore interface {
	GetByID(ctx context.Context, id string) (session.Session, error)
}

// ProfileTemplateStore defines the template store interface for the profile projection.
type ProfileTemplateStore interface {
	GetByID(ctx context.Context, id string) (classtemplate.ClassTemplate, error)
}

// GetMemberProfileQuery carries input for the profile projection.
// Exactly one of MemberID (admin view) or AccountID (self view) is set.
type GetMemberProfileQuery struct {
	MemberID  string
	AccountID string
}

// BookingDetail is one booking joined with its session and class.
type BookingDetail struct {
	BookingID   string `json:"booking_id"`
	Status      string `json:"status"`
	SessionID   string `json:"session_id"`
	ClassName   string `json:"class_name"`
	TeacherName string `json:"teacher_name"`
	StartTime   string `json:"start_time"`
	Upcoming    bool   `json:"upcoming"`
	Cancellable bool   `json:"cancellable"`
}

// GetMemberProfileResult carries the profile projection output.
type GetMemberProfileResult struct {
	MemberID          string          `json:"member_id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Status            string          `json:"status"`
	RemainingSessions int             `json:"remaining_sessions"`
	TotalSessions     int             `json:"total_sessions"`
	JoinDate          string          `json:"join_date"`
	LastVisit         string          `json:"last_visit,omitempty"`
	Upcoming          []BookingDetail `json:"upcoming"`
	History           []BookingDetail `json:"history"`
}

// GetMemberProfileDeps holds dependencies for the profile projection.
type GetMemberProfileDeps struct {
	MemberStore   ProfileMemberStore
	BookingStore  ProfileBookingStore
	SessionStore  ProfileSessionStore
	TemplateStore ProfileTemplateStore
	Now           func() time.Time
}

// ErrMemberNotFound is returned when neither lookup resolves a member.
var ErrMemberNotFound = errors.New("member not found")

// QueryGetMemberProfile assembles a member's profile: pass balance plus
// their bookings split into upcoming and history.
// PRE: MemberID or AccountID is set
// POST: Upcoming is sorted soonest first, History newest first
func QueryGetMemberProfile(ctx context.Context, query GetMemberProfileQuery, deps GetMemberProfileDeps) (GetMemberProfileResult, error) {
	var m member.Member
	var err error
	switch {
	case query.MemberID != "":
		m, err = deps.MemberStore.GetByID(ctx, query.MemberID)
	case query.AccountID != "":
		m, err = deps.MemberStore.GetByAccountID(ctx, query.AccountID)
	default:
		return GetMemberProfileResult{}, ErrMemberNotFound
	}
	if err != nil {
		return GetMemberProfileResult{}, ErrMemberNotFound
	}

	bookings, err := deps.BookingStore.ListByMember(ctx, m.ID, false)
	if err != nil {
		return GetMemberProfileResult{}, err
	}

	now := deps.Now()
	result := GetMemberProfileResult{
		MemberID:          m.ID,
		Name:              m.Name,
		Email:             m.Email,
		Status:            m.Status,
		RemainingSessions: m.RemainingSessions,
		TotalSessions:     m.TotalSessions,
		JoinDate:          m.JoinDate.Format("2006-01-02"),
		Upcoming:          []BookingDetail{},
		History:           []BookingDetail{},
	}
	if !m.LastVisit.IsZero() {
		result.LastVisit = m.LastVisit.Format(time.RFC3339)
	}

	for _, b := range bookings {
		detail := BookingDetail{
			BookingID: b.ID,
			Status:    b.Status,
			SessionID: b.SessionID,
		}
		sess, err := deps.SessionStore.GetByID(ctx, b.SessionID)
		if err == nil {
			detail.StartTime = sess.StartTime.Format(time.RFC3339)
			detail.Upcoming = !sess.HasStarted(now)
			detail.Cancellable = b.Status == bookingdomain.StatusRegistered && detail.Upcoming
			if tpl, err := deps.TemplateStore.GetByID(ctx, sess.ClassTemplateID); err == nil {
				detail.ClassName = tpl.Name
				detail.TeacherName = tpl.TeacherName
			}
		}

		if detail.Upcoming && b.IsActive() {
			result.Upcoming = append(result.Upcoming, detail)
		} else {
			result.History = append(result.History, detail)
		}
	}

	// ListByMember returns newest first, which is the order History wants;
	// upcoming reads better soonest first.
	sort.Slice(result.Upcoming, func(i, j int) bool {
		return result.Upcoming[i].StartTime < result.Upcoming[j].StartTime
	})

	return result, nil
}
