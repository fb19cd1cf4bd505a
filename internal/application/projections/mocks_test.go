package projections

import (
	"context"
	"errors"
	"sort"
	"time"

	memberstore "studiobook/internal/adapters/storage/member"
	bookingdomain "studiobook/internal/domain/booking"
	"studiobook/internal/domain/classtemplate"
	"studiobook/internal/domain/member"
	"studiobook/internal/domain/notice"
	"studiobook/internal/domain/session"
)

var fixedTime = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

// --- session store mock ---

type mockSessionStore struct {
	sessions map[string]session.Session
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]session.Session)}
}

func (m *mockSessionStore) GetByID(_ context.Context, id string) (session.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return session.Session{}, errors.New("not found")
	}
	return s, nil
}

func (m *mockSessionStore) ListBetween(_ context.Context, from, to time.Time) ([]session.Session, error) {
	var results []session.Session
	for _, s := range m.sessions {
		if !s.StartTime.Before(from) && s.StartTime.Before(to) {
			results = append(results, s)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].StartTime.Before(results[j].StartTime) })
	return results, nil
}

// --- template store mock ---

type mockTemplateStore struct {
	templates map[string]classtemplate.ClassTemplate
}

func newMockTemplateStore() *mockTemplateStore {
	return &mockTemplateStore{templates: make(map[string]classtemplate.ClassTemplate)}
}

func (m *mockTemplateStore) GetByID(_ context.Context, id string) (classtemplate.ClassTemplate, error) {
	t, ok := m.templates[id]
	if !ok {
		return classtemplate.ClassTemplate{}, errors.New("not found")
	}
	return t, nil
}

func (m *mockTemplateStore) List(_ context.Context) ([]classtemplate.ClassTemplate, error) {
	var results []classtemplate.ClassTemplate
	for _, t := range m.templates {
		results = append(results, t)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results, nil
}

// --- booking store mock ---

type mockBookingStore struct {
	bookings map[string]bookingdomain.Booking
}

func newMockBookingStore() *mockBookingStore {
	return &mockBookingStore{bookings: make(map[string]bookingdomain.Booking)}
}

func (m *mockBookingStore) ListByMember(_ context.Context, memberID string, activeOnly bool) ([]bookingdomain.Booking, error) {
	var results []bookingdomain.Booking
	for _, b := range m.bookings {
		if b.MemberID != memberID {
			continue
		}
		if activeOnly && !b.IsActive() {
			continue
		}
		results = append(results, b)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CreatedAt.After(results[j].CreatedAt) })
	return results, nil
}

func (m *mockBookingStore) CountActiveBySessions(_ context.Context, sessionIDs []string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, id := range sessionIDs {
		for _, b := range m.bookings {
			if b.SessionID == id && b.IsActive() {
				counts[id]++
			}
		}
	}
	return counts, nil
}

func (m *mockBookingStore) ActiveBookingID(_ context.Context, sessionID, memberID string) (string, error) {
	for _, b := range m.bookings {
		if b.SessionID == sessionID && b.MemberID == memberID && b.IsActive() {
			return b.ID, nil
		}
	}
	return "", nil
}

// --- member store mock ---

type mockMemberStore struct {
	members map[string]member.Member
}

func newMockMemberStore() *mockMemberStore {
	return &mockMemberStore{members: make(map[string]member.Member)}
}

func (m *mockMemberStore) GetByID(_ context.Context, id string) (member.Member, error) {
	entity, ok := m.members[id]
	if !ok {
		return member.Member{}, errors.New("not found")
	}
	return entity, nil
}

func (m *mockMemberStore) GetByAccountID(_ context.Context, accountID string) (member.Member, error) {
	for _, entity := range m.members {
		if entity.AccountID == accountID {
			return entity, nil
		}
	}
	return member.Member{}, errors.New("not found")
}

func (m *mockMemberStore) List(_ context.Context, filter memberstore.ListFilter) ([]member.Member, error) {
	var results []member.Member
	for _, entity := range m.members {
		if filter.Status != "" && entity.Status != filter.Status {
			continue
		}
		results = append(results, entity)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	if filter.Offset > 0 && filter.Offset < len(results) {
		results = results[filter.Offset:]
	} else if filter.Offset >= len(results) {
		results = nil
	}
	if filter.Limit > 0 && filter.Limit < len(results) {
		results = results[:filter.Limit]
	}
	return results, nil
}

func (m *mockMemberStore) Count(_ context.Context, filter memberstore.ListFilter) (int, error) {
	count := 0
	for _, entity := range m.members {
		if filter.Status != "" && entity.Status != filter.Status {
			continue
		}
		count++
	}
	return count, nil
}

// --- notice store mock ---

type mockNoticeStore struct {
	notices []notice.Notice
}

func (m *mockNoticeStore) List(_ context.Context, publishedOnly bool) ([]notice.Notice, error) {
	var results []notice.Notice
	for _, n := range m.notices {
		if publishedOnly && !n.IsPublished() {
			continue
		}
		results = append(results, n)
	}
	return results, nil
}
