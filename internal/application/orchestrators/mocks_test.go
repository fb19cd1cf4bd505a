package orchestrators

import (
	"context"
	"errors"
	"time"

	"studiobook/internal/adapters/email"
	"studiobook/internal/domain/account"
	bookingdomain "studiobook/internal/domain/booking"
	"studiobook/internal/domain/classtemplate"
	"studiobook/internal/domain/member"
	"studiobook/internal/domain/session"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func fixedID() string { return "test-id-001" }

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

func (m *mockMemberStore) GetByEmail(_ context.Context, email string) (member.Member, error) {
	for _, entity := range m.members {
		if entity.Email == email {
			return entity, nil
		}
	}
	return member.Member{}, errors.New("not found")
}

func (m *mockMemberStore) Save(_ context.Context, entity member.Member) error {
	m.members[entity.ID] = entity
	return nil
}

func (m *mockMemberStore) AddSessions(_ context.Context, id string, count int) (member.Member, error) {
	entity, ok := m.members[id]
	if !ok {
		return member.Member{}, errors.New("not found")
	}
	entity.RemainingSessions += count
	entity.TotalSessions += count
	if entity.Status == member.StatusExpired {
		entity.Status = member.StatusActive
	}
	m.members[id] = entity
	return entity, nil
}

func (m *mockMemberStore) UpdateProfile(_ context.Context, id, name, email, status string) (member.Member, error) {
	entity, ok := m.members[id]
	if !ok {
		return member.Member{}, errors.New("not found")
	}
	entity.Name = name
	entity.Email = email
	entity.Status = status
	m.members[id] = entity
	return entity, nil
}

func (m *mockMemberStore) StampLastVisit(_ context.Context, id string, at time.Time) error {
	entity, ok := m.members[id]
	if !ok {
		return errors.New("not found")
	}
	entity.LastVisit = at
	m.members[id] = entity
	return nil
}

// --- session store mock ---

type mockSessionStore struct {
	sessions map[string]session.Session
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]session.Session)}
}

func (m *mockSessionStore) GetByID(_ context.Context, id string) (session.Session, error) {
	entity, ok := m.sessions[id]
	if !ok {
		return session.Session{}, errors.New("not found")
	}
	return entity, nil
}

func (m *mockSessionStore) Save(_ context.Context, entity session.Session) error {
	m.sessions[entity.ID] = entity
	return nil
}

func (m *mockSessionStore) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

// --- template store mock ---

type mockTemplateStore struct {
	templates map[string]classtemplate.ClassTemplate
}

func newMockTemplateStore() *mockTemplateStore {
	return &mockTemplateStore{templates: make(map[string]classtemplate.ClassTemplate)}
}

func (m *mockTemplateStore) GetByID(_ context.Context, id string) (classtemplate.ClassTemplate, error) {
	entity, ok := m.templates[id]
	if !ok {
		return classtemplate.ClassTemplate{}, errors.New("not found")
	}
	return entity, nil
}

func (m *mockTemplateStore) Save(_ context.Context, entity classtemplate.ClassTemplate) error {
	m.templates[entity.ID] = entity
	return nil
}

func (m *mockTemplateStore) Delete(_ context.Context, id string) error {
	delete(m.templates, id)
	return nil
}

// --- booking store mock ---

// mockBookingStore mimics the store's atomic reserve against the linked
// member store: balance decrement, capacity check and duplicate check all
// succeed or fail together.
type mockBookingStore struct {
	bookings    map[string]bookingdomain.Booking
	memberStore *mockMemberStore
	capacity    map[string]int // session ID -> capacity; missing means session unknown
	reserveErr  error          // forced error, takes precedence
	cancelErr   error
}

func newMockBookingStore(members *mockMemberStore) *mockBookingStore {
	return &mockBookingStore{
		bookings:    make(map[string]bookingdomain.Booking),
		memberStore: members,
		capacity:    make(map[string]int),
	}
}

func (m *mockBookingStore) GetByID(_ context.Context, id string) (bookingdomain.Booking, error) {
	entity, ok := m.bookings[id]
	if !ok {
		return bookingdomain.Booking{}, errors.New("not found")
	}
	return entity, nil
}

func (m *mockBookingStore) Save(_ context.Context, entity bookingdomain.Booking) error {
	m.bookings[entity.ID] = entity
	return nil
}

func (m *mockBookingStore) activeCount(sessionID string) int {
	count := 0
	for _, b := range m.bookings {
		if b.SessionID == sessionID && b.IsActive() {
			count++
		}
	}
	return count
}

func (m *mockBookingStore) CountActiveBySession(_ context.Context, sessionID string) (int, error) {
	return m.activeCount(sessionID), nil
}

func (m *mockBookingStore) Reserve(_ context.Context, bookingID, sessionID, memberID string, now time.Time) error {
	if m.reserveErr != nil {
		return m.reserveErr
	}

	entity, ok := m.memberStore.members[memberID]
	if !ok || entity.RemainingSessions <= 0 {
		return bookingdomain.ErrInsufficientBalance
	}
	capacity, ok := m.capacity[sessionID]
	if !ok {
		return bookingdomain.ErrSessionNotFound
	}
	for _, b := range m.bookings {
		if b.SessionID == sessionID && b.MemberID == memberID && b.IsActive() {
			return bookingdomain.ErrDuplicateBooking
		}
	}
	if m.activeCount(sessionID) >= capacity {
		return bookingdomain.ErrSessionFull
	}

	entity.RemainingSessions--
	entity.LastVisit = now
	m.memberStore.members[memberID] = entity
	m.bookings[bookingID] = bookingdomain.Booking{
		ID:        bookingID,
		SessionID: sessionID,
		MemberID:  memberID,
		Status:    bookingdomain.StatusRegistered,
		CreatedAt: now,
	}
	return nil
}

func (m *mockBookingStore) CancelAndRefund(_ context.Context, bookingID string) error {
	if m.cancelErr != nil {
		return m.cancelErr
	}
	b, ok := m.bookings[bookingID]
	if !ok || b.Status != bookingdomain.StatusRegistered {
		return bookingdomain.ErrNotRegistered
	}
	b.Status = bookingdomain.StatusCancelled
	m.bookings[bookingID] = b

	entity := m.memberStore.members[b.MemberID]
	if entity.RemainingSessions < entity.TotalSessions {
		entity.RemainingSessions++
	}
	m.memberStore.members[b.MemberID] = entity
	return nil
}

// --- account store mock ---

type mockAccountStore struct {
	accounts map[string]account.Account
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{accounts: make(map[string]account.Account)}
}

func (m *mockAccountStore) GetByID(_ context.Context, id string) (account.Account, error) {
	entity, ok := m.accounts[id]
	if !ok {
		return account.Account{}, errors.New("not found")
	}
	return entity, nil
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	for _, entity := range m.accounts {
		if entity.Email == email {
			return entity, nil
		}
	}
	return account.Account{}, errors.New("not found")
}

func (m *mockAccountStore) Save(_ context.Context, entity account.Account) error {
	m.accounts[entity.ID] = entity
	return nil
}

func (m *mockAccountStore) Count(_ context.Context) (int, error) {
	return len(m.accounts), nil
}

// --- email sender mock ---

type mockEmailSender struct {
	sent    []email.SendRequest
	sendErr error
}

func (m *mockEmailSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if m.sendErr != nil {
		return email.SendResult{}, m.sendErr
	}
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "mock-1", SentAt: fixedTime}, nil
}

func (m *mockEmailSender) SendBatch(_ context.Context, reqs []email.SendRequest) ([]email.SendResult, error) {
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	results := make([]email.SendResult, 0, len(reqs))
	for _, req := range reqs {
		m.sent = append(m.sent, req)
		results = append(results, email.SendResult{MessageID: "mock-batch", SentAt: fixedTime})
	}
	return results, nil
}
