package member

import (
	"context"
	"time"

	domain "studiobook/internal/domain/member"
)

// Store persists Member state.
//
// The balance columns are shared with the booking reservation transaction,
// so flows that run concurrently with bookings must use the targeted
// AddSessions/StampLastVisit/UpdateProfile updates rather than a whole-row
// Save: a Save built from an earlier read would overwrite a decrement that
// committed in between. Save is for creation and seeding only.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Member, error)
	GetByEmail(ctx context.Context, email string) (domain.Member, error)
	GetByAccountID(ctx context.Context, accountID string) (domain.Member, error)
	Save(ctx context.Context, value domain.Member) error
	AddSessions(ctx context.Context, id string, count int) (domain.Member, error)
	StampLastVisit(ctx context.Context, id string, at time.Time) error
	UpdateProfile(ctx context.Context, id, name, email, status string) (domain.Member, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Member, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering parameters for List/Count operations.
type ListFilter struct {
	Limit  int
	Offset int
	Status string
	Search string // substring match on name or email
	Sort   string
	Dir    string
}
