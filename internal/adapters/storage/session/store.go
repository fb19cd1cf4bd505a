package session

import (
	"context"
	"time"

	domain "studiobook/internal/domain/session"
)

// Store persists Session state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Session, error)
	Save(ctx context.Context, value domain.Session) error
	Delete(ctx context.Context, id string) error
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.Session, error)
}
