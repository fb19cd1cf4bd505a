package classtemplate

import (
	"context"

	domain "studiobook/internal/domain/classtemplate"
)

// Store persists ClassTemplate state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.ClassTemplate, error)
	Save(ctx context.Context, value domain.ClassTemplate) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.ClassTemplate, error)
}
