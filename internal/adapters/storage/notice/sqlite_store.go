package notice

import (
	"context"
	"database/sql"
	"fmt"

	"studiobook/internal/adapters/storage"
	domain "studiobook/internal/domain/notice"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new notice store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const noticeColumns = "id, status, audience, title, content, created_by, created_at, published_at"

// scanNotice reads one notice row.
func scanNotice(row interface{ Scan(...any) error }) (domain.Notice, error) {
	var entity domain.Notice
	var createdAt string
	var publishedAt sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.Status,
		&entity.Audience,
		&entity.Title,
		&entity.Content,
		&entity.CreatedBy,
		&createdAt,
		&publishedAt,
	)
	if err == sql.ErrNoRows {
		return domain.Notice{}, fmt.Errorf("notice not found: %w", err)
	}
	if err != nil {
		return domain.Notice{}, err
	}
	if entity.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
		return domain.Notice{}, fmt.Errorf("parse created_at: %w", err)
	}
	if publishedAt.Valid {
		if entity.PublishedAt, err = storage.ParseTime(publishedAt.String); err != nil {
			return domain.Notice{}, fmt.Errorf("parse published_at: %w", err)
		}
	}
	return entity, nil
}

// GetByID retrieves a Notice by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Notice, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+noticeColumns+" FROM notice WHERE id = ?", id)
	return scanNotice(row)
}

// Save persists a Notice (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Notice) error {
	query := `INSERT INTO notice (id, status, audience, title, content, created_by, created_at, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status=excluded.status, audience=excluded.audience, title=excluded.title,
			content=excluded.content, published_at=excluded.published_at`

	var publishedAt any
	if !entity.PublishedAt.IsZero() {
		publishedAt = storage.FormatTime(entity.PublishedAt)
	}

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Status,
		entity.Audience,
		entity.Title,
		entity.Content,
		entity.CreatedBy,
		storage.FormatTime(entity.CreatedAt),
		publishedAt,
	)
	return err
}

// Delete removes a Notice from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM notice WHERE id = ?", id)
	return err
}

// List retrieves notices, newest first.
// PRE: none
// POST: Returns all notices, or only published ones if publishedOnly
func (s *SQLiteStore) List(ctx context.Context, publishedOnly bool) ([]domain.Notice, error) {
	query := "SELECT " + noticeColumns + " FROM notice"
	if publishedOnly {
		query += " WHERE status = 'published'"
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Notice
	for rows.Next() {
		entity, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
