package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"studiobook/internal/adapters/storage"
	domain "studiobook/internal/domain/session"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new session store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const sessionColumns = "id, class_template_id, start_time, duration_minutes, capacity"

// scanSession reads one session row.
func scanSession(row interface{ Scan(...any) error }) (domain.Session, error) {
	var entity domain.Session
	var startTime string
	err := row.Scan(
		&entity.ID,
		&entity.ClassTemplateID,
		&startTime,
		&entity.DurationMinutes,
		&entity.Capacity,
	)
	if err == sql.ErrNoRows {
		return domain.Session{}, fmt.Errorf("session not found: %w", err)
	}
	if err != nil {
		return domain.Session{}, err
	}
	if entity.StartTime, err = storage.ParseTime(startTime); err != nil {
		return domain.Session{}, fmt.Errorf("parse start_time: %w", err)
	}
	return entity, nil
}

// GetByID retrieves a Session by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Session, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM class_session WHERE id = ?", id)
	return scanSession(row)
}

// Save persists a Session (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Session) error {
	query := `INSERT INTO class_session (id, class_template_id, start_time, duration_minutes, capacity)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			class_template_id=excluded.class_template_id, start_time=excluded.start_time,
			duration_minutes=excluded.duration_minutes, capacity=excluded.capacity`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.ClassTemplateID,
		storage.FormatTime(entity.StartTime),
		entity.DurationMinutes,
		entity.Capacity,
	)
	return err
}

// Delete removes a Session from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM class_session WHERE id = ?", id)
	return err
}

// ListBetween retrieves sessions with start_time in [from, to).
// Timestamps are stored RFC 3339 UTC, so lexical comparison matches
// chronological order.
// PRE: from is before to
// POST: Returns matching sessions ordered by start time
func (s *SQLiteStore) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Session, error) {
	query := "SELECT " + sessionColumns + " FROM class_session WHERE start_time >= ? AND start_time < ? ORDER BY start_time"
	rows, err := s.db.QueryContext(ctx, query, storage.FormatTime(from), storage.FormatTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Session
	for rows.Next() {
		entity, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
