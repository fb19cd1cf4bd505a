package classtemplate

import (
	"context"
	"database/sql"
	"fmt"

	"studiobook/internal/adapters/storage"
	domain "studiobook/internal/domain/classtemplate"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new class template store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const templateColumns = "id, name, teacher_name, category, color_theme"

// GetByID retrieves a ClassTemplate by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.ClassTemplate, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+templateColumns+" FROM class_template WHERE id = ?", id)

	var entity domain.ClassTemplate
	err := row.Scan(&entity.ID, &entity.Name, &entity.TeacherName, &entity.Category, &entity.ColorTheme)
	if err == sql.ErrNoRows {
		return domain.ClassTemplate{}, fmt.Errorf("class template not found: %w", err)
	}
	return entity, err
}

// Save persists a ClassTemplate (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.ClassTemplate) error {
	query := `INSERT INTO class_template (id, name, teacher_name, category, color_theme)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, teacher_name=excluded.teacher_name,
			category=excluded.category, color_theme=excluded.color_theme`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID, entity.Name, entity.TeacherName, entity.Category, entity.ColorTheme)
	return err
}

// Delete removes a ClassTemplate from the database.
// PRE: id is non-empty; no sessions reference the template
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM class_template WHERE id = ?", id)
	return err
}

// List retrieves all class templates ordered by name.
// PRE: none
// POST: Returns all templates
func (s *SQLiteStore) List(ctx context.Context) ([]domain.ClassTemplate, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+templateColumns+" FROM class_template ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.ClassTemplate
	for rows.Next() {
		var entity domain.ClassTemplate
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.TeacherName, &entity.Category, &entity.ColorTheme); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
