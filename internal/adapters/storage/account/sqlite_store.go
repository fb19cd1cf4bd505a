package account

import (
	"context"
	"database/sql"
	"fmt"

	"studiobook/internal/adapters/storage"
	domain "studiobook/internal/domain/account"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new account store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const accountColumns = "id, email, password_hash, role, created_at, failed_logins, locked_until"

// scanAccount reads one account row.
func scanAccount(row interface{ Scan(...any) error }) (domain.Account, error) {
	var entity domain.Account
	var createdAt string
	var lockedUntil sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.Email,
		&entity.PasswordHash,
		&entity.Role,
		&createdAt,
		&entity.FailedLogins,
		&lockedUntil,
	)
	if err == sql.ErrNoRows {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	if err != nil {
		return domain.Account{}, err
	}
	if entity.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
		return domain.Account{}, fmt.Errorf("parse created_at: %w", err)
	}
	if lockedUntil.Valid {
		if entity.LockedUntil, err = storage.ParseTime(lockedUntil.String); err != nil {
			return domain.Account{}, fmt.Errorf("parse locked_until: %w", err)
		}
	}
	return entity, nil
}

// GetByID retrieves an Account by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM account WHERE id = ?", id)
	return scanAccount(row)
}

// GetByEmail retrieves an Account by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM account WHERE email = ?", email)
	return scanAccount(row)
}

// Save persists an Account (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted; duplicate email surfaces a UNIQUE violation
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Account) error {
	query := `INSERT INTO account (id, email, password_hash, role, created_at, failed_logins, locked_until)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email=excluded.email, password_hash=excluded.password_hash, role=excluded.role,
			failed_logins=excluded.failed_logins, locked_until=excluded.locked_until`

	var lockedUntil any
	if !entity.LockedUntil.IsZero() {
		lockedUntil = storage.FormatTime(entity.LockedUntil)
	}

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Email,
		entity.PasswordHash,
		entity.Role,
		storage.FormatTime(entity.CreatedAt),
		entity.FailedLogins,
		lockedUntil,
	)
	return err
}

// Count returns the number of accounts.
// PRE: none
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM account").Scan(&count)
	return count, err
}
