package member

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"studiobook/internal/adapters/storage"
	domain "studiobook/internal/domain/member"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new member store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const memberColumns = "id, account_id, name, email, status, remaining_sessions, total_sessions, join_date, last_visit"

// scanMember reads one member row.
func scanMember(row interface{ Scan(...any) error }) (domain.Member, error) {
	var entity domain.Member
	var accountID, lastVisit sql.NullString
	var joinDate string
	err := row.Scan(
		&entity.ID,
		&accountID,
		&entity.Name,
		&entity.Email,
		&entity.Status,
		&entity.RemainingSessions,
		&entity.TotalSessions,
		&joinDate,
		&lastVisit,
	)
	if err == sql.ErrNoRows {
		return domain.Member{}, fmt.Errorf("member not found: %w", err)
	}
	if err != nil {
		return domain.Member{}, err
	}
	if accountID.Valid {
		entity.AccountID = accountID.String
	}
	if entity.JoinDate, err = storage.ParseTime(joinDate); err != nil {
		return domain.Member{}, fmt.Errorf("parse join_date: %w", err)
	}
	if lastVisit.Valid {
		if entity.LastVisit, err = storage.ParseTime(lastVisit.String); err != nil {
			return domain.Member{}, fmt.Errorf("parse last_visit: %w", err)
		}
	}
	return entity, nil
}

// GetByID retrieves a Member by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Member, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+memberColumns+" FROM member WHERE id = ?", id)
	return scanMember(row)
}

// GetByEmail retrieves a Member by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Member, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+memberColumns+" FROM member WHERE email = ?", email)
	return scanMember(row)
}

// GetByAccountID retrieves the Member linked to a login account.
// PRE: accountID is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByAccountID(ctx context.Context, accountID string) (domain.Member, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+memberColumns+" FROM member WHERE account_id = ?", accountID)
	return scanMember(row)
}

// Save persists a Member (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted; duplicate email surfaces a UNIQUE violation
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Member) error {
	query := `INSERT INTO member (id, account_id, name, email, status, remaining_sessions, total_sessions, join_date, last_visit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			account_id=excluded.account_id, name=excluded.name, email=excluded.email,
			status=excluded.status, remaining_sessions=excluded.remaining_sessions,
			total_sessions=excluded.total_sessions, join_date=excluded.join_date,
			last_visit=excluded.last_visit`

	var accountID any
	if entity.AccountID != "" {
		accountID = entity.AccountID
	}
	var lastVisit any
	if !entity.LastVisit.IsZero() {
		lastVisit = storage.FormatTime(entity.LastVisit)
	}

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		accountID,
		entity.Name,
		entity.Email,
		entity.Status,
		entity.RemainingSessions,
		entity.TotalSessions,
		storage.FormatTime(entity.JoinDate),
		lastVisit,
	)
	return err
}

// AddSessions grows the pass in place: balance and size both increase by
// count and an expired member becomes active again. The arithmetic runs in
// SQL against the current row, so a booking decrement that committed after
// the caller last read the member is preserved.
// PRE: count > 0
// POST: remaining and total are count higher than their committed values
func (s *SQLiteStore) AddSessions(ctx context.Context, id string, count int) (domain.Member, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE member SET
			remaining_sessions = remaining_sessions + ?,
			total_sessions = total_sessions + ?,
			status = CASE WHEN status = 'expired' THEN 'active' ELSE status END
		 WHERE id = ?`,
		count, count, id)
	if err != nil {
		return domain.Member{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Member{}, err
	}
	if affected == 0 {
		return domain.Member{}, fmt.Errorf("member not found: %s", id)
	}
	return s.GetByID(ctx, id)
}

// StampLastVisit records a visit without touching the balance columns.
func (s *SQLiteStore) StampLastVisit(ctx context.Context, id string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, "UPDATE member SET last_visit = ? WHERE id = ?",
		storage.FormatTime(at), id)
	return err
}

// UpdateProfile rewrites the contact fields only. Balance columns stay out of
// the statement so a booking decrement committed since the caller's read is
// preserved.
// POST: name, email, and status match the arguments; duplicate email surfaces
// a UNIQUE violation
func (s *SQLiteStore) UpdateProfile(ctx context.Context, id, name, email, status string) (domain.Member, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE member SET name = ?, email = ?, status = ? WHERE id = ?",
		name, email, status, id)
	if err != nil {
		return domain.Member{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Member{}, err
	}
	if affected == 0 {
		return domain.Member{}, fmt.Errorf("member not found: %s", id)
	}
	return s.GetByID(ctx, id)
}

// listWhereClause builds the WHERE clause and args for List/Count queries.
func listWhereClause(filter ListFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any

	if filter.Status != "" {
		where += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		where += " AND (name LIKE ? OR email LIKE ?)"
		term := "%" + filter.Search + "%"
		args = append(args, term, term)
	}
	return where, args
}

// sortClause returns a safe ORDER BY clause. Only allowed columns are accepted.
func sortClause(filter ListFilter) string {
	allowed := map[string]string{
		"name": "name", "email": "email", "status": "status",
		"join_date": "join_date", "remaining": "remaining_sessions",
	}
	col, ok := allowed[filter.Sort]
	if !ok {
		return " ORDER BY name ASC"
	}
	dir := "ASC"
	if filter.Dir == "desc" {
		dir = "DESC"
	}
	return " ORDER BY " + col + " " + dir
}

// Count returns the total number of members matching the filter.
// PRE: filter has valid parameters
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := listWhereClause(filter)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM member"+where, args...).Scan(&count)
	return count, err
}

// List retrieves Members matching the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities ordered per the sort clause
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Member, error) {
	where, args := listWhereClause(filter)
	query := "SELECT " + memberColumns + " FROM member" + where + sortClause(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Member
	for rows.Next() {
		entity, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
