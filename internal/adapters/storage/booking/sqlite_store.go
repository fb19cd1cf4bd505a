package booking

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"studiobook/internal/adapters/storage"
	domain "studiobook/internal/domain/booking"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new booking store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const bookingColumns = "id, session_id, member_id, status, created_at"

// activeStatusSQL is the status set that holds a seat, matching the
// idx_booking_active_unique partial index predicate exactly.
const activeStatusSQL = "('registered', 'checked_in')"

// scanBooking reads one booking row.
func scanBooking(row interface{ Scan(...any) error }) (domain.Booking, error) {
	var entity domain.Booking
	var createdAt string
	err := row.Scan(
		&entity.ID,
		&entity.SessionID,
		&entity.MemberID,
		&entity.Status,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return domain.Booking{}, fmt.Errorf("booking not found: %w", err)
	}
	if err != nil {
		return domain.Booking{}, err
	}
	if entity.CreatedAt, err = storage.ParseTime(createdAt); err != nil {
		return domain.Booking{}, fmt.Errorf("parse created_at: %w", err)
	}
	return entity, nil
}

// GetByID retrieves a Booking by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Booking, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+bookingColumns+" FROM booking WHERE id = ?", id)
	return scanBooking(row)
}

// Save persists a Booking (insert or update). Status-only transitions
// (check-in, no-show) come through here; reservations must use Reserve.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Booking) error {
	query := `INSERT INTO booking (id, session_id, member_id, status, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET status=excluded.status`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.SessionID,
		entity.MemberID,
		entity.Status,
		storage.FormatTime(entity.CreatedAt),
	)
	if storage.IsUniqueViolation(err) {
		return domain.ErrDuplicateBooking
	}
	return err
}

// ListByMember retrieves a member's bookings, newest first.
// PRE: memberID is non-empty
// POST: Returns matching bookings; only seat-holding ones if activeOnly
func (s *SQLiteStore) ListByMember(ctx context.Context, memberID string, activeOnly bool) ([]domain.Booking, error) {
	query := "SELECT " + bookingColumns + " FROM booking WHERE member_id = ?"
	if activeOnly {
		query += " AND status IN " + activeStatusSQL
	}
	query += " ORDER BY created_at DESC"
	return s.queryBookings(ctx, query, memberID)
}

// ListBySession retrieves all bookings for a session.
// PRE: sessionID is non-empty
// POST: Returns matching bookings ordered by creation time
func (s *SQLiteStore) ListBySession(ctx context.Context, sessionID string) ([]domain.Booking, error) {
	query := "SELECT " + bookingColumns + " FROM booking WHERE session_id = ? ORDER BY created_at"
	return s.queryBookings(ctx, query, sessionID)
}

func (s *SQLiteStore) queryBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Booking
	for rows.Next() {
		entity, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// CountActiveBySession returns the number of seat-holding bookings for a session.
// PRE: sessionID is non-empty
// POST: Returns count >= 0
func (s *SQLiteStore) CountActiveBySession(ctx context.Context, sessionID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM booking WHERE session_id = ? AND status IN "+activeStatusSQL,
		sessionID).Scan(&count)
	return count, err
}

// CountActiveBySessions returns active booking counts keyed by session ID.
// Sessions with no active bookings are absent from the map.
// PRE: none (empty input returns an empty map)
// POST: Returns counts >= 1 per present key
func (s *SQLiteStore) CountActiveBySessions(ctx context.Context, sessionIDs []string) (map[string]int, error) {
	counts := make(map[string]int)
	if len(sessionIDs) == 0 {
		return counts, nil
	}

	placeholders := strings.Repeat("?,", len(sessionIDs)-1) + "?"
	query := "SELECT session_id, COUNT(*) FROM booking WHERE session_id IN (" + placeholders + ") AND status IN " + activeStatusSQL + " GROUP BY session_id"

	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		counts[id] = count
	}
	return counts, rows.Err()
}

// ActiveBookingID returns the ID of the member's seat-holding booking for a
// session, or empty string if there is none.
// PRE: sessionID and memberID are non-empty
// POST: Returns at most one ID (guaranteed by the active unique index)
func (s *SQLiteStore) ActiveBookingID(ctx context.Context, sessionID, memberID string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM booking WHERE session_id = ? AND member_id = ? AND status IN "+activeStatusSQL,
		sessionID, memberID).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return id, err
}

// Reserve atomically books one seat and consumes one session unit.
//
// The three steps run in a single transaction whose first statement is a
// write, so SQLite takes the database write lock up front and every check
// below is evaluated against committed state:
//
//  1. conditional balance decrement: zero rows affected means the balance
//     was already zero (or the member is unknown);
//  2. capacity-guarded insert: the INSERT..SELECT only produces a row
//     while the active booking count is below capacity;
//  3. the partial unique index on (session_id, member_id) rejects a second
//     active booking for the same pair, as the backstop rather than the
//     primary guard.
//
// PRE: bookingID is a fresh ID; sessionID and memberID are non-empty
// POST: On success exactly one booking row is inserted and the member's
// balance is one lower; on any error zero rows are mutated
func (s *SQLiteStore) Reserve(ctx context.Context, bookingID, sessionID, memberID string, now time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Step 1: consume one unit, only if there is one to consume.
	res, err := tx.ExecContext(ctx,
		"UPDATE member SET remaining_sessions = remaining_sessions - 1, last_visit = ? WHERE id = ? AND remaining_sessions > 0",
		storage.FormatTime(now), memberID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrInsufficientBalance
	}

	// Step 2: insert the booking only while a seat is free.
	res, err = tx.ExecContext(ctx,
		`INSERT INTO booking (id, session_id, member_id, status, created_at)
		 SELECT ?, cs.id, ?, 'registered', ?
		 FROM class_session cs
		 WHERE cs.id = ?
		   AND (SELECT COUNT(*) FROM booking b WHERE b.session_id = cs.id AND b.status IN `+activeStatusSQL+`) < cs.capacity`,
		bookingID, memberID, storage.FormatTime(now), sessionID)
	if storage.IsUniqueViolation(err) {
		// Step 3 backstop: same member already holds a seat here.
		return domain.ErrDuplicateBooking
	}
	if err != nil {
		return err
	}
	affected, err = res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Distinguish a missing session, a retry by the member already
		// holding a seat, and a genuinely exhausted session. The retry
		// check matters when that member's own booking fills the session:
		// the capacity guard stops the insert before the unique index can.
		var exists int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM class_session WHERE id = ?", sessionID).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return domain.ErrSessionNotFound
		}
		var held int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM booking WHERE session_id = ? AND member_id = ? AND status IN "+activeStatusSQL,
			sessionID, memberID).Scan(&held); err != nil {
			return err
		}
		if held > 0 {
			return domain.ErrDuplicateBooking
		}
		return domain.ErrSessionFull
	}

	return tx.Commit()
}

// CancelAndRefund atomically cancels a registered booking and refunds one
// session unit to the member, capped at the pass size.
// PRE: bookingID is non-empty
// POST: Booking is cancelled and balance incremented, or nothing changes
func (s *SQLiteStore) CancelAndRefund(ctx context.Context, bookingID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE booking SET status = 'cancelled' WHERE id = ? AND status = 'registered'", bookingID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotRegistered
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE member SET remaining_sessions = MIN(remaining_sessions + 1, total_sessions)
		 WHERE id = (SELECT member_id FROM booking WHERE id = ?)`, bookingID)
	if err != nil {
		return err
	}

	return tx.Commit()
}
