package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// migrations is the ordered schema migration chain. Each entry runs inside
// its own transaction and bumps schema_version on success. Never edit an
// applied migration; append a new one.
var migrations = []string{
	// v1: core booking schema
	`
	CREATE TABLE account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE member (
		id TEXT PRIMARY KEY,
		account_id TEXT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL,
		remaining_sessions INTEGER NOT NULL DEFAULT 0,
		total_sessions INTEGER NOT NULL DEFAULT 0,
		join_date TEXT NOT NULL,
		last_visit TEXT,
		CHECK (remaining_sessions >= 0),
		CHECK (remaining_sessions <= total_sessions)
	);

	CREATE TABLE class_template (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		teacher_name TEXT NOT NULL,
		category TEXT NOT NULL,
		color_theme TEXT NOT NULL DEFAULT 'indigo'
	);

	CREATE TABLE class_session (
		id TEXT PRIMARY KEY,
		class_template_id TEXT NOT NULL,
		start_time TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		capacity INTEGER NOT NULL,
		FOREIGN KEY (class_template_id) REFERENCES class_template(id)
	);

	CREATE TABLE booking (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		member_id TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (session_id) REFERENCES class_session(id),
		FOREIGN KEY (member_id) REFERENCES member(id)
	);

	CREATE UNIQUE INDEX idx_booking_active_unique
		ON booking(session_id, member_id)
		WHERE status IN ('registered', 'checked_in');

	CREATE INDEX idx_booking_session ON booking(session_id);
	CREATE INDEX idx_booking_member ON booking(member_id);
	CREATE INDEX idx_session_start ON class_session(start_time);
	`,
	// v2: studio announcements
	`
	CREATE TABLE notice (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		audience TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		created_by TEXT NOT NULL,
		created_at TEXT NOT NULL,
		published_at TEXT
	);
	`,
}

// LatestSchemaVersion returns the version the migration chain produces.
func LatestSchemaVersion() int {
	return len(migrations)
}

// SchemaVersion reads the current schema version from the database.
// PRE: db is a valid connection
// POST: Returns 0 for a virgin database, otherwise the applied version
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("check schema_version table: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}
	var version int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// MigrateDB applies all pending migrations.
// PRE: db is a valid connection; dbPath names the database (for logging only)
// POST: Schema is at LatestSchemaVersion; safe to call repeatedly
func MigrateDB(db *sql.DB, dbPath string) error {
	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY, applied_at TEXT NOT NULL)"); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for i := current; i < len(migrations); i++ {
		version := i + 1
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", version, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply migration %d: %w", version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version, applied_at) VALUES (?, datetime('now'))", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", version, err)
		}
		slog.Info("migration_applied", "db", dbPath, "version", version)
	}

	return nil
}
