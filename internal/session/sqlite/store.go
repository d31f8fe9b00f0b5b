package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"task-manager/internal/errors"
	"task-manager/internal/session/sqlite/migrations"

	_ "modernc.org/sqlite"
)

const currentSessionID = 1

// Store defines the persistence operations for the signed-in session
type Store interface {
	Save(ctx context.Context, session *Session) error
	Load(ctx context.Context) (*Session, error)
	Clear(ctx context.Context) error
	Close() error
}

// SQLiteStore implements Store on a local SQLite file
type SQLiteStore struct {
	db *sql.DB
}

// New opens (creating if needed) the session database at dbPath
func New(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, errors.NewStorageError("create session directory", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	// A single connection keeps :memory: databases shared across calls.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save replaces the stored session
func (s *SQLiteStore) Save(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return errors.NewInvalidInputError("session", session, "token is required")
	}

	query := `
	INSERT INTO sessions (id, username, subject, token, expires_at, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		username = excluded.username,
		subject = excluded.subject,
		token = excluded.token,
		expires_at = excluded.expires_at,
		created_at = excluded.created_at`

	return exec(ctx, s.db, "save session", query,
		currentSessionID,
		session.Username,
		session.Subject,
		session.Token,
		encodeExpiry(session.ExpiresAt),
		encodeTime(session.CreatedAt),
	)
}

// Load returns the stored session, or a not-found error when signed out
func (s *SQLiteStore) Load(ctx context.Context) (*Session, error) {
	query := `
	SELECT username, subject, token, expires_at, created_at
	FROM sessions
	WHERE id = ?`

	return queryOne(ctx, s.db, "session", ScanSession, query, currentSessionID)
}

// Clear removes the stored session. Clearing an empty store is not an error.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return exec(ctx, s.db, "clear session", `DELETE FROM sessions WHERE id = ?`, currentSessionID)
}
