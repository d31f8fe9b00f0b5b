package sqlite

import (
	"database/sql"
	"fmt"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// ScanSession scans a session from a database row
func ScanSession(scanner Scanner) (*Session, error) {
	session := &Session{}
	var expiresAt sql.NullString
	var createdAt string

	err := scanner.Scan(
		&session.Username,
		&session.Subject,
		&session.Token,
		&expiresAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	session.CreatedAt, err = decodeTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	if expiresAt.Valid {
		t, err := decodeTime(expiresAt.String)
		if err != nil {
			return nil, fmt.Errorf("expires_at: %w", err)
		}
		session.ExpiresAt = &t
	}

	return session, nil
}
