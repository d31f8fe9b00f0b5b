package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"task-manager/internal/errors"
)

// Timestamps are stored as RFC3339 text in UTC.
const timeLayout = time.RFC3339

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// encodeExpiry stores a missing expiry as NULL.
func encodeExpiry(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return encodeTime(*t)
}

func decodeTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func exec(ctx context.Context, db *sql.DB, operation, query string, args ...interface{}) error {
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return errors.NewStorageError(operation, err)
	}
	return nil
}

// queryOne scans a single row; no row is reported as a not-found error
// for resource.
func queryOne[T any](ctx context.Context, db *sql.DB, resource string, scan func(Scanner) (*T, error), query string, args ...interface{}) (*T, error) {
	v, err := scan(db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError(resource, "current")
		}
		return nil, errors.NewStorageError("read "+resource, err)
	}
	return v, nil
}
