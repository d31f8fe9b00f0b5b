package sqlite

import "time"

// Session is the persisted sign-in state. At most one row exists.
type Session struct {
	Username  string
	Subject   string
	Token     string
	ExpiresAt *time.Time // nil when the token carries no expiry
	CreatedAt time.Time
}
