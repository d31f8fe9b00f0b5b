package auth

import (
	"context"
	"time"
)

// GuestLabel is shown when the signed-in username is unavailable.
const GuestLabel = "guest"

var timeNow = time.Now

// Identity is the session collaborator the task commands run behind.
// Token satisfies client.TokenSource.
type Identity interface {
	CurrentUser(ctx context.Context) (*User, error)
	SignOut(ctx context.Context) error
	Token(ctx context.Context) (string, error)
}

// User is the signed-in principal.
type User struct {
	Username  string
	Subject   string
	ExpiresAt *time.Time
}

// DisplayName returns the username, or GuestLabel when there is none.
func DisplayName(u *User) string {
	if u == nil || u.Username == "" {
		return GuestLabel
	}
	return u.Username
}

func expired(expiresAt *time.Time) bool {
	return expiresAt != nil && !timeNow().Before(*expiresAt)
}
