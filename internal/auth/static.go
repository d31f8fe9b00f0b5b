package auth

import (
	"context"
	"strings"
	"sync"

	"task-manager/internal/errors"
)

// StaticIdentity serves a fixed token, as supplied by TM_TOKEN or --token.
// Opaque (non-JWT) tokens are accepted; their user shows as the guest label.
type StaticIdentity struct {
	mu    sync.Mutex
	token string
	user  *User
}

// NewStaticIdentity creates an identity for token.
func NewStaticIdentity(token string) *StaticIdentity {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	s := &StaticIdentity{token: token, user: &User{}}
	if claims, err := ParseToken(token); err == nil {
		s.user = &User{
			Username:  claims.Username,
			Subject:   claims.Subject,
			ExpiresAt: claims.ExpiresAt,
		}
	}
	return s
}

// CurrentUser returns the user the token names.
func (s *StaticIdentity) CurrentUser(ctx context.Context) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	u := *s.user
	return &u, nil
}

// Token returns the fixed token.
func (s *StaticIdentity) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return "", err
	}
	return s.token, nil
}

// SignOut drops the token for the rest of the process.
func (s *StaticIdentity) SignOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func (s *StaticIdentity) check() error {
	if s.token == "" {
		return errors.NewUnauthenticatedError()
	}
	if expired(s.user.ExpiresAt) {
		return errors.NewSessionExpiredError("use token", 0)
	}
	return nil
}
