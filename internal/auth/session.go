package auth

import (
	"context"
	"strings"

	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/session/sqlite"
)

// SessionIdentity keeps the sign-in state in a persistent session store.
type SessionIdentity struct {
	store sqlite.Store
}

// NewSessionIdentity creates an identity backed by store.
func NewSessionIdentity(store sqlite.Store) *SessionIdentity {
	return &SessionIdentity{store: store}
}

// SignIn records token as the current session and returns its user.
// Expired tokens are refused.
func (s *SessionIdentity) SignIn(ctx context.Context, token string) (*User, error) {
	claims, err := ParseToken(token)
	if err != nil {
		return nil, err
	}
	if expired(claims.ExpiresAt) {
		return nil, errors.NewSessionExpiredError("sign in", 0)
	}

	session := &sqlite.Session{
		Username:  claims.Username,
		Subject:   claims.Subject,
		Token:     strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer ")),
		ExpiresAt: claims.ExpiresAt,
		CreatedAt: timeNow(),
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	logging.Debug("signed in", "username", claims.Username)
	return userFromSession(session), nil
}

// CurrentUser returns the signed-in user.
func (s *SessionIdentity) CurrentUser(ctx context.Context) (*User, error) {
	session, err := s.active(ctx)
	if err != nil {
		return nil, err
	}
	return userFromSession(session), nil
}

// Token returns the session token for the Authorization header.
func (s *SessionIdentity) Token(ctx context.Context) (string, error) {
	session, err := s.active(ctx)
	if err != nil {
		return "", err
	}
	return session.Token, nil
}

// SignOut forgets the stored session.
func (s *SessionIdentity) SignOut(ctx context.Context) error {
	logging.Debug("signing out")
	return s.store.Clear(ctx)
}

func (s *SessionIdentity) active(ctx context.Context) (*sqlite.Session, error) {
	session, err := s.store.Load(ctx)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, errors.NewUnauthenticatedError()
		}
		return nil, err
	}
	if expired(session.ExpiresAt) {
		return nil, errors.NewSessionExpiredError("restore session", 0)
	}
	return session, nil
}

func userFromSession(session *sqlite.Session) *User {
	return &User{
		Username:  session.Username,
		Subject:   session.Subject,
		ExpiresAt: session.ExpiresAt,
	}
}
