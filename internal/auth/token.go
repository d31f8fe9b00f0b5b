package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"task-manager/internal/errors"
)

// usernameClaims are checked in order; identity providers differ in which
// one carries the display name.
var usernameClaims = []string{"cognito:username", "username", "preferred_username", "email"}

// TokenClaims is what the client reads from an identity token.
type TokenClaims struct {
	Username  string
	Subject   string
	ExpiresAt *time.Time
}

// ParseToken decodes the claims of a JWT without verifying its signature;
// the API gateway verifies tokens, the client only needs the display name
// and expiry. A "Bearer " prefix is tolerated.
func ParseToken(raw string) (*TokenClaims, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	if raw == "" {
		return nil, errors.NewInvalidInputError("token", "", "is required")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		appErr := errors.NewInvalidInputError("token", "<redacted>", "not a valid JWT")
		appErr.Cause = err
		return nil, appErr
	}

	tc := &TokenClaims{}
	for _, key := range usernameClaims {
		if v, ok := claims[key].(string); ok && v != "" {
			tc.Username = v
			break
		}
	}
	if sub, err := claims.GetSubject(); err == nil {
		tc.Subject = sub
	}
	if tc.Username == "" {
		tc.Username = tc.Subject
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		appErr := errors.NewInvalidInputError("token", "<redacted>", "malformed exp claim")
		appErr.Cause = err
		return nil, appErr
	}
	if exp != nil {
		t := exp.Time
		tc.ExpiresAt = &t
	}
	return tc, nil
}
