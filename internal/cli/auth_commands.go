package cli

import (
	"context"
	"strings"

	"task-manager/internal/auth"
	"task-manager/internal/errors"
)

// signer is implemented by identities that can start a session.
type signer interface {
	SignIn(ctx context.Context, token string) (*auth.User, error)
}

// LoginCommand stores a session token issued by the identity provider.
type LoginCommand struct {
	app   *App
	token string
}

// NewLoginCommand creates a new login command handler. An empty token is
// read from the input.
func NewLoginCommand(app *App, token string) *LoginCommand {
	return &LoginCommand{app: app, token: token}
}

// Execute runs the login command
func (c *LoginCommand) Execute(ctx context.Context, args []string) error {
	identity, err := c.app.Identity()
	if err != nil {
		return err
	}
	s, ok := identity.(signer)
	if !ok {
		return errors.NewInvalidInputError("identity", nil, "does not support signing in")
	}

	token := strings.TrimSpace(c.token)
	if token == "" {
		c.app.printf("Paste your identity token: ")
		if token, err = c.app.readLine(); err != nil {
			return errors.NewInvalidInputError("token", "", "could not read token from input")
		}
		token = strings.TrimSpace(token)
	}
	if token == "" {
		return errors.NewInvalidInputError("token", "", "is required")
	}

	user, err := s.SignIn(ctx, token)
	if err != nil {
		return err
	}
	c.app.printf("Signed in as %s\n", auth.DisplayName(user))
	return nil
}

// LogoutCommand signs the current user out.
type LogoutCommand struct {
	app *App
}

// NewLogoutCommand creates a new logout command handler
func NewLogoutCommand(app *App) *LogoutCommand {
	return &LogoutCommand{app: app}
}

// Execute runs the logout command
func (c *LogoutCommand) Execute(ctx context.Context, args []string) error {
	identity, err := c.app.Identity()
	if err != nil {
		return err
	}
	if err := identity.SignOut(ctx); err != nil {
		return err
	}
	c.app.println("Signed out")
	return nil
}

// WhoamiCommand prints the signed-in user.
type WhoamiCommand struct {
	app *App
}

// NewWhoamiCommand creates a new whoami command handler
func NewWhoamiCommand(app *App) *WhoamiCommand {
	return &WhoamiCommand{app: app}
}

// Execute runs the whoami command
func (c *WhoamiCommand) Execute(ctx context.Context, args []string) error {
	identity, err := c.app.Identity()
	if err != nil {
		return err
	}
	user, err := identity.CurrentUser(ctx)
	if err != nil {
		return err
	}

	c.app.printf("Signed in as %s\n", auth.DisplayName(user))
	if user.ExpiresAt != nil {
		c.app.printf("Session expires %s\n", user.ExpiresAt.Local().Format(c.app.config.Display.DateFormat+" 15:04"))
	}
	return nil
}
