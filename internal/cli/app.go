package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"task-manager/internal/api"
	"task-manager/internal/auth"
	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/logging"
	"task-manager/internal/taskpage"
	"task-manager/internal/tasklist"
	"task-manager/internal/tui"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// UIRunner runs the interactive task page and reports whether the user signed out.
type UIRunner func(ctx context.Context, page *taskpage.Page, identity auth.Identity, opts tasklist.Options) (bool, error)

// App holds the collaborators shared by the commands. The identity and the
// task API are created on first use so commands that need neither run
// without a configured API.
type App struct {
	config   *config.Config
	identity auth.Identity
	api      api.API
	closers  []func() error

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	runUI  UIRunner
}

// AppOption configures an App.
type AppOption func(*App)

// WithIdentity injects the identity collaborator.
func WithIdentity(identity auth.Identity) AppOption {
	return func(a *App) {
		a.identity = identity
	}
}

// WithAPI injects the task API.
func WithAPI(taskAPI api.API) AppOption {
	return func(a *App) {
		a.api = taskAPI
	}
}

// WithIO replaces the standard streams.
func WithIO(in io.Reader, out, errOut io.Writer) AppOption {
	return func(a *App) {
		a.in = bufio.NewReader(in)
		a.out = out
		a.errOut = errOut
	}
}

// WithUIRunner replaces the interactive page runner.
func WithUIRunner(run UIRunner) AppOption {
	return func(a *App) {
		a.runUI = run
	}
}

// NewAppWithConfig creates an application instance for cfg
func NewAppWithConfig(cfg *config.Config, opts ...AppOption) *App {
	app := &App{
		config: cfg,
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		errOut: os.Stderr,
		runUI:  runTUI,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Identity returns the identity collaborator, opening the session store if needed.
func (a *App) Identity() (auth.Identity, error) {
	if a.identity != nil {
		return a.identity, nil
	}
	identity, closeFn, err := config.CreateIdentity(a.config)
	if err != nil {
		return nil, err
	}
	a.identity = identity
	a.closers = append(a.closers, closeFn)
	return identity, nil
}

// TaskAPI returns the task API behind the auth gate: it fails unless the
// identity collaborator has a usable session.
func (a *App) TaskAPI(ctx context.Context) (api.API, error) {
	identity, err := a.Identity()
	if err != nil {
		return nil, err
	}
	user, err := identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	logging.Debug("task command", "user", auth.DisplayName(user))

	if a.api != nil {
		return a.api, nil
	}
	taskAPI, err := config.CreateTaskAPI(a.config, identity)
	if err != nil {
		return nil, err
	}
	a.api = taskAPI
	return taskAPI, nil
}

// Close releases anything opened on demand.
func (a *App) Close() error {
	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func (a *App) listOptions() tasklist.Options {
	opts := tasklist.DefaultOptions()
	if a.config.Display.DateFormat != "" {
		opts.DateFormat = a.config.Display.DateFormat
	}
	if a.config.Display.TitleWidth > 0 {
		opts.TitleWidth = a.config.Display.TitleWidth
	}
	return opts
}

func (a *App) today() domain.Date {
	return domain.DateOf(timeNow())
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

// readLine reads one line from the input, without the newline.
func (a *App) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runTUI(ctx context.Context, page *taskpage.Page, identity auth.Identity, opts tasklist.Options) (bool, error) {
	m, err := tui.Run(ctx, page, identity, opts)
	if err != nil {
		return false, err
	}
	return m.SignedOut(), nil
}
