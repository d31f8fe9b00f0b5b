package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"task-manager/internal/config"
)

// Command represents a CLI command handler
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	appOpts []AppOption
	app     *App
	config  *config.Config
	errors  *ErrorHandler
}

// NewRootCommand creates the root cobra command with global flags. opts are
// applied to the App built for each run.
func NewRootCommand(opts ...AppOption) *RootCommand {
	root := &RootCommand{
		appOpts: opts,
		errors:  NewErrorHandler(false),
	}

	root.cmd = &cobra.Command{
		Use:   "tm",
		Short: "A terminal client for your task list",
		Long: `Task Manager (tm) manages the tasks held by a remote task service.

FEATURES:
  • Sign in with a token from your identity provider
  • List, filter, create, edit and delete tasks
  • Interactive task page with tabs and a task form (tm ui)
  • Fully configurable via environment variables and command-line flags

EXAMPLES:
  tm login                                   # Paste a token to sign in
  tm list --status in_progress               # List tasks in progress
  tm create --title "Write report" --due 2024-05-01
  tm update 42 --status completed            # Other fields are kept
  tm delete 42                               # Asks for confirmation
  tm ui                                      # Open the interactive page

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  API Configuration:
    TM_API_BASE_URL                          Task service base URL (required for task commands)
    TM_API_TIMEOUT                           Per-request timeout (default: 10s)
    TM_TOKEN                                 Use this token instead of the stored session

  Session Configuration:
    TM_SESSION_DIR                           Session directory (default: ~/.tm)
    TM_SESSION_FILENAME                      Session filename (default: session.db)

  Display Configuration:
    TM_DISPLAY_DATE_FORMAT                   Due date layout (default: 2006/01/02)
    TM_DISPLAY_TITLE_WIDTH                   Title width in lists (default: 40)

  Application Configuration:
    TM_APP_TIMEOUT                           Command timeout (default: 60s)
    TM_APP_VERBOSE                           Show error codes and causes (default: false)
    TM_DEBUG                                 Write debug records to stderr

  Command Configuration:
    TM_LIST_DEFAULT_FORMAT                   Default list format, table or json (default: table)

GETTING HELP:
  tm [command] --help                        # Get help for any specific command
  tm completion bash                         # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with ctx
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("api-url", "", "Task service base URL (overrides TM_API_BASE_URL)")
	flags.Duration("api-timeout", 0, "Per-request timeout (overrides TM_API_TIMEOUT)")
	flags.String("token", "", "Identity token to use instead of the stored session (overrides TM_TOKEN)")

	flags.String("session-dir", "", "Session directory (overrides TM_SESSION_DIR)")
	flags.String("session-filename", "", "Session filename (overrides TM_SESSION_FILENAME)")

	flags.String("date-format", "", "Due date layout (overrides TM_DISPLAY_DATE_FORMAT)")
	flags.Int("title-width", 0, "Title width in lists (overrides TM_DISPLAY_TITLE_WIDTH)")

	flags.Duration("app-timeout", 0, "Command timeout (overrides TM_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Show error codes and causes (overrides TM_APP_VERBOSE)")

	flags.String("list-format", "", "Default list format (overrides TM_LIST_DEFAULT_FORMAT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an identity token",
		Long: `Sign in by storing a token issued by your identity provider.

The token is taken from --token (or TM_TOKEN) or, if neither is set, read
from standard input. Expired tokens are refused.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The token is stored as the session rather than used directly.
			token := r.config.API.Token
			r.config.API.Token = ""
			return r.run(cmd, "sign in", r.getAppTimeout()*2, args, NewLoginCommand(r.app, token))
		},
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "sign out", r.getAppTimeout(), args, NewLogoutCommand(r.app))
		},
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "show user", r.getAppTimeout(), args, NewWhoamiCommand(r.app))
		},
	}

	var listStatus, listFormat string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List all tasks, optionally only those under one status tab.

Examples:
  tm list                        # All tasks
  tm list --status completed     # Completed tasks only
  tm list --format json          # Machine-readable output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "list tasks", r.getAppTimeout(), args, NewListCommand(r.app, listStatus, listFormat))
		},
	}
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "all", "Tab to show: all, not_started, in_progress, completed")
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "", "Output format: table or json")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "get task", r.getAppTimeout(), args, NewGetCommand(r.app))
		},
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		Long: `Create a task. The status defaults to not_started.

Example:
  tm create --title "Write report" --status in_progress --due 2024-05-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "create task", r.getAppTimeout(), args, NewCreateCommand(r.app, taskFields(cmd)))
		},
	}
	addTaskFlags(createCmd)

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task",
		Long: `Replace a task's fields. Fields that are not given keep their current
values; pass --due "" to clear the due date.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "update task", r.getAppTimeout(), args, NewUpdateCommand(r.app, taskFields(cmd)))
		},
	}
	addTaskFlags(updateCmd)

	var deleteYes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long: `Delete a task. This operation cannot be undone; you are asked to
confirm unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Confirmation waits for the user.
			return r.run(cmd, "delete task", r.getAppTimeout()*2, args, NewDeleteCommand(r.app, deleteYes))
		},
	}
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking")

	uiCmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive task page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, "run task page", 0, args, NewUICommand(r.app))
		},
	}

	r.cmd.AddCommand(
		loginCmd,
		logoutCmd,
		whoamiCmd,
		listCmd,
		getCmd,
		createCmd,
		updateCmd,
		deleteCmd,
		uiCmd,
	)
}

func addTaskFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("title", "t", "", "Task title")
	flags.StringP("description", "d", "", "Task description")
	flags.StringP("status", "s", "", "Status: not_started, in_progress or completed")
	flags.String("due", "", "Due date as YYYY-MM-DD")
}

// taskFields collects the task flags that were given on the command line.
func taskFields(cmd *cobra.Command) TaskFields {
	flags := cmd.Flags()
	get := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	return TaskFields{
		Title:       get("title"),
		Description: get("description"),
		Status:      get("status"),
		DueDate:     get("due"),
	}
}

// run executes a handler with the app timeout. A zero timeout runs without one.
func (r *RootCommand) run(cmd *cobra.Command, operation string, timeout time.Duration, args []string, handler Command) error {
	defer r.app.Close()

	ctx := cmd.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := handler.Execute(ctx, args); err != nil {
		return r.errors.Handle(operation, err)
	}
	return nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// setup loads the configuration with flag overrides and builds the App.
func (r *RootCommand) setup() error {
	cfg, err := config.NewLoader().LoadWithOverrides(r.getOverridesFromFlags())
	if err != nil {
		return r.errors.Handle("load configuration", err)
	}
	r.config = cfg
	r.errors = NewErrorHandler(cfg.Application.Verbose)
	r.app = NewAppWithConfig(cfg, r.appOpts...)
	return nil
}

// getOverridesFromFlags collects the global flags that were set
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("api-url") {
		v, _ := flags.GetString("api-url")
		overrides.APIBaseURL = &v
	}
	if flags.Changed("api-timeout") {
		v, _ := flags.GetDuration("api-timeout")
		overrides.APITimeout = &v
	}
	if flags.Changed("token") {
		v, _ := flags.GetString("token")
		overrides.Token = &v
	}

	if flags.Changed("session-dir") {
		v, _ := flags.GetString("session-dir")
		overrides.SessionDir = &v
	}
	if flags.Changed("session-filename") {
		v, _ := flags.GetString("session-filename")
		overrides.SessionFilename = &v
	}

	if flags.Changed("date-format") {
		v, _ := flags.GetString("date-format")
		overrides.DateFormat = &v
	}
	if flags.Changed("title-width") {
		v, _ := flags.GetInt("title-width")
		overrides.TitleWidth = &v
	}

	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	if flags.Changed("list-format") {
		v, _ := flags.GetString("list-format")
		overrides.ListDefaultFormat = &v
	}

	return overrides
}
