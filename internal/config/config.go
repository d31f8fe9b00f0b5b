package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// List output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Config holds all configuration options for the task manager
type Config struct {
	API         APIConfig
	Session     SessionConfig
	Display     DisplayConfig
	Application ApplicationConfig
	Commands    CommandsConfig
}

// APIConfig holds the remote task service settings
type APIConfig struct {
	BaseURL string        `env:"TM_API_BASE_URL"`
	Timeout time.Duration `env:"TM_API_TIMEOUT"`
	Token   string        `env:"TM_TOKEN"`
}

// SessionConfig holds the local session store settings
type SessionConfig struct {
	Dir      string `env:"TM_SESSION_DIR"`
	Filename string `env:"TM_SESSION_FILENAME"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat string `env:"TM_DISPLAY_DATE_FORMAT"`
	TitleWidth int    `env:"TM_DISPLAY_TITLE_WIDTH"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TM_APP_TIMEOUT"`
	Verbose bool          `env:"TM_APP_VERBOSE"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	ListDefaultFormat string `env:"TM_LIST_DEFAULT_FORMAT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		API: APIConfig{
			Timeout: 10 * time.Second,
		},
		Session: SessionConfig{
			Dir:      filepath.Join(homeDir, ".tm"),
			Filename: "session.db",
		},
		Display: DisplayConfig{
			DateFormat: "2006/01/02",
			TitleWidth: 40,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
		Commands: CommandsConfig{
			ListDefaultFormat: FormatTable,
		},
	}
}

// GetSessionPath returns the full path to the session database
func (c *Config) GetSessionPath() string {
	return filepath.Join(c.Session.Dir, c.Session.Filename)
}

// LoadFromEnvironment loads configuration from environment variables.
// Malformed numeric values keep the current setting.
func (c *Config) LoadFromEnvironment() error {
	// API configuration
	if baseURL := os.Getenv("TM_API_BASE_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}
	if timeout := os.Getenv("TM_API_TIMEOUT"); timeout != "" {
		c.API.Timeout = ParseDurationWithFallback(timeout, c.API.Timeout)
	}
	if token := os.Getenv("TM_TOKEN"); token != "" {
		c.API.Token = token
	}

	// Session configuration
	if dir := os.Getenv("TM_SESSION_DIR"); dir != "" {
		c.Session.Dir = dir
	}
	if filename := os.Getenv("TM_SESSION_FILENAME"); filename != "" {
		c.Session.Filename = filename
	}

	// Display configuration
	if format := os.Getenv("TM_DISPLAY_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if width := os.Getenv("TM_DISPLAY_TITLE_WIDTH"); width != "" {
		c.Display.TitleWidth = ParseIntWithFallback(width, c.Display.TitleWidth)
	}

	// Application configuration
	if timeout := os.Getenv("TM_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TM_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	// Commands configuration
	if format := os.Getenv("TM_LIST_DEFAULT_FORMAT"); format != "" {
		c.Commands.ListDefaultFormat = format
	}

	return nil
}

// Validate validates the configuration and returns any errors.
// An unset API base URL is allowed here; see RequireAPI.
func (c *Config) Validate() error {
	// Validate API configuration
	if c.API.BaseURL != "" {
		if err := validateBaseURL(c.API.BaseURL); err != nil {
			return err
		}
	}
	if c.API.Timeout <= 0 {
		return &ConfigError{Field: "api.timeout", Message: "api timeout must be positive"}
	}

	// Validate session configuration
	if c.Session.Dir == "" {
		return &ConfigError{Field: "session.dir", Message: "session directory cannot be empty"}
	}
	if c.Session.Filename == "" {
		return &ConfigError{Field: "session.filename", Message: "session filename cannot be empty"}
	}

	// Validate display configuration
	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}
	if c.Display.TitleWidth < 5 {
		return &ConfigError{Field: "display.title_width", Message: "title width must be at least 5"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	// Validate commands configuration
	switch c.Commands.ListDefaultFormat {
	case FormatTable, FormatJSON:
	default:
		return &ConfigError{Field: "commands.list_default_format", Message: "list format must be table or json"}
	}

	return nil
}

// RequireAPI checks the settings needed to reach the task service
func (c *Config) RequireAPI() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return &ConfigError{Field: "api.base_url", Message: "TM_API_BASE_URL or --api-url must be set"}
	}
	return validateBaseURL(c.API.BaseURL)
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &ConfigError{Field: "api.base_url", Message: "must be an absolute http(s) URL"}
	}
	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
