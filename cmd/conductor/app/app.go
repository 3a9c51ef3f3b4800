// Package app provides the application context and dependency management
// for the conductor CLI. It centralizes configuration, logging and the
// lazily created Smartsheet client and runner.
package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/conductor/internal/cmd/application"
	"github.com/agentstation/conductor/internal/smartsheet"
	"github.com/agentstation/conductor/pkg/conductor"
	"github.com/agentstation/conductor/pkg/errors"
	"github.com/agentstation/conductor/pkg/sheets"
)

// App represents the conductor application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Sheet client and runner (lazy-initialized, singleton)
	mu        sync.Mutex
	client    sheets.Client
	conductor application.Conductor
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Output
}

// RunTimeout returns the configured run timeout.
func (a *App) RunTimeout() time.Duration {
	return a.config.RunTimeout
}

// Conductor returns the runner for the configured conductor sheet, creating
// it and its Smartsheet client on first use.
func (a *App) Conductor() (application.Conductor, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.conductor != nil {
		return a.conductor, nil
	}

	if a.config.ConductorSheetID <= 0 {
		return nil, errors.NewConfigError("conductor", "CONDUCTOR_SHEET_ID must be a sheet id", nil)
	}

	if a.client == nil {
		if err := a.config.Validate(); err != nil {
			return nil, err
		}
		opts := []smartsheet.Option{smartsheet.WithTimeout(a.config.RequestTimeout)}
		if a.config.BaseURL != "" {
			opts = append(opts, smartsheet.WithBaseURL(a.config.BaseURL))
		}
		client, err := smartsheet.New(a.config.Token, opts...)
		if err != nil {
			return nil, errors.WrapResource("create", "smartsheet client", "", err)
		}
		a.client = client
	}

	a.conductor = conductor.New(a.client, a.config.ConductorSheetID)
	return a.conductor, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithSheetsClient sets the sheet client runs use (useful for testing).
func WithSheetsClient(client sheets.Client) Option {
	return func(a *App) error {
		a.client = client
		return nil
	}
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
