// Package app provides the application context for orgctl.
// It allows dependency injection for testing.
package app

import (
	"path/filepath"

	"github.com/outpost-hq/orgctl/internal/config"
	"github.com/outpost-hq/orgctl/internal/errors"
	"github.com/outpost-hq/orgctl/internal/logging"
	"github.com/outpost-hq/orgctl/internal/platform"
)

// App holds the application dependencies
type App struct {
	// Paths holds the configured paths
	Paths *config.Paths

	// Config is the loaded CLI configuration, nil when no config file
	// exists yet
	Config *config.CLIConfig

	// Client is the provisioning API client
	Client platform.Client

	// Version is the orgctl build version, used in the API user agent
	Version string
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithConfig sets a custom CLI configuration
func WithConfig(cfg *config.CLIConfig) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithClient sets a custom platform client
func WithClient(c platform.Client) Option {
	return func(a *App) {
		a.Client = c
	}
}

// WithVersion sets the build version
func WithVersion(version string) Option {
	return func(a *App) {
		a.Version = version
	}
}

// New creates a new App with the given options.
// If config is not provided via WithConfig, it is loaded from the config
// directory; if no client is provided via WithClient, one is built from
// the loaded config.
func New(opts ...Option) *App {
	app := &App{
		Paths:   config.DefaultPaths(),
		Version: "dev",
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.Config == nil {
		cfg, err := config.LoadCLIConfig(app.Paths.ConfigDir)
		if err != nil {
			logging.Debug("no usable config file", "dir", app.Paths.ConfigDir, "error", err)
		} else {
			app.Config = cfg
		}
	}

	if app.Client == nil && app.Config != nil {
		app.Client = platform.NewAPI(app.Config.APIHost, app.Config.AuthToken, app.Version)
	}

	return app
}

// ConfigPath returns the expected config file location.
func (a *App) ConfigPath() string {
	return filepath.Join(a.Paths.ConfigDir, "config.toml")
}

// RequireClient returns the platform client, or a config error telling
// the user where configuration is expected.
func (a *App) RequireClient() (platform.Client, error) {
	if a.Client == nil {
		return nil, errors.ConfigError("no API configuration found; create "+a.ConfigPath()+" with api_host and auth_token", nil)
	}
	return a.Client, nil
}

// RequireConfig returns the loaded CLI config, or a config error.
func (a *App) RequireConfig() (*config.CLIConfig, error) {
	if a.Config == nil {
		return nil, errors.ConfigError("no configuration found; create "+a.ConfigPath(), nil)
	}
	return a.Config, nil
}

// DomainRetries returns the effective readiness retry budget.
func (a *App) DomainRetries() int {
	if a.Config == nil {
		return config.DefaultDomainMaxRetries
	}
	return a.Config.ResolveDomainRetries()
}

// Default is the default application instance
var Default = New()

// SetDefault replaces the default application instance. Tests use this to
// inject fakes.
func SetDefault(a *App) {
	Default = a
}
