package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/BurntSushi/toml"
)

// aliasRegex validates org aliases.
// Aliases must start with a lowercase letter or digit, followed by lowercase
// letters, digits, underscores, or hyphens. Maximum length is 63 characters.
var aliasRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)

// ValidateAlias checks if an org alias is valid.
// Valid aliases:
//   - Start with a lowercase letter or digit
//   - Contain only lowercase letters, digits, underscores, or hyphens
//   - Are between 1 and 63 characters long
//   - Do not contain path separators or special characters
func ValidateAlias(alias string) error {
	if alias == "" {
		return fmt.Errorf("org alias cannot be empty")
	}

	if !aliasRegex.MatchString(alias) {
		return fmt.Errorf("invalid org alias %q: must start with a lowercase letter or digit, contain only lowercase letters, digits, underscores, or hyphens, and be at most 63 characters", alias)
	}

	return nil
}

const (
	// DomainRetryEnvVar overrides the readiness retry budget when set.
	DomainRetryEnvVar = "ORGCTL_DOMAIN_RETRY"

	// DefaultDomainMaxRetries is the default readiness retry budget.
	// Combined with the fixed 1s inter-attempt delay this bounds the wait
	// to roughly four minutes, which covers normal DNS propagation.
	DefaultDomainMaxRetries = 240

	// DefaultDurationDays is the default scratch org lifetime.
	DefaultDurationDays = 7
)

// CLIConfig represents the orgctl configuration from config.toml
type CLIConfig struct {
	// APIHost is the base URL of the provisioning API.
	APIHost string `toml:"api_host"`

	// AuthToken is the bearer token for API calls. Obtaining and
	// refreshing tokens is handled outside orgctl.
	AuthToken string `toml:"auth_token"`

	// DefaultDevHub is the dev hub alias used when --dev-hub is not given.
	DefaultDevHub string `toml:"default_dev_hub"`

	// DefaultDurationDays is the scratch org lifetime when --duration-days
	// is not given.
	DefaultDurationDays int `toml:"default_duration_days"`

	// DomainMaxRetries bounds the readiness poll. 0 disables the check.
	DomainMaxRetries int `toml:"domain_max_retries"`

	// domainRetriesSet records whether domain_max_retries appeared in the
	// config file, so an explicit 0 ("skip the check") survives defaulting.
	domainRetriesSet bool
}

// Validate checks that the CLIConfig is valid.
func (c *CLIConfig) Validate() error {
	if c.APIHost == "" {
		return fmt.Errorf("api_host is required")
	}
	if c.DomainMaxRetries < 0 {
		return fmt.Errorf("domain_max_retries cannot be negative")
	}
	return nil
}

// applyDefaults fills zero-valued optional fields.
func (c *CLIConfig) applyDefaults() {
	if c.DefaultDurationDays == 0 {
		c.DefaultDurationDays = DefaultDurationDays
	}
}

// ResolveDomainRetries returns the effective readiness retry budget,
// honoring the ORGCTL_DOMAIN_RETRY environment override.
func (c *CLIConfig) ResolveDomainRetries() int {
	if v := os.Getenv(DomainRetryEnvVar); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	if c.DomainMaxRetries > 0 || c.domainRetriesSet {
		return c.DomainMaxRetries
	}
	return DefaultDomainMaxRetries
}

// Paths holds the directory layout used by orgctl.
type Paths struct {
	ConfigDir string
	StateDir  string
	OrgsDir   string
}

// DefaultPaths returns the default per-user path configuration.
func DefaultPaths() *Paths {
	configDir := defaultConfigDir()
	stateDir := defaultStateDir()
	return &Paths{
		ConfigDir: configDir,
		StateDir:  stateDir,
		OrgsDir:   filepath.Join(stateDir, "orgs"),
	}
}

func defaultConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "orgctl")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("/etc", "orgctl")
	}
	return filepath.Join(home, ".config", "orgctl")
}

func defaultStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "orgctl")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("/var/lib", "orgctl")
	}
	return filepath.Join(home, ".local", "state", "orgctl")
}

// LoadCLIConfig loads the orgctl configuration from config.toml
func LoadCLIConfig(configDir string) (*CLIConfig, error) {
	configPath := filepath.Join(configDir, "config.toml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg CLIConfig
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.applyDefaults()
	cfg.domainRetriesSet = meta.IsDefined("domain_max_retries")

	return &cfg, nil
}
