// Package browser builds authenticated frontdoor URLs and opens them in
// the user's browser.
package browser

import (
	"context"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/kballard/go-shellquote"

	orgerrors "github.com/outpost-hq/orgctl/internal/errors"
	"github.com/outpost-hq/orgctl/internal/logging"
)

const frontdoorPath = "/secur/frontdoor.jsp"

// FrontdoorURL builds the authenticated login URL for an org instance.
// retPath, when set, is where the org redirects after the session is
// established.
func FrontdoorURL(instanceURL, accessToken, retPath string) (string, error) {
	raw := instanceURL
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return "", orgerrors.BrowserError("invalid instance URL: "+instanceURL, err)
	}

	u.Path = frontdoorPath
	q := url.Values{}
	q.Set("sid", accessToken)
	if retPath != "" {
		q.Set("retURL", retPath)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Launcher opens URLs with the platform opener, or with whatever command
// line $BROWSER names.
type Launcher struct {
	run    func(ctx context.Context, name string, args ...string) error
	goos   string
	getenv func(string) string
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithRunner overrides command execution, for tests.
func WithRunner(run func(ctx context.Context, name string, args ...string) error) Option {
	return func(l *Launcher) { l.run = run }
}

// WithGOOS overrides platform detection, for tests.
func WithGOOS(goos string) Option {
	return func(l *Launcher) { l.goos = goos }
}

// WithGetenv overrides environment lookup, for tests.
func WithGetenv(getenv func(string) string) Option {
	return func(l *Launcher) { l.getenv = getenv }
}

// NewLauncher creates a Launcher with platform defaults.
func NewLauncher(opts ...Option) *Launcher {
	l := &Launcher{
		run: func(ctx context.Context, name string, args ...string) error {
			cmd := exec.CommandContext(ctx, name, args...)
			return cmd.Start()
		},
		goos:   runtime.GOOS,
		getenv: os.Getenv,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open launches the user's browser against rawURL.
func (l *Launcher) Open(ctx context.Context, rawURL string) error {
	argv, err := l.command()
	if err != nil {
		return err
	}
	argv = append(argv, rawURL)

	logging.Debug("opening browser", "command", argv[0])
	if err := l.run(ctx, argv[0], argv[1:]...); err != nil {
		return orgerrors.BrowserError("failed to open browser", err)
	}
	return nil
}

// command resolves the opener command line. $BROWSER wins and may carry
// its own arguments.
func (l *Launcher) command() ([]string, error) {
	if override := l.getenv("BROWSER"); override != "" {
		argv, err := shellquote.Split(override)
		if err != nil {
			return nil, orgerrors.BrowserError("invalid $BROWSER value: "+override, err)
		}
		if len(argv) > 0 {
			return argv, nil
		}
	}

	switch l.goos {
	case "darwin":
		return []string{"open"}, nil
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}, nil
	default:
		return []string{"xdg-open"}, nil
	}
}
