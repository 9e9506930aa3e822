package cmd

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/outpost-hq/orgctl/internal/app"
	"github.com/outpost-hq/orgctl/internal/browser"
	"github.com/outpost-hq/orgctl/internal/config"
	"github.com/outpost-hq/orgctl/internal/platform"
	"github.com/outpost-hq/orgctl/internal/readiness"
	"github.com/outpost-hq/orgctl/internal/tracker"
	"github.com/outpost-hq/orgctl/internal/tui"
)

// paths returns the active path configuration.
func paths() *config.Paths {
	return app.Default.Paths
}

// newRenderer builds the progress surface for one attempt. Stderr keeps
// stdout clean for scripted consumers.
func newRenderer() tracker.Renderer {
	return tui.NewRenderer(os.Stderr)
}

// urlOpener launches the user's browser against a URL.
type urlOpener interface {
	Open(ctx context.Context, rawURL string) error
}

// newLauncher builds the browser opener for one open invocation.
var newLauncher = func() urlOpener {
	return browser.NewLauncher()
}

// newPoller builds the readiness poller for one open invocation.
var newPoller = func(maxAttempts int, sink readiness.Sink) *readiness.Poller {
	return readiness.New(maxAttempts, sink)
}

var aliasCleaner = regexp.MustCompile(`[^a-z0-9_-]+`)

// deriveAlias turns an org display name into a storable alias.
func deriveAlias(orgName string) string {
	alias := strings.ToLower(strings.TrimSpace(orgName))
	alias = strings.ReplaceAll(alias, " ", "-")
	alias = aliasCleaner.ReplaceAllString(alias, "")
	alias = strings.Trim(alias, "-_")
	if len(alias) > 63 {
		alias = alias[:63]
	}
	return alias
}

// saveOrgResult persists a completed provisioning result under alias.
func saveOrgResult(alias, devHub, createdAt string, result *platform.CreateResult) error {
	return config.SaveOrg(paths().OrgsDir, &config.OrgMetadata{
		Alias:       alias,
		Username:    result.Username,
		OrgID:       result.OrgID,
		DevHub:      devHub,
		InstanceURL: result.InstanceURL,
		AuthToken:   result.AuthToken,
		CreatedAt:   createdAt,
		ExpiresAt:   result.ExpiresAt,
	})
}

// displayOrgResult shows a completed provisioning result to the user.
func displayOrgResult(alias string, result *platform.CreateResult) {
	logSuccess("Scratch org %s is ready", alias)
	fmt.Printf("  Username: %s\n", result.Username)
	fmt.Printf("  Org ID: %s\n", result.OrgID)
	fmt.Printf("  Instance: %s\n", result.InstanceURL)
	if result.ExpiresAt != "" {
		fmt.Printf("  Expires: %s\n", result.ExpiresAt)
	}
	fmt.Printf("  Open with: orgctl open %s\n", alias)
}
