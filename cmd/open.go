package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/outpost-hq/orgctl/internal/app"
	"github.com/outpost-hq/orgctl/internal/audit"
	"github.com/outpost-hq/orgctl/internal/browser"
	"github.com/outpost-hq/orgctl/internal/config"
	"github.com/outpost-hq/orgctl/internal/errors"
	"github.com/outpost-hq/orgctl/internal/logging"
	"github.com/outpost-hq/orgctl/internal/tui"
)

var openCmd = &cobra.Command{
	Use:   "open [alias]",
	Short: "Open a scratch org in the browser",
	Long: `open launches the browser against the org's authenticated login URL.

The org's subdomain is freshly provisioned and may still be propagating
through DNS; open waits for it to resolve before launching. Without an
alias the default org is opened.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOpen,
}

var (
	openURLOnly bool
	openPath    string
)

func init() {
	openCmd.Flags().BoolVar(&openURLOnly, "url-only", false, "Print the login URL instead of launching a browser")
	openCmd.Flags().StringVarP(&openPath, "path", "p", "", "Path to open inside the org after login")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	metadata, err := resolveOrg(args)
	if err != nil {
		return err
	}

	loginURL, err := browser.FrontdoorURL(metadata.InstanceURL, metadata.AuthToken, openPath)
	if err != nil {
		return err
	}

	if openURLOnly {
		fmt.Println(loginURL)
		return nil
	}

	retries := app.Default.DomainRetries()
	sink := tui.NewSink(os.Stderr, fmt.Sprintf("Waiting for %s to become resolvable", metadata.InstanceURL))
	poller := newPoller(retries, sink)

	if err := poller.WaitForURL(cmd.Context(), metadata.InstanceURL); err != nil {
		logging.Debug("readiness check failed", "instance", metadata.InstanceURL, "error", err)
		logWarning("%s is not resolving yet; opening anyway", metadata.InstanceURL)
	}

	if err := newLauncher().Open(cmd.Context(), loginURL); err != nil {
		return err
	}

	auditLog := audit.NewLogger(paths().StateDir)
	_ = auditLog.LogEvent(audit.EventOpen, metadata.Alias, "")

	logSuccess("Opened %s", metadata.Alias)
	return nil
}

// resolveOrg loads the org named on the command line, or the default org
// when no alias is given.
func resolveOrg(args []string) (*config.OrgMetadata, error) {
	if len(args) == 1 {
		metadata, err := config.LoadOrg(paths().OrgsDir, args[0])
		if err != nil {
			return nil, errors.OrgNotFound(args[0])
		}
		return metadata, nil
	}

	metadata, err := config.DefaultOrg(paths().OrgsDir)
	if err != nil {
		return nil, errors.Wrap(errors.ExitGeneralError, "failed to read org store", err)
	}
	if metadata == nil {
		return nil, errors.New(errors.ExitOrgNotFound, "no default org set; pass an alias or use create --set-default")
	}
	return metadata, nil
}
