package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/outpost-hq/orgctl/internal/app"
	"github.com/outpost-hq/orgctl/internal/audit"
	"github.com/outpost-hq/orgctl/internal/config"
	"github.com/outpost-hq/orgctl/internal/errors"
	"github.com/outpost-hq/orgctl/internal/platform"
	"github.com/outpost-hq/orgctl/internal/provision"
)

var resumeCmd = &cobra.Command{
	Use:   "resume <job-id>",
	Short: "Re-attach to an in-flight scratch org request",
	Args:  cobra.ExactArgs(1),
	RunE:  runResume,
}

var (
	resumeAlias      string
	resumeWait       time.Duration
	resumeSetDefault bool
)

func init() {
	resumeCmd.Flags().StringVarP(&resumeAlias, "alias", "a", "", "Alias for the stored org (derived from the username when omitted)")
	resumeCmd.Flags().DurationVarP(&resumeWait, "wait", "w", platform.DefaultWait, "How long to wait for the org before giving up")
	resumeCmd.Flags().BoolVar(&resumeSetDefault, "set-default", false, "Mark the org as the default once ready")
	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, args []string) error {
	jobID := args[0]

	client, err := app.Default.RequireClient()
	if err != nil {
		return err
	}

	logInfo("Resuming request %s...", jobID)

	orch := provision.New(client, newRenderer())
	result, err := orch.Resume(cmd.Context(), jobID, resumeWait)
	if err != nil {
		return err
	}

	alias := resumeAlias
	if alias == "" {
		alias = deriveAlias(usernameLocalPart(result.Username))
	}
	if err := config.ValidateAlias(alias); err != nil {
		return errors.ValidationError(err.Error())
	}

	createdAt := time.Now().UTC().Format(time.RFC3339)
	devHub := ""
	if app.Default.Config != nil {
		devHub = app.Default.Config.DefaultDevHub
	}
	if err := saveOrgResult(alias, devHub, createdAt, result); err != nil {
		return errors.Wrap(errors.ExitGeneralError, "org ready but could not be stored locally", err)
	}
	if resumeSetDefault {
		if err := config.SetDefaultOrg(paths().OrgsDir, alias); err != nil {
			logWarning("could not mark %s as default: %v", alias, err)
		}
	}

	auditLog := audit.NewLogger(paths().StateDir)
	_ = auditLog.LogEvent(audit.EventResume, alias, "job "+jobID)

	displayOrgResult(alias, result)
	return nil
}

// usernameLocalPart strips the domain from an org username.
func usernameLocalPart(username string) string {
	for i := 0; i < len(username); i++ {
		if username[i] == '@' {
			return username[:i]
		}
	}
	return username
}
