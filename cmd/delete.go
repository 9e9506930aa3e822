package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/outpost-hq/orgctl/internal/app"
	"github.com/outpost-hq/orgctl/internal/audit"
	"github.com/outpost-hq/orgctl/internal/config"
	"github.com/outpost-hq/orgctl/internal/errors"
	"github.com/outpost-hq/orgctl/internal/logging"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <alias>",
	Short: "Delete a scratch org and its local record",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var deleteNoPrompt bool

func init() {
	deleteCmd.Flags().BoolVar(&deleteNoPrompt, "no-prompt", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	alias := args[0]

	metadata, err := config.LoadOrg(paths().OrgsDir, alias)
	if err != nil {
		return errors.OrgNotFound(alias)
	}

	if !deleteNoPrompt {
		ok, err := confirm(cmd, fmt.Sprintf("Delete scratch org %s (%s)? [y/N] ", alias, metadata.Username))
		if err != nil {
			return err
		}
		if !ok {
			logInfo("Aborted")
			return nil
		}
	}

	client, err := app.Default.RequireClient()
	if err != nil {
		return err
	}

	logging.Debug("deleting scratch org", "alias", alias, "orgId", metadata.OrgID)
	logInfo("Deleting scratch org %s...", alias)

	if err := client.DeleteScratchOrg(cmd.Context(), metadata.OrgID); err != nil {
		return errors.APIError("failed to delete org "+alias, err)
	}

	if err := config.DeleteOrg(paths().OrgsDir, alias); err != nil {
		logWarning("org deleted remotely but the local record could not be removed: %v", err)
	}

	auditLog := audit.NewLogger(paths().StateDir)
	_ = auditLog.LogEvent(audit.EventDelete, alias, "org "+metadata.OrgID)
	_ = auditLog.Remove(alias)

	logSuccess("Deleted scratch org %s", alias)
	return nil
}

// confirm reads a yes/no answer from the command's input stream.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
