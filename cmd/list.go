package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/outpost-hq/orgctl/internal/config"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored scratch orgs",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	orgs, err := config.ListOrgs(paths().OrgsDir)
	if err != nil {
		return fmt.Errorf("failed to list orgs: %w", err)
	}

	if len(orgs) == 0 {
		logInfo("No orgs stored. Create one with: orgctl create -f <definition-file>")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALIAS\tUSERNAME\tORG ID\tEXPIRES\tDEFAULT")
	fmt.Fprintln(w, "-----\t--------\t------\t-------\t-------")

	for _, org := range orgs {
		marker := ""
		if org.IsDefault {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			org.Alias, org.Username, org.OrgID, formatExpiry(org.ExpiresAt), marker)
	}

	return w.Flush()
}

// formatExpiry renders an expiry timestamp as remaining time when it
// parses, and verbatim otherwise.
func formatExpiry(expiresAt string) string {
	if expiresAt == "" {
		return "-"
	}
	expiry, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		return expiresAt
	}

	remaining := time.Until(expiry)
	if remaining <= 0 {
		return "expired"
	}
	if days := int(remaining.Hours() / 24); days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(remaining.Hours()))
}
