package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/outpost-hq/orgctl/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "orgctl",
	Short: "Scratch org provisioning CLI",
	Long: `orgctl provisions short-lived scratch orgs for development and testing.

Each scratch org is an ephemeral environment with:
  - Its own subdomain and login URL
  - A bounded lifetime (deleted automatically on expiry)
  - A locally stored alias for quick open/delete`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// SetVersion wires the build version into the root command.
func SetVersion(version string) {
	rootCmd.Version = version
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	_          = logging.UserError // reserved for future use
)
