package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/outpost-hq/orgctl/internal/app"
	"github.com/outpost-hq/orgctl/internal/audit"
	"github.com/outpost-hq/orgctl/internal/config"
	"github.com/outpost-hq/orgctl/internal/errors"
	"github.com/outpost-hq/orgctl/internal/logging"
	"github.com/outpost-hq/orgctl/internal/platform"
	"github.com/outpost-hq/orgctl/internal/provision"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new scratch org",
	Args:  cobra.NoArgs,
	RunE:  runCreate,
}

var (
	createDefinition   string
	createAlias        string
	createDurationDays int
	createDevHub       string
	createAsync        bool
	createWait         time.Duration
	createSetDefault   bool
)

func init() {
	createCmd.Flags().StringVarP(&createDefinition, "definition-file", "f", "", "Path to the scratch org definition file (required)")
	createCmd.Flags().StringVarP(&createAlias, "alias", "a", "", "Alias for the stored org (derived from the org name when omitted)")
	createCmd.Flags().IntVarP(&createDurationDays, "duration-days", "d", 0, "Org lifetime in days (default from config)")
	createCmd.Flags().StringVar(&createDevHub, "dev-hub", "", "Dev hub alias (default from config)")
	createCmd.Flags().BoolVar(&createAsync, "async", false, "Return once the request is accepted instead of waiting")
	createCmd.Flags().DurationVarP(&createWait, "wait", "w", platform.DefaultWait, "How long to wait for the org before giving up")
	createCmd.Flags().BoolVar(&createSetDefault, "set-default", false, "Mark the new org as the default")
	if err := createCmd.MarkFlagRequired("definition-file"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	def, err := config.LoadDefinition(createDefinition)
	if err != nil {
		return errors.DefinitionError("failed to load definition", err)
	}

	alias := createAlias
	if alias == "" {
		alias = deriveAlias(def.OrgName)
	}
	if err := config.ValidateAlias(alias); err != nil {
		return errors.ValidationError(err.Error())
	}
	if config.OrgExists(paths().OrgsDir, alias) {
		return errors.ValidationError("org alias already in use: " + alias)
	}

	client, err := app.Default.RequireClient()
	if err != nil {
		return err
	}
	cfg, err := app.Default.RequireConfig()
	if err != nil {
		return err
	}

	devHub := createDevHub
	if devHub == "" {
		devHub = cfg.DefaultDevHub
	}
	if devHub == "" {
		return errors.ConfigError("no dev hub configured; pass --dev-hub or set default_dev_hub in "+app.Default.ConfigPath(), nil)
	}

	durationDays := createDurationDays
	if durationDays == 0 {
		durationDays = cfg.DefaultDurationDays
	}

	logging.Debug("starting scratch org creation",
		"alias", alias, "devHub", devHub, "durationDays", durationDays, "async", createAsync)

	req := platform.CreateRequest{
		OrgName:       def.OrgName,
		Edition:       def.Edition,
		AdminEmail:    def.AdminEmail,
		HasSampleData: def.HasSampleData,
		Features:      def.Features,
		Settings:      def.Settings,
		Extra:         def.Extra,
		DurationDays:  durationDays,
		DevHub:        devHub,
		Async:         createAsync,
		Wait:          createWait,
	}

	logInfo("Creating scratch org %s...", alias)

	orch := provision.New(client, newRenderer())
	result, err := orch.Create(cmd.Context(), req)
	if err != nil {
		return err
	}

	if createAsync {
		logSuccess("Request %s accepted", result.JobID)
		return nil
	}

	createdAt := time.Now().UTC().Format(time.RFC3339)
	if err := saveOrgResult(alias, devHub, createdAt, result); err != nil {
		return errors.Wrap(errors.ExitGeneralError, "org created but could not be stored locally", err)
	}
	if createSetDefault {
		if err := config.SetDefaultOrg(paths().OrgsDir, alias); err != nil {
			logWarning("could not mark %s as default: %v", alias, err)
		}
	}

	auditLog := audit.NewLogger(paths().StateDir)
	_ = auditLog.LogEvent(audit.EventCreate, alias, "job "+result.JobID)

	displayOrgResult(alias, result)
	return nil
}
