// Package testutil provides test utilities for integration tests
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/outpost-hq/orgctl/internal/app"
	"github.com/outpost-hq/orgctl/internal/config"
	"github.com/outpost-hq/orgctl/internal/platform"
)

// TestEnv holds the test environment
type TestEnv struct {
	T      *testing.T
	TmpDir string
	Paths  *config.Paths
	Config *config.CLIConfig
	Client *platform.MockClient
	App    *app.App

	cleanup func()
}

// NewTestEnv creates a new test environment with a mock platform client
// and an isolated config/state layout under t.TempDir().
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()

	paths := &config.Paths{
		ConfigDir: filepath.Join(tmpDir, "config"),
		StateDir:  filepath.Join(tmpDir, "state"),
		OrgsDir:   filepath.Join(tmpDir, "state", "orgs"),
	}

	for _, dir := range []string{paths.ConfigDir, paths.StateDir, paths.OrgsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	cfg := &config.CLIConfig{
		APIHost:             "https://platform.test.example.com",
		AuthToken:           "test-token",
		DefaultDevHub:       "test-hub",
		DefaultDurationDays: config.DefaultDurationDays,
	}

	configToml := `api_host = "https://platform.test.example.com"
auth_token = "test-token"
default_dev_hub = "test-hub"
`
	if err := os.WriteFile(filepath.Join(paths.ConfigDir, "config.toml"), []byte(configToml), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	mockClient := platform.NewMockClient()

	testApp := app.New(
		app.WithPaths(paths),
		app.WithConfig(cfg),
		app.WithClient(mockClient),
	)

	originalDefault := app.Default
	app.SetDefault(testApp)

	return &TestEnv{
		T:      t,
		TmpDir: tmpDir,
		Paths:  paths,
		Config: cfg,
		Client: mockClient,
		App:    testApp,
		cleanup: func() {
			app.SetDefault(originalDefault)
		},
	}
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
	}
}
