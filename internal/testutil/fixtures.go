package testutil

import (
	"time"

	"github.com/outpost-hq/orgctl/internal/config"
	"github.com/outpost-hq/orgctl/internal/platform"
)

// SampleOrg returns plausible stored-org metadata for an alias.
func SampleOrg(alias string) *config.OrgMetadata {
	return &config.OrgMetadata{
		Alias:       alias,
		Username:    alias + "@scratch.test.example.com",
		OrgID:       "00DTEST0000000001",
		DevHub:      "test-hub",
		InstanceURL: "https://" + alias + ".scratch.test.example.com",
		AuthToken:   "session-token",
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		ExpiresAt:   time.Now().UTC().Add(7 * 24 * time.Hour).Format(time.RFC3339),
	}
}

// SaveOrg stores sample metadata in the environment's org store.
func (e *TestEnv) SaveOrg(metadata *config.OrgMetadata) {
	e.T.Helper()
	if err := config.SaveOrg(e.Paths.OrgsDir, metadata); err != nil {
		e.T.Fatalf("Failed to save org %s: %v", metadata.Alias, err)
	}
}

// SampleCreateResult returns a completed provisioning result for an alias.
func SampleCreateResult(alias string) *platform.CreateResult {
	return &platform.CreateResult{
		JobID:       "0RxTEST0000000001",
		OrgID:       "00DTEST0000000001",
		Username:    alias + "@scratch.test.example.com",
		InstanceURL: "https://" + alias + ".scratch.test.example.com",
		AuthToken:   "session-token",
		ExpiresAt:   time.Now().UTC().Add(7 * 24 * time.Hour).Format(time.RFC3339),
	}
}
