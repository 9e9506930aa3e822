package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/outpost-hq/orgctl/internal/config"
	"github.com/outpost-hq/orgctl/internal/errors"
	"github.com/outpost-hq/orgctl/internal/lifecycle"
	"github.com/outpost-hq/orgctl/internal/platform"
	"github.com/outpost-hq/orgctl/internal/readiness"
	"github.com/outpost-hq/orgctl/internal/testutil"
)

// testCmd returns a command carrying the test's context, matching what
// Execute would provide.
func testCmd(t *testing.T) *cobra.Command {
	t.Helper()
	c := &cobra.Command{}
	c.SetContext(t.Context())
	return c
}

func writeDefinition(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "definition.json")
	definition := `{
  "orgName": "My Test Org",
  "edition": "developer",
  "features": ["API", "AuthorApex"]
}`
	if err := os.WriteFile(path, []byte(definition), 0644); err != nil {
		t.Fatalf("failed to write definition: %v", err)
	}
	return path
}

func resetCreateFlags() {
	createDefinition = ""
	createAlias = ""
	createDurationDays = 0
	createDevHub = ""
	createAsync = false
	createWait = platform.DefaultWait
	createSetDefault = false
}

func TestRunCreate(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	resetCreateFlags()

	env.Client.CreateResult = testutil.SampleCreateResult("my-test-org")
	env.Client.Stages = []lifecycle.Stage{
		lifecycle.StageRequestSent,
		lifecycle.StagePolling,
		lifecycle.StageAvailable,
		lifecycle.StageDone,
	}

	createDefinition = writeDefinition(t, env.TmpDir)

	if err := runCreate(testCmd(t), nil); err != nil {
		t.Fatalf("runCreate() error = %v", err)
	}

	calls := env.Client.GetCallsFor("CreateScratchOrg")
	if len(calls) != 1 {
		t.Fatalf("CreateScratchOrg called %d times, want 1", len(calls))
	}
	req := calls[0].Args[0].(platform.CreateRequest)
	if req.Edition != "developer" {
		t.Errorf("Edition = %q", req.Edition)
	}
	if req.DevHub != "test-hub" {
		t.Errorf("DevHub = %q, want the configured default", req.DevHub)
	}
	if req.DurationDays != config.DefaultDurationDays {
		t.Errorf("DurationDays = %d, want default %d", req.DurationDays, config.DefaultDurationDays)
	}

	// Alias is derived from the org name.
	stored, err := config.LoadOrg(env.Paths.OrgsDir, "my-test-org")
	if err != nil {
		t.Fatalf("LoadOrg() error = %v", err)
	}
	if stored.Username != "my-test-org@scratch.test.example.com" {
		t.Errorf("stored Username = %q", stored.Username)
	}
	if stored.AuthToken == "" {
		t.Error("stored org should carry the session token")
	}
}

func TestRunCreate_AliasCollision(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	resetCreateFlags()

	env.SaveOrg(testutil.SampleOrg("taken"))
	createDefinition = writeDefinition(t, env.TmpDir)
	createAlias = "taken"

	err := runCreate(testCmd(t), nil)
	if err == nil {
		t.Fatal("runCreate() error = nil, want alias collision")
	}
	if len(env.Client.GetCallsFor("CreateScratchOrg")) != 0 {
		t.Error("no API call should happen on a local collision")
	}
}

func TestRunCreate_AsyncDoesNotStore(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	resetCreateFlags()

	env.Client.CreateResult = &platform.CreateResult{JobID: "0RxTEST0000000001"}
	createDefinition = writeDefinition(t, env.TmpDir)
	createAsync = true

	if err := runCreate(testCmd(t), nil); err != nil {
		t.Fatalf("runCreate() error = %v", err)
	}

	if config.OrgExists(env.Paths.OrgsDir, "my-test-org") {
		t.Error("async create must not store org metadata yet")
	}
}

func TestRunCreate_SetDefault(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	resetCreateFlags()

	env.Client.CreateResult = testutil.SampleCreateResult("my-test-org")
	createDefinition = writeDefinition(t, env.TmpDir)
	createSetDefault = true

	if err := runCreate(testCmd(t), nil); err != nil {
		t.Fatalf("runCreate() error = %v", err)
	}

	def, err := config.DefaultOrg(env.Paths.OrgsDir)
	if err != nil {
		t.Fatalf("DefaultOrg() error = %v", err)
	}
	if def == nil || def.Alias != "my-test-org" {
		t.Errorf("default org = %+v, want my-test-org", def)
	}
}

func TestRunResume(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	resumeAlias = ""
	resumeWait = platform.DefaultWait
	resumeSetDefault = false

	env.Client.ResumeResult = testutil.SampleCreateResult("resumed-org")
	env.Client.ResumeResult.Username = "resumed-org@scratch.test.example.com"

	if err := runResume(testCmd(t), []string{"0RxTEST0000000001"}); err != nil {
		t.Fatalf("runResume() error = %v", err)
	}

	calls := env.Client.GetCallsFor("ResumeScratchOrg")
	if len(calls) != 1 || calls[0].Args[0].(string) != "0RxTEST0000000001" {
		t.Fatalf("resume calls = %+v", calls)
	}

	// Alias derived from the username's local part.
	if !config.OrgExists(env.Paths.OrgsDir, "resumed-org") {
		t.Error("resumed org should be stored under the derived alias")
	}
}

func TestRunList_Empty(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()

	if err := runList(testCmd(t), nil); err != nil {
		t.Fatalf("runList() error = %v", err)
	}
}

func TestRunDelete_NoPrompt(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	deleteNoPrompt = true

	env.SaveOrg(testutil.SampleOrg("doomed"))

	if err := runDelete(testCmd(t), []string{"doomed"}); err != nil {
		t.Fatalf("runDelete() error = %v", err)
	}

	calls := env.Client.GetCallsFor("DeleteScratchOrg")
	if len(calls) != 1 || calls[0].Args[0].(string) != "00DTEST0000000001" {
		t.Fatalf("delete calls = %+v", calls)
	}
	if config.OrgExists(env.Paths.OrgsDir, "doomed") {
		t.Error("local record should be removed after delete")
	}
}

func TestRunDelete_NotFound(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	deleteNoPrompt = true

	err := runDelete(testCmd(t), []string{"missing"})
	if err == nil {
		t.Fatal("runDelete() error = nil, want org-not-found")
	}
	if code := errors.GetExitCode(err); code != errors.ExitOrgNotFound {
		t.Errorf("exit code = %d, want %d", code, errors.ExitOrgNotFound)
	}
}

func TestRunOpen_URLOnly(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	openURLOnly = true
	openPath = ""
	defer func() { openURLOnly = false }()

	env.SaveOrg(testutil.SampleOrg("browse-me"))

	if err := runOpen(testCmd(t), []string{"browse-me"}); err != nil {
		t.Fatalf("runOpen() error = %v", err)
	}
}

// openerFunc adapts a function to the urlOpener seam.
type openerFunc func(ctx context.Context, rawURL string) error

func (f openerFunc) Open(ctx context.Context, rawURL string) error { return f(ctx, rawURL) }

// deadResolver never resolves anything.
type deadResolver struct{}

func (deadResolver) LookupHost(context.Context, string) ([]string, error) {
	return nil, fmt.Errorf("no such host")
}

// A domain that never becomes resolvable must not block the open: the
// user gets a warning and the browser launches anyway.
func TestRunOpen_ReadinessTimeoutOpensAnyway(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	openURLOnly = false
	openPath = ""

	env.SaveOrg(testutil.SampleOrg("slow-dns"))

	var opened []string
	origLauncher := newLauncher
	newLauncher = func() urlOpener {
		return openerFunc(func(_ context.Context, rawURL string) error {
			opened = append(opened, rawURL)
			return nil
		})
	}
	defer func() { newLauncher = origLauncher }()

	origPoller := newPoller
	newPoller = func(maxAttempts int, sink readiness.Sink) *readiness.Poller {
		return readiness.New(maxAttempts, sink,
			readiness.WithResolver(deadResolver{}),
			readiness.WithSleep(func(time.Duration) {}))
	}
	defer func() { newPoller = origPoller }()

	var warnings []string
	origWarn := logWarning
	logWarning = func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}
	defer func() { logWarning = origWarn }()

	if err := runOpen(testCmd(t), []string{"slow-dns"}); err != nil {
		t.Fatalf("runOpen() error = %v", err)
	}

	if len(opened) != 1 {
		t.Fatalf("browser launched %d times, want exactly 1", len(opened))
	}
	if !strings.Contains(opened[0], "frontdoor.jsp") {
		t.Errorf("opened %q, want the frontdoor URL", opened[0])
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "opening anyway") {
		t.Errorf("warnings = %v, want the opening-anyway warning", warnings)
	}
}

func TestResolveOrg_DefaultFallback(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()

	env.SaveOrg(testutil.SampleOrg("first"))
	env.SaveOrg(testutil.SampleOrg("second"))
	if err := config.SetDefaultOrg(env.Paths.OrgsDir, "second"); err != nil {
		t.Fatalf("SetDefaultOrg() error = %v", err)
	}

	metadata, err := resolveOrg(nil)
	if err != nil {
		t.Fatalf("resolveOrg() error = %v", err)
	}
	if metadata.Alias != "second" {
		t.Errorf("default org = %q, want second", metadata.Alias)
	}
}

func TestResolveOrg_NoDefault(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()

	env.SaveOrg(testutil.SampleOrg("only"))

	_, err := resolveOrg(nil)
	if err == nil {
		t.Fatal("resolveOrg() error = nil, want no-default error")
	}
	if code := errors.GetExitCode(err); code != errors.ExitOrgNotFound {
		t.Errorf("exit code = %d, want %d", code, errors.ExitOrgNotFound)
	}
}

func TestDeriveAlias(t *testing.T) {
	tests := []struct {
		orgName string
		want    string
	}{
		{"My Test Org", "my-test-org"},
		{"already-valid", "already-valid"},
		{"Weird!!Chars##", "weirdchars"},
		{"  spaced out  ", "spaced-out"},
	}

	for _, tt := range tests {
		t.Run(tt.orgName, func(t *testing.T) {
			if got := deriveAlias(tt.orgName); got != tt.want {
				t.Errorf("deriveAlias(%q) = %q, want %q", tt.orgName, got, tt.want)
			}
		})
	}
}

func TestFormatExpiry(t *testing.T) {
	future := time.Now().Add(72*time.Hour + time.Minute).UTC().Format(time.RFC3339)
	past := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)

	tests := []struct {
		name      string
		expiresAt string
		want      string
	}{
		{"empty", "", "-"},
		{"unparseable passes through", "soon", "soon"},
		{"future in days", future, "3d"},
		{"expired", past, "expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatExpiry(tt.expiresAt); got != tt.want {
				t.Errorf("formatExpiry(%q) = %q, want %q", tt.expiresAt, got, tt.want)
			}
		})
	}
}
