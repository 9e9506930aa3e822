package browser

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	orgerrors "github.com/outpost-hq/orgctl/internal/errors"
)

func TestFrontdoorURL(t *testing.T) {
	tests := []struct {
		name        string
		instanceURL string
		token       string
		retPath     string
		wantHost    string
		wantRetURL  string
		wantErr     bool
	}{
		{
			name:        "full https instance",
			instanceURL: "https://fluffy-bunny-123.scratch.example.com",
			token:       "00D!session",
			wantHost:    "fluffy-bunny-123.scratch.example.com",
		},
		{
			name:        "scheme-less instance gains https",
			instanceURL: "fluffy-bunny-123.scratch.example.com",
			token:       "tok",
			wantHost:    "fluffy-bunny-123.scratch.example.com",
		},
		{
			name:        "return path carried as retURL",
			instanceURL: "https://fluffy-bunny-123.scratch.example.com",
			token:       "tok",
			retPath:     "/lightning/setup/home",
			wantHost:    "fluffy-bunny-123.scratch.example.com",
			wantRetURL:  "/lightning/setup/home",
		},
		{
			name:        "empty instance rejected",
			instanceURL: "",
			token:       "tok",
			wantErr:     true,
		},
		{
			name:        "garbage instance rejected",
			instanceURL: "://///",
			token:       "tok",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FrontdoorURL(tt.instanceURL, tt.token, tt.retPath)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("FrontdoorURL() = %q, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("FrontdoorURL() error = %v", err)
			}

			u, err := url.Parse(got)
			if err != nil {
				t.Fatalf("result does not parse: %v", err)
			}
			if u.Scheme != "https" {
				t.Errorf("scheme = %q, want https", u.Scheme)
			}
			if u.Hostname() != tt.wantHost {
				t.Errorf("host = %q, want %q", u.Hostname(), tt.wantHost)
			}
			if u.Path != "/secur/frontdoor.jsp" {
				t.Errorf("path = %q, want /secur/frontdoor.jsp", u.Path)
			}
			if sid := u.Query().Get("sid"); sid != tt.token {
				t.Errorf("sid = %q, want %q", sid, tt.token)
			}
			if retURL := u.Query().Get("retURL"); retURL != tt.wantRetURL {
				t.Errorf("retURL = %q, want %q", retURL, tt.wantRetURL)
			}
		})
	}
}

// runRecorder captures the command a launch resolved to.
type runRecorder struct {
	name string
	args []string
	err  error
}

func (r *runRecorder) run(_ context.Context, name string, args ...string) error {
	r.name = name
	r.args = args
	return r.err
}

func noEnv(string) string { return "" }

func TestOpen_PlatformDefaults(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
	}{
		{"darwin", "open"},
		{"linux", "xdg-open"},
		{"freebsd", "xdg-open"},
		{"windows", "rundll32"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			rec := &runRecorder{}
			l := NewLauncher(WithRunner(rec.run), WithGOOS(tt.goos), WithGetenv(noEnv))

			if err := l.Open(context.Background(), "https://org.example.com/secur/frontdoor.jsp?sid=tok"); err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if rec.name != tt.wantName {
				t.Errorf("opener = %q, want %q", rec.name, tt.wantName)
			}
			if len(rec.args) == 0 || !strings.HasPrefix(rec.args[len(rec.args)-1], "https://org.example.com") {
				t.Errorf("args = %v, want URL as final argument", rec.args)
			}
		})
	}
}

func TestOpen_BrowserEnvOverride(t *testing.T) {
	rec := &runRecorder{}
	env := func(key string) string {
		if key == "BROWSER" {
			return `firefox --new-window --profile "Scratch Orgs"`
		}
		return ""
	}
	l := NewLauncher(WithRunner(rec.run), WithGOOS("linux"), WithGetenv(env))

	if err := l.Open(context.Background(), "https://org.example.com"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if rec.name != "firefox" {
		t.Errorf("opener = %q, want firefox", rec.name)
	}
	want := []string{"--new-window", "--profile", "Scratch Orgs", "https://org.example.com"}
	if len(rec.args) != len(want) {
		t.Fatalf("args = %v, want %v", rec.args, want)
	}
	for i := range want {
		if rec.args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, rec.args[i], want[i])
		}
	}
}

func TestOpen_InvalidBrowserEnv(t *testing.T) {
	env := func(key string) string {
		if key == "BROWSER" {
			return `firefox "unterminated`
		}
		return ""
	}
	l := NewLauncher(WithRunner((&runRecorder{}).run), WithGetenv(env))

	err := l.Open(context.Background(), "https://org.example.com")
	if err == nil {
		t.Fatal("Open() error = nil, want invalid $BROWSER error")
	}
	if code := orgerrors.GetExitCode(err); code != orgerrors.ExitBrowser {
		t.Errorf("exit code = %d, want %d", code, orgerrors.ExitBrowser)
	}
}

func TestOpen_RunnerFailureWrapped(t *testing.T) {
	cause := errors.New("exec: \"xdg-open\": executable file not found in $PATH")
	rec := &runRecorder{err: cause}
	l := NewLauncher(WithRunner(rec.run), WithGOOS("linux"), WithGetenv(noEnv))

	err := l.Open(context.Background(), "https://org.example.com")
	if !errors.Is(err, cause) {
		t.Errorf("Open() error = %v, want wrapped runner failure", err)
	}
	if code := orgerrors.GetExitCode(err); code != orgerrors.ExitBrowser {
		t.Errorf("exit code = %d, want %d", code, orgerrors.ExitBrowser)
	}
}
