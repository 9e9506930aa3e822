// Package readiness probes whether a freshly provisioned org's custom
// subdomain resolves before the CLI redirects a browser at it. DNS
// propagation is the dominant wait, so the retry policy is a bounded
// linear loop with a fixed delay, not exponential backoff.
package readiness

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/outpost-hq/orgctl/internal/logging"
)

// DefaultDelay is the fixed wait between resolution attempts.
const DefaultDelay = time.Second

// Resolver performs a single name resolution. The resolved addresses are
// used only as a boolean readiness signal.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Sink receives waiting-indicator signals from the poller. StartWaiting is
// invoked at most once per session (after the first failed attempt);
// StopWaiting at most once (on success after a failure, or on exhaustion).
type Sink interface {
	StartWaiting()
	StopWaiting()
}

// NopSink discards all indicator signals.
type NopSink struct{}

func (NopSink) StartWaiting() {}
func (NopSink) StopWaiting()  {}

// TimeoutError is returned when the retry budget is exhausted. It wraps
// the last underlying resolution error. Callers may choose to proceed
// without verification anyway.
type TimeoutError struct {
	Domain   string
	Attempts int
	Last     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("domain %s did not resolve after %d attempts: %v", e.Domain, e.Attempts, e.Last)
}

func (e *TimeoutError) Unwrap() error {
	return e.Last
}

// Poller checks a domain for resolvability with a bounded linear retry.
type Poller struct {
	resolver    Resolver
	sink        Sink
	maxAttempts int
	delay       time.Duration
	sleep       func(time.Duration)
}

// Option configures a Poller.
type Option func(*Poller)

// WithResolver sets a custom resolver.
func WithResolver(r Resolver) Option {
	return func(p *Poller) { p.resolver = r }
}

// WithDelay sets the inter-attempt delay.
func WithDelay(d time.Duration) Option {
	return func(p *Poller) { p.delay = d }
}

// WithSleep sets the sleep function, for deterministic tests.
func WithSleep(fn func(time.Duration)) Option {
	return func(p *Poller) { p.sleep = fn }
}

// New creates a Poller. maxAttempts bounds the retry: 0 means skip the
// check entirely and report ready immediately.
func New(maxAttempts int, sink Sink, opts ...Option) *Poller {
	if sink == nil {
		sink = NopSink{}
	}
	p := &Poller{
		resolver:    net.DefaultResolver,
		sink:        sink,
		maxAttempts: maxAttempts,
		delay:       DefaultDelay,
		sleep:       time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CheckReady probes domain until it resolves, the budget runs out, or an
// exemption short-circuits. Individual resolution failures are absorbed
// and retried; only exhaustion surfaces, as a *TimeoutError.
func (p *Poller) CheckReady(ctx context.Context, domain string) error {
	if p.maxAttempts == 0 {
		logging.Debug("domain readiness check disabled, proceeding", "domain", domain)
		return nil
	}

	if IsInternal(domain) {
		logging.Debug("internal domain, skipping readiness check", "domain", domain)
		return nil
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		_, err := p.resolver.LookupHost(ctx, domain)
		if err == nil {
			if attempt > 0 {
				p.sink.StopWaiting()
			}
			logging.Debug("domain resolved", "domain", domain, "attempt", attempt)
			return nil
		}
		lastErr = err

		if attempt >= p.maxAttempts {
			p.sink.StopWaiting()
			return &TimeoutError{Domain: domain, Attempts: attempt + 1, Last: lastErr}
		}

		if attempt == 0 {
			p.sink.StartWaiting()
		}

		p.sleep(p.delay)
	}
}

// WaitForURL extracts the host from rawURL and runs CheckReady against it.
// If no host can be extracted the check is skipped and the URL is treated
// as ready: a malformed instance URL should not block opening the org.
func (p *Poller) WaitForURL(ctx context.Context, rawURL string) error {
	host := hostFromURL(rawURL)
	if host == "" {
		logging.Warn("could not extract domain from URL, proceeding without verification", "url", rawURL)
		return nil
	}
	return p.CheckReady(ctx, host)
}

// hostFromURL returns the hostname of rawURL, or "" if none can be parsed.
func hostFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// internalSuffixes are domain suffixes that never resolve publicly.
var internalSuffixes = []string{".internal", ".local", ".localhost", ".lan"}

// IsInternal reports whether domain points at internal or loopback
// infrastructure. Such targets are treated as always ready; polling a
// public resolver for them is pointless.
func IsInternal(domain string) bool {
	d := strings.ToLower(strings.TrimSuffix(domain, "."))
	if d == "localhost" || d == "127.0.0.1" || d == "::1" || d == "0.0.0.0" {
		return true
	}
	for _, suffix := range internalSuffixes {
		if strings.HasSuffix(d, suffix) {
			return true
		}
	}
	return false
}
