package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/imroc/req/v3"

	"github.com/outpost-hq/orgctl/internal/lifecycle"
	"github.com/outpost-hq/orgctl/internal/logging"
)

const (
	v1ScratchOrgs = "/api/v1/scratch-orgs"
	v1Requests    = "/api/v1/scratch-orgs/requests"
	v1Session     = "/api/v1/auth/session"

	// DefaultWait bounds synchronous creation when the caller gives none.
	DefaultWait = 10 * time.Minute

	defaultPollInterval = 5 * time.Second
)

// Remote request statuses reported by the status endpoint.
const (
	statusQueued     = "queued"
	statusInProgress = "in-progress"
	statusAvailable  = "available"
	statusError      = "error"
)

// API is the req-backed implementation of Client. Transport-level retry
// and backoff live inside the req client; this type only owns the
// provisioning workflow.
type API struct {
	client       *req.Client
	pollInterval time.Duration
	sleep        func(time.Duration)
}

// APIOption configures an API.
type APIOption func(*API)

// WithPollInterval sets the status poll interval.
func WithPollInterval(d time.Duration) APIOption {
	return func(a *API) { a.pollInterval = d }
}

// WithSleep sets the sleep function, for deterministic tests.
func WithSleep(fn func(time.Duration)) APIOption {
	return func(a *API) { a.sleep = fn }
}

// NewAPI creates a provisioning API client for host, authenticating with
// the given bearer token.
func NewAPI(host, token, version string, opts ...APIOption) *API {
	client := req.C().
		SetBaseURL(host).
		SetCommonBearerAuthToken(token).
		SetUserAgent("orgctl/"+version).
		SetCommonRetryCount(3).
		SetCommonRetryFixedInterval(1 * time.Second).
		SetCommonErrorResult(&APIError{})

	a := &API{
		client:       client,
		pollInterval: defaultPollInterval,
		sleep:        time.Sleep,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// createResponse is the accepted-request payload.
type createResponse struct {
	JobID string `json:"jobId"`
}

// statusResponse is the status-endpoint payload. Credential fields stay
// empty until the request reaches the available status.
type statusResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	OrgID       string `json:"orgId"`
	Username    string `json:"username"`
	InstanceURL string `json:"instanceUrl"`
	AuthToken   string `json:"authToken"`
	ExpiresAt   string `json:"expiresAt"`
}

// CreateScratchOrg submits the provisioning request and, unless Async is
// set, drives it to completion, publishing lifecycle events to bus along
// the way.
func (a *API) CreateScratchOrg(ctx context.Context, creq CreateRequest, bus *lifecycle.Bus) (*CreateResult, error) {
	var created createResponse
	res, err := a.client.R().
		SetContext(ctx).
		SetBody(&creq).
		SetSuccessResult(&created).
		Post(v1ScratchOrgs)
	if err := handleAPIError(res, err, "create scratch org"); err != nil {
		return nil, err
	}

	logging.Debug("scratch org request accepted", "jobId", created.JobID)
	bus.Publish(lifecycle.Event{
		Stage: lifecycle.StageRequestSent,
		Info:  lifecycle.OrgInfo{JobID: created.JobID},
	})

	if creq.Async {
		return &CreateResult{JobID: created.JobID}, nil
	}

	if err := a.verifySession(ctx, bus, created.JobID); err != nil {
		return nil, err
	}

	return a.await(ctx, created.JobID, creq.Wait, bus)
}

// ResumeScratchOrg re-attaches to an in-flight or timed-out request by
// job ID and drives it to completion.
func (a *API) ResumeScratchOrg(ctx context.Context, jobID string, wait time.Duration, bus *lifecycle.Bus) (*CreateResult, error) {
	bus.Publish(lifecycle.Event{
		Stage: lifecycle.StageRequestSent,
		Info:  lifecycle.OrgInfo{JobID: jobID},
	})

	if err := a.verifySession(ctx, bus, jobID); err != nil {
		return nil, err
	}

	return a.await(ctx, jobID, wait, bus)
}

// DeleteScratchOrg deletes a provisioned org.
func (a *API) DeleteScratchOrg(ctx context.Context, orgID string) error {
	res, err := a.client.R().
		SetContext(ctx).
		Delete(v1ScratchOrgs + "/" + orgID)
	return handleAPIError(res, err, "delete scratch org")
}

// verifySession confirms the dev hub session is usable before polling.
func (a *API) verifySession(ctx context.Context, bus *lifecycle.Bus, jobID string) error {
	bus.Publish(lifecycle.Event{
		Stage: lifecycle.StageAuthenticating,
		Info:  lifecycle.OrgInfo{JobID: jobID},
	})

	res, err := a.client.R().
		SetContext(ctx).
		Get(v1Session)
	return handleAPIError(res, err, "verify session")
}

// await polls the status endpoint until the request completes, fails, or
// the wait budget runs out. Stage transitions are published once each;
// repeated polls in the same remote status do not re-publish.
func (a *API) await(ctx context.Context, jobID string, wait time.Duration, bus *lifecycle.Bus) (*CreateResult, error) {
	if wait <= 0 {
		wait = DefaultWait
	}
	maxPolls := int(wait / a.pollInterval)
	if maxPolls < 1 {
		maxPolls = 1
	}

	lastStage := lifecycle.StageAuthenticating
	publish := func(stage lifecycle.Stage, info lifecycle.OrgInfo) {
		if stage == lastStage {
			return
		}
		lastStage = stage
		info.JobID = jobID
		bus.Publish(lifecycle.Event{Stage: stage, Info: info})
	}

	for poll := 0; poll < maxPolls; poll++ {
		var status statusResponse
		res, err := a.client.R().
			SetContext(ctx).
			SetSuccessResult(&status).
			Get(v1Requests + "/" + jobID)
		if err := handleAPIError(res, err, "poll scratch org status"); err != nil {
			return nil, err
		}

		info := lifecycle.OrgInfo{OrgID: status.OrgID, Username: status.Username}
		switch strings.ToLower(status.Status) {
		case statusQueued, statusInProgress:
			publish(lifecycle.StagePolling, info)
		case statusAvailable:
			publish(lifecycle.StageAvailable, info)
			result := &CreateResult{
				JobID:       jobID,
				OrgID:       status.OrgID,
				Username:    status.Username,
				InstanceURL: status.InstanceURL,
				AuthToken:   status.AuthToken,
				ExpiresAt:   status.ExpiresAt,
			}
			bus.Publish(lifecycle.Event{
				Stage: lifecycle.StageDone,
				Info:  lifecycle.OrgInfo{JobID: jobID, OrgID: status.OrgID, Username: status.Username},
			})
			return result, nil
		case statusError:
			return nil, &APIError{Code: "E_PROVISIONING_FAILED", Message: status.Message}
		default:
			return nil, fmt.Errorf("unknown request status %q for job %s", status.Status, jobID)
		}

		a.sleep(a.pollInterval)
	}

	return nil, &TimeoutError{JobID: jobID}
}

// handleAPIError normalizes transport errors and API error payloads.
func handleAPIError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		return fmt.Errorf("http request error: %s: %w", operation, requestErr)
	}

	if resp.IsErrorState() {
		if apiErr, ok := resp.ErrorResult().(*APIError); ok {
			return fmt.Errorf("%s: %w", operation, apiErr)
		}
		return fmt.Errorf("api error: %s: %s", operation, resp.Status)
	}

	return nil
}
