package platform

import (
	"context"
	"encoding/json"
	"time"

	"github.com/outpost-hq/orgctl/internal/lifecycle"
)

// CreateRequest is the fully-assembled provisioning request.
type CreateRequest struct {
	OrgName       string          `json:"orgName,omitempty"`
	Edition       string          `json:"edition"`
	AdminEmail    string          `json:"adminEmail,omitempty"`
	HasSampleData bool            `json:"hasSampleData,omitempty"`
	Features      []string        `json:"features,omitempty"`
	Settings      json.RawMessage `json:"settings,omitempty"`
	DurationDays  int             `json:"durationDays"`
	DevHub        string          `json:"devHub"`

	// Extra carries definition-file fields the CLI does not inspect.
	// They are merged into the wire body; typed fields win on collision.
	Extra map[string]json.RawMessage `json:"-"`

	// Async requests return as soon as the request is accepted; the
	// caller resumes tracking later with the job ID.
	Async bool `json:"-"`

	// Wait bounds how long a synchronous request is awaited before the
	// call rejects with a *TimeoutError.
	Wait time.Duration `json:"-"`
}

// MarshalJSON merges Extra into the typed body.
func (r CreateRequest) MarshalJSON() ([]byte, error) {
	type plain CreateRequest
	data, err := json.Marshal(plain(r))
	if err != nil || len(r.Extra) == 0 {
		return data, err
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, err
	}
	for key, value := range r.Extra {
		if _, taken := body[key]; !taken {
			body[key] = value
		}
	}
	return json.Marshal(body)
}

// CreateResult is the payload of a completed (or, in async mode,
// accepted) provisioning request.
type CreateResult struct {
	JobID       string `json:"jobId"`
	OrgID       string `json:"orgId"`
	Username    string `json:"username"`
	InstanceURL string `json:"instanceUrl"`
	AuthToken   string `json:"authToken"`
	ExpiresAt   string `json:"expiresAt"`
}

// Client is the provisioning API boundary. CreateScratchOrg publishes
// lifecycle events to bus as the workflow advances; in async mode it
// returns after the request is accepted, without publishing beyond the
// initial request-sent event.
type Client interface {
	CreateScratchOrg(ctx context.Context, req CreateRequest, bus *lifecycle.Bus) (*CreateResult, error)
	ResumeScratchOrg(ctx context.Context, jobID string, wait time.Duration, bus *lifecycle.Bus) (*CreateResult, error)
	DeleteScratchOrg(ctx context.Context, orgID string) error
}
