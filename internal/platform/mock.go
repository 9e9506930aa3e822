package platform

import (
	"context"
	"sync"
	"time"

	"github.com/outpost-hq/orgctl/internal/lifecycle"
)

// MockClient is a mock implementation of Client for testing
type MockClient struct {
	mu sync.RWMutex

	// CreateResult is returned by CreateScratchOrg
	CreateResult *CreateResult

	// ResumeResult is returned by ResumeScratchOrg
	ResumeResult *CreateResult

	// Errors allows injecting errors for specific operations
	Errors map[string]error

	// Stages are published to the bus before an awaited call returns
	Stages []lifecycle.Stage

	// CallLog records all method calls for verification
	CallLog []MockCall
}

// MockCall represents a recorded method call
type MockCall struct {
	Method string
	Args   []interface{}
}

// NewMockClient creates a new mock client
func NewMockClient() *MockClient {
	return &MockClient{
		Errors:  make(map[string]error),
		CallLog: make([]MockCall, 0),
	}
}

func (m *MockClient) record(method string, args ...interface{}) {
	m.CallLog = append(m.CallLog, MockCall{Method: method, Args: args})
}

// SetError sets an error to be returned for a specific operation
func (m *MockClient) SetError(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[operation] = err
}

// GetCallsFor returns all calls for a specific method
func (m *MockClient) GetCallsFor(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var calls []MockCall
	for _, call := range m.CallLog {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

func (m *MockClient) publish(bus *lifecycle.Bus, jobID string) {
	for _, stage := range m.Stages {
		bus.Publish(lifecycle.Event{Stage: stage, Info: lifecycle.OrgInfo{JobID: jobID}})
	}
}

// CreateScratchOrg records the call, publishes the scripted stages, and
// returns the scripted result.
func (m *MockClient) CreateScratchOrg(_ context.Context, req CreateRequest, bus *lifecycle.Bus) (*CreateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("CreateScratchOrg", req)
	if err := m.Errors["create"]; err != nil {
		return nil, err
	}

	jobID := ""
	if m.CreateResult != nil {
		jobID = m.CreateResult.JobID
	}
	if !req.Async {
		m.publish(bus, jobID)
	}
	return m.CreateResult, nil
}

// ResumeScratchOrg records the call, publishes the scripted stages, and
// returns the scripted result.
func (m *MockClient) ResumeScratchOrg(_ context.Context, jobID string, wait time.Duration, bus *lifecycle.Bus) (*CreateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("ResumeScratchOrg", jobID, wait)
	if err := m.Errors["resume"]; err != nil {
		return nil, err
	}

	m.publish(bus, jobID)
	return m.ResumeResult, nil
}

// DeleteScratchOrg records the call.
func (m *MockClient) DeleteScratchOrg(_ context.Context, orgID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("DeleteScratchOrg", orgID)
	return m.Errors["delete"]
}
