package platform

import "fmt"

// TimeoutError is the classified rejection for a provisioning request
// that did not complete within its wait budget. It always carries the job
// ID so the caller can resume tracking later.
type TimeoutError struct {
	JobID string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("scratch org creation did not finish within the wait budget (job %s)", e.JobID)
}

// APIError is an unclassified rejection from the provisioning API.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}
