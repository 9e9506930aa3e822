package lifecycle

// OrgInfo is the partially-filled record carried by lifecycle events.
// Each field may be empty until the stage that produces it completes.
type OrgInfo struct {
	JobID    string
	OrgID    string
	Username string
}

// Event is a snapshot emitted by the provisioning call as the creation
// workflow advances. Events for one attempt arrive in non-decreasing
// stage order; StageDone is the last event of an attempt.
type Event struct {
	Stage Stage
	Info  OrgInfo
}
