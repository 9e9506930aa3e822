package lifecycle

// Stage is one named step in the ordered provisioning workflow.
type Stage string

const (
	StageRequestSent    Stage = "request-sent"
	StageAuthenticating Stage = "authenticating"
	StagePolling        Stage = "polling"
	StageAvailable      Stage = "available"
	StageDone           Stage = "done"
)

// Stages is the canonical ordered sequence of provisioning stages.
// Order is significant and fixed; StageDone is terminal.
var Stages = []Stage{
	StageRequestSent,
	StageAuthenticating,
	StagePolling,
	StageAvailable,
	StageDone,
}

// Index returns the position of s in the canonical ordering, or -1 for an
// unknown stage.
func (s Stage) Index() int {
	for i, stage := range Stages {
		if stage == s {
			return i
		}
	}
	return -1
}

// Terminal reports whether s is the terminal stage.
func (s Stage) Terminal() bool {
	return s == StageDone
}

// StageStatus classifies a stage relative to the current one, for
// presentation only.
type StageStatus int

const (
	// StatusFuture marks a stage not yet reached.
	StatusFuture StageStatus = iota
	// StatusCompleted marks a stage whose position precedes the current one.
	StatusCompleted
	// StatusCurrent marks the current, non-terminal stage.
	StatusCurrent
	// StatusTerminalCurrent marks the current stage when it is the terminal
	// stage.
	StatusTerminalCurrent
)

// Classify returns the presentation status of stage given the current
// stage of the attempt.
func Classify(stage, current Stage) StageStatus {
	si, ci := stage.Index(), current.Index()
	switch {
	case si < 0 || ci < 0:
		return StatusFuture
	case si < ci:
		return StatusCompleted
	case si == ci && stage.Terminal():
		return StatusTerminalCurrent
	case si == ci:
		return StatusCurrent
	default:
		return StatusFuture
	}
}
