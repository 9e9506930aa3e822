// Package lifecycle defines the staged creation workflow for scratch org
// provisioning: the canonical ordered stage sequence, the events the
// provisioning call emits as it advances, and the per-attempt bus that
// carries those events to the progress tracker.
package lifecycle
