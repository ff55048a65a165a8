// Package audit records what the engine did and who asked: scan commits,
// rejected triggers, failures. Append-only; events fan out to the store and
// an optional Kafka sink.
package audit

import "time"

// Actions emitted by the engine.
const (
	ActionScanCommitted = "scan.committed"
	ActionScanConflict  = "scan.conflict"
	ActionScanFailed    = "scan.failed"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor,omitempty"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}
