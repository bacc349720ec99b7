package pipeline

import (
	"time"

	t "contentforge/internal/types"
)

// EventType matches the record types streamed to clients.
type EventType string

const (
	EventProgress      EventType = "progress"
	EventStageComplete EventType = "stage-complete"
	EventComplete      EventType = "complete"
	EventError         EventType = "error"
)

// StageStatus is the state reported for a stage within an event.
type StageStatus string

const (
	StatusRunning   StageStatus = "running"
	StatusCompleted StageStatus = "completed"
	StatusFailed    StageStatus = "failed"
)

// Event is one orchestration tick. The same record is streamed to clients
// and kept in the result's event log, so observability and user-facing
// streaming share one shape.
type Event struct {
	Type      EventType   `json:"type"`
	Stage     string      `json:"stage,omitempty"`
	Status    StageStatus `json:"status,omitempty"`
	Message   string      `json:"message"`
	Progress  int         `json:"progress"`
	Timestamp time.Time   `json:"timestamp"`
	Data      any         `json:"data,omitempty"`
}

// OnProgress receives events in emission order. Callbacks must not block;
// slow consumers should buffer on their side.
type OnProgress func(Event)

// StageRecord is one entry of the result's per-stage log. Records accumulate
// monotonically: once present they are never overwritten, even when a later
// stage fails.
type StageRecord struct {
	Stage  string `json:"stage"`
	Result any    `json:"result"`
}

// Result is the terminal outcome of one run. A failed run still carries
// every stage reached so far, for diagnostics.
type Result struct {
	Success    bool             `json:"success"`
	PipelineID string           `json:"pipelineId"`
	Stages     []StageRecord    `json:"stages"`
	Output     *t.ContentOutput `json:"output,omitempty"`
	Error      string           `json:"error,omitempty"`
	Duration   time.Duration    `json:"duration"`
	Events     []Event          `json:"events"`
}
