package domain

import "context"

// EventType defines the category of the event.
type EventType string

const (
	EventStep EventType = "step"
	EventHalt EventType = "halt"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Type EventType `json:"type"`
}

// StepEvent is emitted after an instruction has been applied.
type StepEvent struct {
	EventBase
	// Step is the 1-based count of executed instructions.
	Step int `json:"step"`
	// Entry is the snapshot recorded before the instruction ran.
	Entry HistoryEntry `json:"entry"`
	// State is the state after the instruction ran.
	State string `json:"state"`
}

// HaltEvent is emitted once, when the run loop stops.
type HaltEvent struct {
	EventBase
	Reason     HaltReason `json:"reason"`
	FinalState string     `json:"final_state"`
	Steps      int        `json:"steps"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStep func(context.Context, *StepEvent)
	OnHalt func(context.Context, *HaltEvent)
}
