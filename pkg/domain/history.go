package domain

// HistoryEntry is the snapshot recorded right before an instruction is applied.
// Keys follow the trace layout: state, reading, position,
// memory and transition.
type HistoryEntry struct {
	State      string      `json:"state" yaml:"state"`
	Reading    string      `json:"reading" yaml:"reading"`
	Position   int         `json:"position" yaml:"position"`
	Memory     string      `json:"memory" yaml:"memory"`
	Transition Instruction `json:"transition" yaml:"transition"`
}
