package domain

// HaltReason explains why a run stopped.
type HaltReason string

const (
	HaltAccepted     HaltReason = "accepted"      // DoneState reached
	HaltNoTransition HaltReason = "no_transition" // no instruction for (state, symbol)
	HaltStepLimit    HaltReason = "step_limit"    // step budget exhausted
)

// Result is the outcome of a run.
type Result struct {
	// Tape is the final tape content, with leading and trailing blanks trimmed.
	Tape string `json:"tape" yaml:"tape"`

	// History holds one entry per executed instruction, in order.
	History []HistoryEntry `json:"history" yaml:"history"`

	// Halted is true iff the run ended in DoneState.
	Halted bool `json:"halted" yaml:"halted"`

	FinalState string     `json:"final_state" yaml:"final_state"`
	Steps      int        `json:"steps" yaml:"steps"`
	Reason     HaltReason `json:"reason" yaml:"reason"`
}

// Snapshot returns a copy of the result that does not share the history slice.
// Instructions inside the entries are immutable and stay shared.
func (r *Result) Snapshot() *Result {
	if r == nil {
		return nil
	}
	cp := *r
	if r.History != nil {
		cp.History = make([]HistoryEntry, len(r.History))
		copy(cp.History, r.History)
	}
	return &cp
}
