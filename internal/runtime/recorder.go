package runtime

import "github.com/p2lu/turingtoy/pkg/domain"

// Recorder accumulates history entries in execution order. Entries are never
// modified once recorded.
type Recorder struct {
	entries []domain.HistoryEntry
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{entries: []domain.HistoryEntry{}}
}

// Record snapshots cfg as it is before inst is applied.
func (r *Recorder) Record(cfg *Config, inst domain.Instruction) domain.HistoryEntry {
	entry := domain.HistoryEntry{
		State:      cfg.State,
		Reading:    cfg.Tape.Read(),
		Position:   cfg.Tape.Position(),
		Memory:     cfg.Tape.String(),
		Transition: inst,
	}
	r.entries = append(r.entries, entry)
	return entry
}

// Entries returns the recorded history.
func (r *Recorder) Entries() []domain.HistoryEntry {
	return r.entries
}

// Len returns the number of recorded entries.
func (r *Recorder) Len() int {
	return len(r.entries)
}
