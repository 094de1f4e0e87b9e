package domain

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// StateTable maps a tape symbol to the instruction run when it is read.
type StateTable map[string]Instruction

// Table maps a state name to its StateTable.
type Table map[string]StateTable

// Lookup resolves the instruction for (state, symbol).
// An unknown state resolves to nothing. Otherwise the exact symbol wins, then the
// entry keyed by blank, which acts as a catch-all for every unlisted symbol.
func (t Table) Lookup(state, symbol, blank string) (Instruction, bool) {
	st, ok := t[state]
	if !ok {
		return Instruction{}, false
	}
	if inst, ok := st[symbol]; ok {
		return inst, true
	}
	inst, ok := st[blank]
	return inst, ok
}

// States returns the state names of the table, sorted.
func (t Table) States() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Symbols returns the symbols listed for a state, sorted.
func (st StateTable) Symbols() []string {
	keys := make([]string, 0, len(st))
	for k := range st {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Machine is the externally supplied, read-only definition of a Turing machine.
type Machine struct {
	Table      Table  `json:"table" yaml:"table" mapstructure:"table"`
	Blank      string `json:"blank" yaml:"blank" mapstructure:"blank"`
	StartState string `json:"start state" yaml:"start state" mapstructure:"start state"`
}

// Validate checks the presence of the required fields.
// It does not check the table for well-formedness.
func (m *Machine) Validate() error {
	if m == nil || m.Table == nil {
		return ErrMissingTable
	}
	if m.StartState == "" {
		return ErrMissingStartState
	}
	if !IsSymbol(m.Blank) {
		return fmt.Errorf("%w: got %q", ErrInvalidBlank, m.Blank)
	}
	return nil
}

// IsSymbol reports whether s fits in one tape cell.
func IsSymbol(s string) bool {
	return utf8.RuneCountInString(s) == 1
}
