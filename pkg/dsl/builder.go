package dsl

import (
	"fmt"

	"github.com/p2lu/turingtoy/pkg/domain"
)

// Builder manages the machine construction.
type Builder struct {
	blank  string
	start  string
	states map[string]*StateBuilder
}

// New creates a new machine builder using blank as the blank symbol.
func New(blank string) *Builder {
	return &Builder{
		blank:  blank,
		states: make(map[string]*StateBuilder),
	}
}

// Start sets the start state.
func (b *Builder) Start(state string) *Builder {
	b.start = state
	return b
}

// State returns the builder of a state, creating it on first use.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{
		entries: make(domain.StateTable),
		builder: b,
	}
	b.states[name] = sb
	return sb
}

// Build compiles the definition into a validated machine.
func (b *Builder) Build() (*domain.Machine, error) {
	table := make(domain.Table, len(b.states))
	for name, sb := range b.states {
		st := make(domain.StateTable, len(sb.entries))
		for sym, inst := range sb.entries {
			st[sym] = inst
		}
		table[name] = st
	}

	m := &domain.Machine{
		Table:      table,
		Blank:      b.blank,
		StartState: b.start,
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build machine: %w", err)
	}
	return m, nil
}

// StateBuilder provides a fluent API for the transitions of one state.
type StateBuilder struct {
	entries domain.StateTable
	builder *Builder
}

// On sets the instruction run when the head reads symbol.
func (s *StateBuilder) On(symbol string, inst *Inst) *StateBuilder {
	s.entries[symbol] = inst.Build()
	return s
}

// Otherwise sets the blank-keyed entry, used for every symbol not listed with On.
func (s *StateBuilder) Otherwise(inst *Inst) *StateBuilder {
	return s.On(s.builder.blank, inst)
}

// State switches to another state of the same machine.
func (s *StateBuilder) State(name string) *StateBuilder {
	return s.builder.State(name)
}
