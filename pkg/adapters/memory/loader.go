package memory

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/p2lu/turingtoy/pkg/domain"
)

// Loader implements ports.MachineLoader using an in-memory map.
// Safe for concurrent use.
type Loader struct {
	mu       sync.RWMutex
	machines map[string]*domain.Machine
}

// NewLoader creates a new Loader serving the provided machines by name.
func NewLoader(machines map[string]*domain.Machine) *Loader {
	l := &Loader{machines: make(map[string]*domain.Machine, len(machines))}
	for name, m := range machines {
		l.machines[name] = m
	}
	return l
}

// NewFromDefinitions creates a Loader from loosely typed definitions, such as the
// output of decoding JSON into map[string]any.
func NewFromDefinitions(defs map[string]map[string]any) (*Loader, error) {
	l := NewLoader(nil)
	for name, def := range defs {
		m, err := DecodeMachine(def)
		if err != nil {
			return nil, fmt.Errorf("failed to decode machine %s: %w", name, err)
		}
		l.Add(name, m)
	}
	return l, nil
}

// Add registers or replaces a machine.
func (l *Loader) Add(name string, m *domain.Machine) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.machines[name] = m
}

// Load retrieves a machine by name.
func (l *Loader) Load(ctx context.Context, name string) (*domain.Machine, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	m, ok := l.machines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	return m, nil
}

// List returns all available machine names.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.machines))
	for name := range l.machines {
		names = append(names, name)
	}
	sort.Strings(names) // Deterministic order
	return names, nil
}

var instructionType = reflect.TypeOf(domain.Instruction{})

// DecodeMachine decodes a definition shaped like the file format
// ({"table": ..., "blank": ..., "start state": ...}) and validates it.
//
// Go maps carry no order, so a compound instruction with several keys must be given
// as a slice of single-key maps; a multi-key map fails with domain.ErrUnorderedCompound.
func DecodeMachine(def map[string]any) (*domain.Machine, error) {
	// mapstructure flattens hook errors into strings, so keep the first one to wrap.
	var hookErr error
	hook := func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != instructionType {
			return data, nil
		}
		inst, err := domain.InstructionFromValue(data)
		if err != nil && hookErr == nil {
			hookErr = err
		}
		return inst, err
	}

	var m domain.Machine
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       hook,
		WeaklyTypedInput: true,
		Result:           &m,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(def); err != nil {
		if hookErr != nil {
			return nil, fmt.Errorf("failed to decode machine: %w", hookErr)
		}
		return nil, fmt.Errorf("failed to decode machine: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
