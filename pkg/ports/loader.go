package ports

import (
	"context"

	"github.com/p2lu/turingtoy/pkg/domain"
)

// MachineLoader defines how callers retrieve machine definitions.
// This allows the definition source (files, memory) to be decoupled.
type MachineLoader interface {
	// Load resolves a machine by name.
	// Returns domain.ErrMachineNotFound if no definition exists under that name.
	Load(ctx context.Context, name string) (*domain.Machine, error)
}

// MachineLister is implemented by loaders that can enumerate their machines.
type MachineLister interface {
	// List returns the names of all machines available to Load.
	List(ctx context.Context) ([]string, error)
}
