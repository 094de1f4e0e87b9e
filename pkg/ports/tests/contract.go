package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/p2lu/turingtoy/pkg/domain"
	"github.com/p2lu/turingtoy/pkg/ports"
)

// MachineLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.MachineLoader.
// expected maps machine names to the start state each one must carry.
func MachineLoaderContractTest(t *testing.T, loader ports.MachineLoader, expected map[string]string) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_Success", func(t *testing.T) {
		for name, start := range expected {
			m, err := loader.Load(ctx, name)
			if err != nil {
				t.Fatalf("unexpected error loading machine %s: %v", name, err)
			}
			if m.StartState != start {
				t.Errorf("start state mismatch for %s. got %q, want %q", name, m.StartState, start)
			}
			if err := m.Validate(); err != nil {
				t.Errorf("loaded machine %s is invalid: %v", name, err)
			}
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := loader.Load(ctx, "non-existent-machine")
		if !errors.Is(err, domain.ErrMachineNotFound) {
			t.Errorf("expected ErrMachineNotFound, got %v", err)
		}
	})

	lister, ok := loader.(ports.MachineLister)
	if !ok {
		return
	}

	t.Run("List", func(t *testing.T) {
		names, err := lister.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing machines: %v", err)
		}

		if len(names) != len(expected) {
			t.Errorf("expected %d machines, got %d", len(expected), len(names))
		}

		lookup := make(map[string]bool)
		for _, name := range names {
			lookup[name] = true
		}
		for name := range expected {
			if !lookup[name] {
				t.Errorf("machine %s missing from list", name)
			}
		}
	})
}
