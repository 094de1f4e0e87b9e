package ports

import (
	"context"

	"github.com/p2lu/turingtoy/pkg/domain"
)

// ResultStore defines the interface for persisting run results.
type ResultStore interface {
	// Save persists the result of a run under runID, replacing any previous one.
	Save(ctx context.Context, runID string, result *domain.Result) error

	// Load retrieves the result of a run.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, runID string) (*domain.Result, error)

	// Delete removes the result of a run. Deleting an unknown run is not an error.
	Delete(ctx context.Context, runID string) error

	// List returns the IDs of all stored runs.
	List(ctx context.Context) ([]string, error)
}
