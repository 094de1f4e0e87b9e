package ports

import (
	"context"
	"testing"
	"time"

	"github.com/p2lu/turingtoy/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractResult() *domain.Result {
	return &domain.Result{
		Tape: "1111",
		History: []domain.HistoryEntry{
			{State: "s", Reading: "1", Position: 0, Memory: "111", Transition: domain.NewInstruction(domain.MoveEntry(domain.Right, ""))},
			{
				State: "s", Reading: "_", Position: 3, Memory: "111_",
				Transition: domain.NewInstruction(domain.WriteEntry("1"), domain.MoveEntry(domain.Right, domain.DoneState)),
			},
		},
		Halted:     true,
		FinalState: domain.DoneState,
		Steps:      2,
		Reason:     domain.HaltAccepted,
	}
}

// RunResultStoreContract runs a suite of tests to verify that a ResultStore implementation
// adheres to the defined interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		result := contractResult()

		err := store.Save(ctx, runID, result)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, result, loaded)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		first := contractResult()
		second := contractResult()
		second.Tape = "0"
		second.Reason = domain.HaltNoTransition
		second.Halted = false

		require.NoError(t, store.Save(ctx, runID, first))
		require.NoError(t, store.Save(ctx, runID, second))

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, "0", loaded.Tape)
		assert.Equal(t, domain.HaltNoTransition, loaded.Reason)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, runID, contractResult()))

		err := store.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")

		assert.NoError(t, store.Delete(ctx, runID), "Delete of a missing run should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		require.NoError(t, store.Save(ctx, id1, contractResult()))
		require.NoError(t, store.Save(ctx, id2, contractResult()))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, id1)
		assert.Contains(t, runs, id2)
	})
}
