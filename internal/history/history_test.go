package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-dashboard-wizard/internal/model"
)

// The worked example: 3 rows, cleaning dropped row 2 for a missing value.
func exampleState() model.CleaningState {
	return model.CleaningState{
		Cleaned: model.Dataset{
			{"id": float64(1), "val": "a"},
			{"id": float64(3), "val": "b"},
		},
		Removed: []model.RemovedRow{
			{ID: "rr-2", Row: model.Record{"id": float64(2), "val": ""}, Reason: "missing value in val"},
		},
	}
}

func TestZeroValueIsSafe(t *testing.T) {
	h := New()
	assert.False(t, h.Ready())
	assert.False(t, h.Undo())
	assert.False(t, h.Redo())
	h.Apply(exampleState()) // ignored before Init
	assert.False(t, h.Ready())
}

func TestInitResetsEverything(t *testing.T) {
	h := New()
	h.Init(exampleState())
	next, ok := RestoreState(h.Present(), "rr-2")
	require.True(t, ok)
	h.Apply(next)
	require.True(t, h.CanUndo())

	// A new cleaning run starts a fresh history.
	h.Init(exampleState())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.Len(t, h.Present().Removed, 1)
}

func TestRestoreAppendsAtEnd(t *testing.T) {
	h := New()
	h.Init(exampleState())

	next, ok := RestoreState(h.Present(), "rr-2")
	require.True(t, ok)
	h.Apply(next)

	got := h.Present()
	require.Len(t, got.Cleaned, 3)
	assert.Equal(t, float64(2), got.Cleaned[2]["id"])
	assert.Empty(t, got.Removed)
}

func TestRestoreUnknownIDIsNoop(t *testing.T) {
	h := New()
	h.Init(exampleState())
	_, ok := RestoreState(h.Present(), "nope")
	assert.False(t, ok)
	assert.Len(t, h.Present().Removed, 1)
}

func TestUndoRedoIsIdentity(t *testing.T) {
	h := New()
	h.Init(exampleState())
	next, _ := RestoreState(h.Present(), "rr-2")
	h.Apply(next)

	before := h.Present()
	require.True(t, h.Undo())
	assert.Len(t, h.Present().Removed, 1, "undo reverts to post-cleaning state")
	require.True(t, h.Redo())
	assert.Equal(t, before, h.Present())
}

func TestApplyDiscardsFuture(t *testing.T) {
	h := New()
	h.Init(model.CleaningState{
		Cleaned: model.Dataset{{"id": float64(1)}},
		Removed: []model.RemovedRow{
			{ID: "a", Row: model.Record{"id": float64(2)}, Reason: "dup"},
			{ID: "b", Row: model.Record{"id": float64(3)}, Reason: "dup"},
		},
	})

	s1, _ := RestoreState(h.Present(), "a")
	h.Apply(s1)
	require.True(t, h.Undo())
	require.True(t, h.CanRedo())

	// A fresh edit while future is non-empty invalidates the redo branch.
	s2, _ := RestoreState(h.Present(), "b")
	h.Apply(s2)
	assert.False(t, h.CanRedo())
	assert.False(t, h.Redo())
}

func TestConservationLaw(t *testing.T) {
	h := New()
	init := model.CleaningState{
		Cleaned: model.Dataset{{"id": float64(1)}, {"id": float64(2)}},
		Removed: []model.RemovedRow{
			{ID: "x", Row: model.Record{"id": float64(3)}, Reason: "outlier"},
			{ID: "y", Row: model.Record{"id": float64(4)}, Reason: "outlier"},
			{ID: "z", Row: model.Record{"id": float64(5)}, Reason: "outlier"},
		},
	}
	h.Init(init)
	total := init.TotalRows()

	for _, id := range []string{"y", "x", "z"} {
		next, ok := RestoreState(h.Present(), id)
		require.True(t, ok)
		h.Apply(next)
		assert.Equal(t, total, h.Present().TotalRows())
	}
	for h.Undo() {
		assert.Equal(t, total, h.Present().TotalRows())
	}
	for h.Redo() {
		assert.Equal(t, total, h.Present().TotalRows())
	}
}

func TestUndoRedoDepths(t *testing.T) {
	h := New()
	h.Init(model.CleaningState{
		Cleaned: model.Dataset{},
		Removed: []model.RemovedRow{
			{ID: "a", Row: model.Record{"n": "one"}, Reason: "r"},
			{ID: "b", Row: model.Record{"n": "two"}, Reason: "r"},
		},
	})
	s1, _ := RestoreState(h.Present(), "a")
	h.Apply(s1)
	s2, _ := RestoreState(h.Present(), "b")
	h.Apply(s2)

	past, future := h.Depth()
	assert.Equal(t, 2, past)
	assert.Equal(t, 0, future)

	h.Undo()
	h.Undo()
	past, future = h.Depth()
	assert.Equal(t, 0, past)
	assert.Equal(t, 2, future)
	assert.False(t, h.Undo(), "undo on empty past is a no-op")
}
