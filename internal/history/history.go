// Package history implements the linear undo/redo stack of cleaning
// snapshots. One history lifetime per cleaning run: Init discards whatever
// came before, Apply discards the redo branch. Simple editor semantics,
// not a DAG of edits.
package history

import "go-dashboard-wizard/internal/model"

// History holds past/present/future snapshots. Present is only defined
// after Init; the zero value reports Ready() == false and every operation
// on it is a no-op.
type History struct {
	past    []model.CleaningState
	present model.CleaningState
	future  []model.CleaningState
	ready   bool
}

// New returns an empty, uninitialized history.
func New() *History {
	return &History{}
}

// Ready reports whether a cleaning run has been loaded.
func (h *History) Ready() bool {
	return h.ready
}

// Init loads the result of a fresh cleaning run, discarding any prior
// history.
func (h *History) Init(state model.CleaningState) {
	h.past = nil
	h.present = state
	h.future = nil
	h.ready = true
}

// Present returns the current snapshot.
func (h *History) Present() model.CleaningState {
	return h.present
}

// Apply pushes the current present onto past, makes state the new present,
// and clears the redo branch. The only mutation path besides Init.
func (h *History) Apply(state model.CleaningState) {
	if !h.ready {
		return
	}
	h.past = append(h.past, h.present)
	h.present = state
	h.future = nil
}

// Undo steps back one snapshot. No-op on an empty past.
func (h *History) Undo() bool {
	if !h.CanUndo() {
		return false
	}
	last := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append([]model.CleaningState{h.present}, h.future...)
	h.present = last
	return true
}

// Redo reapplies the most recently undone snapshot. No-op on an empty
// future.
func (h *History) Redo() bool {
	if !h.CanRedo() {
		return false
	}
	next := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, h.present)
	h.present = next
	return true
}

func (h *History) CanUndo() bool { return h.ready && len(h.past) > 0 }
func (h *History) CanRedo() bool { return h.ready && len(h.future) > 0 }

// Depth returns (undoable, redoable) counts, for UI state.
func (h *History) Depth() (int, int) {
	return len(h.past), len(h.future)
}

// RestoreState builds the snapshot that results from restoring the removed
// row with the given ID: the row is appended at the end of the cleaned
// data (not reinserted at its original position) and dropped from the
// removed list. Returns ok=false when the ID matches nothing, leaving the
// present untouched.
func RestoreState(present model.CleaningState, id string) (model.CleaningState, bool) {
	idx := -1
	for i, r := range present.Removed {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.CleaningState{}, false
	}

	restored := present.Removed[idx]
	next := model.CleaningState{
		Cleaned: append(present.Cleaned.Clone(), restored.Row),
		Removed: make([]model.RemovedRow, 0, len(present.Removed)-1),
	}
	next.Removed = append(next.Removed, present.Removed[:idx]...)
	next.Removed = append(next.Removed, present.Removed[idx+1:]...)
	return next, true
}
