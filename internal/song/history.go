package song

import "reflect"

// History is an undo/redo snapshot stack. The cursor always points at the
// current snapshot; entries are never merged or compacted.
type History[T any] struct {
	snapshots []T
	cursor    int
}

// NewHistory creates a history seeded with the initial state.
func NewHistory[T any](initial T) *History[T] {
	return &History[T]{snapshots: []T{initial}}
}

// Push records a new snapshot. Pushing a state structurally equal to the
// current one is a no-op, so no-op edits never pollute the stack. Any redo
// branch past the cursor is truncated.
func (h *History[T]) Push(state T) {
	if reflect.DeepEqual(state, h.snapshots[h.cursor]) {
		return
	}
	h.snapshots = append(h.snapshots[:h.cursor+1], state)
	h.cursor = len(h.snapshots) - 1
}

// Undo moves the cursor back one snapshot. A no-op at the oldest entry.
func (h *History[T]) Undo() (T, bool) {
	if h.cursor == 0 {
		return h.snapshots[h.cursor], false
	}
	h.cursor--
	return h.snapshots[h.cursor], true
}

// Redo moves the cursor forward one snapshot. A no-op at the newest entry.
func (h *History[T]) Redo() (T, bool) {
	if h.cursor == len(h.snapshots)-1 {
		return h.snapshots[h.cursor], false
	}
	h.cursor++
	return h.snapshots[h.cursor], true
}

// Current returns the snapshot under the cursor.
func (h *History[T]) Current() T {
	return h.snapshots[h.cursor]
}

// Len is the number of stored snapshots.
func (h *History[T]) Len() int {
	return len(h.snapshots)
}
