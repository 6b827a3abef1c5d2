package engine

// Snapshot is a deep, independent copy of the full mutable board state.
// Mutating the live scene after a snapshot never changes the snapshot.
type Snapshot struct {
	Scene  *Scene
	Camera Camera
}

// maxHistoryDepth bounds the undo stack; the oldest entry is evicted first.
const maxHistoryDepth = 60

// History is a linear undo stack with a single redo-capable pointer.
// Entries are immutable once pushed; restoring hands out the stored snapshot
// and the caller deep-copies before mutating.
type History struct {
	snaps []Snapshot
	idx   int
}

// NewHistory seeds the stack with the initial state so undoing all edits
// lands back on it.
func NewHistory(initial Snapshot) *History {
	return &History{snaps: []Snapshot{initial}}
}

// Push truncates any redo entries beyond the pointer, appends the snapshot
// and evicts the oldest entry once the depth bound is exceeded.
func (h *History) Push(s Snapshot) {
	h.snaps = append(h.snaps[:h.idx+1], s)
	if len(h.snaps) > maxHistoryDepth {
		h.snaps = h.snaps[1:]
	}
	h.idx = len(h.snaps) - 1
}

// Undo moves the pointer back and returns that snapshot. No-op at the bottom.
func (h *History) Undo() (Snapshot, bool) {
	if h.idx == 0 {
		return Snapshot{}, false
	}
	h.idx--
	return h.snaps[h.idx], true
}

// Redo moves the pointer forward and returns that snapshot. No-op at the top.
func (h *History) Redo() (Snapshot, bool) {
	if h.idx >= len(h.snaps)-1 {
		return Snapshot{}, false
	}
	h.idx++
	return h.snaps[h.idx], true
}

func (h *History) CanUndo() bool { return h.idx > 0 }
func (h *History) CanRedo() bool { return h.idx < len(h.snaps)-1 }

// Reset discards all history and reseeds with a new initial state.
func (h *History) Reset(initial Snapshot) {
	h.snaps = []Snapshot{initial}
	h.idx = 0
}
