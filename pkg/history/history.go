// Package history implements a bounded undo/redo stack. It is generic over
// the entry type and knows nothing about applying entries; the owner pops
// an entry and decides what restoring it means.
package history

// DefaultLimit is used when a stack is created with a non-positive limit.
const DefaultLimit = 100

// Stack holds undo and redo entries with a shared capacity on the undo
// side. Recording a new entry always clears the redo side, so redo is only
// reachable immediately after one or more undos.
type Stack[E any] struct {
	limit int
	undo  []E
	redo  []E
}

// NewStack returns an empty stack keeping at most limit undo entries.
func NewStack[E any](limit int) *Stack[E] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack[E]{limit: limit}
}

// Record pushes an entry onto the undo side and clears redo. When the
// stack is full the oldest entry is dropped.
func (s *Stack[E]) Record(entry E) {
	s.undo = append(s.undo, entry)
	if len(s.undo) > s.limit {
		copy(s.undo, s.undo[1:])
		s.undo = s.undo[:len(s.undo)-1]
	}
	s.redo = nil
}

// PopUndo removes the most recent undo entry and returns it. The caller
// passes the current state, which becomes the redo entry. Returns false on
// an empty stack, leaving everything untouched.
func (s *Stack[E]) PopUndo(current E) (E, bool) {
	if len(s.undo) == 0 {
		var zero E
		return zero, false
	}
	entry := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, current)
	return entry, true
}

// PopRedo removes the most recent redo entry and returns it. The current
// state moves back onto the undo side without the limit check; redo never
// grows the total beyond what Record allowed. Returns false on an empty
// stack.
func (s *Stack[E]) PopRedo(current E) (E, bool) {
	if len(s.redo) == 0 {
		var zero E
		return zero, false
	}
	entry := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, current)
	return entry, true
}

// CanUndo reports whether an undo entry is available.
func (s *Stack[E]) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether a redo entry is available.
func (s *Stack[E]) CanRedo() bool { return len(s.redo) > 0 }

// UndoLen returns the number of undo entries held.
func (s *Stack[E]) UndoLen() int { return len(s.undo) }

// RedoLen returns the number of redo entries held.
func (s *Stack[E]) RedoLen() int { return len(s.redo) }

// Clear drops both sides, e.g. after loading a different workspace.
func (s *Stack[E]) Clear() {
	s.undo = nil
	s.redo = nil
}
