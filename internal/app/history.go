package app

import "github.com/hverdal/tuido/internal/domain"

// HistoryLimit caps each history stack. When recording past the cap the
// oldest undo entry is evicted; entries that fall off are permanently
// unrecoverable, which is the accepted bound rather than a leak.
const HistoryLimit = 100

// History owns the bounded undo and redo stacks. Every list mutation flows
// through Record so it can be reversed later.
type History struct {
	undo  []domain.Operation
	redo  []domain.Operation
	limit int
}

// NewHistory constructs an empty history with the default cap.
func NewHistory() *History {
	return &History{limit: HistoryLimit}
}

// Record applies op to the list, pushes it on the undo stack and clears the
// redo stack. The list is left untouched when Apply fails.
func (h *History) Record(l *domain.List, op domain.Operation) error {
	if err := op.Apply(l); err != nil {
		return err
	}
	h.undo = append(h.undo, op)
	if len(h.undo) > h.limit {
		h.undo = append([]domain.Operation(nil), h.undo[len(h.undo)-h.limit:]...)
	}
	h.redo = nil
	return nil
}

// Undo reverses the most recent operation and moves it to the redo stack.
// An empty undo stack returns ErrHistoryExhausted with the list untouched.
func (h *History) Undo(l *domain.List) (domain.Operation, error) {
	if len(h.undo) == 0 {
		return nil, ErrHistoryExhausted
	}
	op := h.undo[len(h.undo)-1]
	if err := op.Invert().Apply(l); err != nil {
		return nil, err
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, op)
	return op, nil
}

// Redo reapplies the most recently undone operation and moves it back to the
// undo stack.
func (h *History) Redo(l *domain.List) (domain.Operation, error) {
	if len(h.redo) == 0 {
		return nil, ErrHistoryExhausted
	}
	op := h.redo[len(h.redo)-1]
	if err := op.Apply(l); err != nil {
		return nil, err
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, op)
	return op, nil
}

// UndoDepth returns the number of undoable operations.
func (h *History) UndoDepth() int {
	return len(h.undo)
}

// RedoDepth returns the number of redoable operations.
func (h *History) RedoDepth() int {
	return len(h.redo)
}
