package domain

import "fmt"

// Operation is one reversible mutation of a list. Apply mutates the list in
// place; Invert returns the operation that exactly restores the prior state.
type Operation interface {
	Apply(l *List) error
	Invert() Operation
	Summary() string
}

// ItemAt pairs an item with the list index it occupies (for deletes) or is
// restored to (for inserts).
type ItemAt struct {
	Index int
	Item  Item
}

// InsertOp places items at their recorded indices, lowest index first, so a
// batch restores to its exact original positions.
type InsertOp struct {
	Entries []ItemAt
}

// Apply applies the insert to the list.
func (op InsertOp) Apply(l *List) error {
	for _, entry := range op.Entries {
		if err := l.Insert(entry.Index, entry.Item); err != nil {
			return err
		}
	}
	return nil
}

// Invert returns the matching delete.
func (op InsertOp) Invert() Operation {
	return DeleteOp{Entries: op.Entries}
}

// Summary describes the operation for status and activity lines.
func (op InsertOp) Summary() string {
	if len(op.Entries) == 1 {
		return "add todo"
	}
	return fmt.Sprintf("add %d todos", len(op.Entries))
}

// DeleteOp removes the items at the recorded indices. Entries are ordered by
// ascending original index; removal walks them in reverse so earlier indices
// stay valid.
type DeleteOp struct {
	Entries []ItemAt
}

// Apply applies the delete to the list.
func (op DeleteOp) Apply(l *List) error {
	for i := len(op.Entries) - 1; i >= 0; i-- {
		if _, err := l.Remove(op.Entries[i].Index); err != nil {
			return err
		}
	}
	return nil
}

// Invert returns the insert that restores every deleted item at its original
// position.
func (op DeleteOp) Invert() Operation {
	return InsertOp{Entries: op.Entries}
}

// Summary describes the operation for status and activity lines.
func (op DeleteOp) Summary() string {
	if len(op.Entries) == 1 {
		return "delete todo"
	}
	return fmt.Sprintf("delete %d todos", len(op.Entries))
}

// EditOp replaces the item at Index, capturing both sides of the change.
type EditOp struct {
	Index  int
	Before Item
	After  Item
}

// Apply applies the edit to the list.
func (op EditOp) Apply(l *List) error {
	if op.Index < 0 || op.Index >= len(*l) {
		return ErrIndexOutOfRange
	}
	(*l)[op.Index] = op.After
	return nil
}

// Invert returns the edit with both sides swapped.
func (op EditOp) Invert() Operation {
	return EditOp{Index: op.Index, Before: op.After, After: op.Before}
}

// Summary describes the operation for status and activity lines.
func (op EditOp) Summary() string {
	return "edit todo"
}

// ToggleOp flips completion for every listed index. Previous records the
// completion state before the toggle, index-aligned with Indices.
type ToggleOp struct {
	Indices  []int
	Previous []bool
}

// Apply applies the toggle to the list.
func (op ToggleOp) Apply(l *List) error {
	if len(op.Indices) != len(op.Previous) {
		return ErrMismatchedInput
	}
	for i, index := range op.Indices {
		if index < 0 || index >= len(*l) {
			return ErrIndexOutOfRange
		}
		(*l)[index].Completed = !op.Previous[i]
	}
	return nil
}

// Invert returns the toggle that restores the captured previous states.
func (op ToggleOp) Invert() Operation {
	previous := make([]bool, len(op.Previous))
	for i, p := range op.Previous {
		previous[i] = !p
	}
	return ToggleOp{Indices: op.Indices, Previous: previous}
}

// Summary describes the operation for status and activity lines.
func (op ToggleOp) Summary() string {
	if len(op.Indices) == 1 {
		return "toggle todo"
	}
	return fmt.Sprintf("toggle %d todos", len(op.Indices))
}

// ReorderOp replaces the whole sequence, capturing before and after
// snapshots. Sort commands and file opens record through it.
type ReorderOp struct {
	Label  string
	Before List
	After  List
}

// Apply applies the reorder to the list.
func (op ReorderOp) Apply(l *List) error {
	*l = op.After.Clone()
	return nil
}

// Invert returns the reorder with both snapshots swapped.
func (op ReorderOp) Invert() Operation {
	return ReorderOp{Label: op.Label, Before: op.After, After: op.Before}
}

// Summary describes the operation for status and activity lines.
func (op ReorderOp) Summary() string {
	if op.Label != "" {
		return op.Label
	}
	return "reorder todos"
}
