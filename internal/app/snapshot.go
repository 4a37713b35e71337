package app

import "github.com/hverdal/tuido/internal/domain"

// VisualRange is the inclusive highlighted range while Visual mode is
// active.
type VisualRange struct {
	Start  int
	End    int
	Active bool
}

// Snapshot is a read-only view of the controller for rendering. Items is a
// copy, so the view layer can never mutate engine state.
type Snapshot struct {
	Items       domain.List
	Mode        Mode
	Selected    int
	Visual      VisualRange
	Buffer      string
	SearchQuery string
	Status      string
	Dirty       bool
	UndoDepth   int
	RedoDepth   int
}

// Snapshot captures the current engine state for rendering.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Items:       c.items.Clone(),
		Mode:        c.mode,
		Selected:    c.selected,
		Buffer:      c.buffer,
		SearchQuery: c.searchQuery,
		Status:      c.status,
		Dirty:       c.dirty,
		UndoDepth:   c.history.UndoDepth(),
		RedoDepth:   c.history.RedoDepth(),
	}
	if c.mode == ModeVisual {
		start, end := c.visualRange()
		s.Visual = VisualRange{Start: start, End: end, Active: true}
	}
	return s
}
