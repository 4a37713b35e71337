package domain

import "slices"

// List is an ordered sequence of items. Order is display order and is owned
// by the user except where a sort command reorders in place.
type List []Item

// Clone returns an independent copy of the list.
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	return slices.Clone(l)
}

// Insert places item at index, shifting later items right. Index may equal
// len(l) to append.
func (l *List) Insert(index int, item Item) error {
	if index < 0 || index > len(*l) {
		return ErrIndexOutOfRange
	}
	*l = slices.Insert(*l, index, item)
	return nil
}

// Remove deletes and returns the item at index.
func (l *List) Remove(index int) (Item, error) {
	if index < 0 || index >= len(*l) {
		return Item{}, ErrIndexOutOfRange
	}
	item := (*l)[index]
	*l = slices.Delete(*l, index, index+1)
	return item, nil
}

// SortedByCompletion returns a stable copy with completed items first.
func (l List) SortedByCompletion() List {
	out := l.Clone()
	slices.SortStableFunc(out, func(a, b Item) int {
		switch {
		case a.Completed == b.Completed:
			return 0
		case a.Completed:
			return -1
		default:
			return 1
		}
	})
	return out
}

// SortedByPriority returns a stable copy ordered by priority letter, 'A'
// first. Unprioritized items sort after all prioritized ones and keep their
// relative order.
func (l List) SortedByPriority() List {
	out := l.Clone()
	slices.SortStableFunc(out, func(a, b Item) int {
		return a.priorityRank() - b.priorityRank()
	})
	return out
}

// CountCompleted returns the number of completed items.
func (l List) CountCompleted() int {
	count := 0
	for _, item := range l {
		if item.Completed {
			count++
		}
	}
	return count
}
