package domain

import (
	"fmt"
	"strings"
)

// NoPriority marks an item without a priority letter.
const NoPriority byte = 0

// Item is one todo entry. Priority is an uppercase letter 'A'..'Z' or
// NoPriority; Note is free text where empty means no note.
type Item struct {
	ID        string
	Text      string
	Completed bool
	Priority  byte
	Note      string
}

// NewItem parses raw input into an item, extracting a leading "(A)"-style
// priority marker. The text left after extraction must be non-empty.
func NewItem(id, raw string) (Item, error) {
	priority, text, err := ParseText(raw)
	if err != nil {
		return Item{}, err
	}
	return Item{
		ID:       strings.TrimSpace(id),
		Text:     text,
		Priority: priority,
	}, nil
}

// ParseText splits a leading priority marker "(X)" (X in A..Z, case
// insensitive) from the display text. Text without a marker passes through
// unchanged.
func ParseText(raw string) (byte, string, error) {
	text := strings.TrimSpace(raw)
	priority := NoPriority
	if len(text) >= 3 && text[0] == '(' && text[2] == ')' {
		letter := upperLetter(text[1])
		if letter != NoPriority {
			priority = letter
			text = strings.TrimSpace(text[3:])
		}
	}
	if text == "" {
		return NoPriority, "", ErrEmptyText
	}
	return priority, text, nil
}

// upperLetter normalizes one byte to an uppercase priority letter, or NoPriority.
func upperLetter(b byte) byte {
	switch {
	case b >= 'A' && b <= 'Z':
		return b
	case b >= 'a' && b <= 'z':
		return b - 'a' + 'A'
	default:
		return NoPriority
	}
}

// HasPriority reports whether the item carries a priority letter.
func (i Item) HasPriority() bool {
	return i.Priority != NoPriority
}

// HasNote reports whether the item carries a note.
func (i Item) HasNote() bool {
	return i.Note != ""
}

// RawText reattaches the priority marker, yielding the editable form of the
// item text.
func (i Item) RawText() string {
	if !i.HasPriority() {
		return i.Text
	}
	return fmt.Sprintf("(%c) %s", i.Priority, i.Text)
}

// priorityRank orders priorities for sorting: 'A' ranks first and items
// without a priority rank after every lettered one.
func (i Item) priorityRank() int {
	if !i.HasPriority() {
		return int('Z') + 1
	}
	return int(i.Priority)
}
