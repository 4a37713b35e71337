package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hverdal/tuido/internal/domain"
)

// Mode names one input-interpretation state of the controller.
type Mode string

// Controller modes. Normal is initial; every other mode owns a text buffer
// or a selection range and falls back to Normal.
const (
	ModeNormal   Mode = "normal"
	ModeInsert   Mode = "insert"
	ModeEdit     Mode = "edit"
	ModeVisual   Mode = "visual"
	ModeNoteEdit Mode = "note"
	ModeSearch   Mode = "search"
	ModeCommand  Mode = "command"
	ModeHelp     Mode = "help"
)

// Config holds controller tunables.
type Config struct {
	Autosave bool
	UndoKey  string
	RedoKey  string
}

// Deps bundles the collaborator ports. Nil ports degrade to status messages
// rather than failures.
type Deps struct {
	Files     Files
	Exporter  Exporter
	Shell     ShellRunner
	Clipboard Clipboard
	IDGen     IDGenerator
	Matcher   *Matcher
}

// Controller is the modal interaction engine. It owns the item list, the
// selection, and the history stacks; all mutation flows through recorded
// operations. Keys arrive as bubbletea-style strings ("a", "enter", "esc",
// "ctrl+r", ...), one fully processed before the next is read.
type Controller struct {
	store     Store
	files     Files
	exporter  Exporter
	shell     ShellRunner
	clipboard Clipboard
	idGen     IDGenerator
	matcher   *Matcher

	items   domain.List
	history *History

	mode        Mode
	selected    int
	anchor      int
	pendingKey  string
	buffer      string
	searchQuery string
	searchPos   int
	register    []domain.Item
	status      string
	dirty       bool
	quit        bool
	autosave    bool
	undoKey     string
	redoKey     string
}

// NewController constructs the engine around a store and its collaborators.
func NewController(store Store, deps Deps, cfg Config) *Controller {
	if deps.IDGen == nil {
		deps.IDGen = func() string { return "" }
	}
	if deps.Matcher == nil {
		deps.Matcher = NewMatcher(DefaultMatcherConfig())
	}
	if cfg.UndoKey == "" {
		cfg.UndoKey = "u"
	}
	if cfg.RedoKey == "" {
		cfg.RedoKey = "ctrl+r"
	}
	return &Controller{
		store:     store,
		files:     deps.Files,
		exporter:  deps.Exporter,
		shell:     deps.Shell,
		clipboard: deps.Clipboard,
		idGen:     deps.IDGen,
		matcher:   deps.Matcher,
		history:   NewHistory(),
		mode:      ModeNormal,
		status:    "ready",
		autosave:  cfg.Autosave,
		undoKey:   cfg.UndoKey,
		redoKey:   cfg.RedoKey,
	}
}

// LoadInitial populates the list from the store. Load failures degrade to an
// empty list and a status message; the returned error is for logging only.
func (c *Controller) LoadInitial() error {
	items, err := c.store.Load()
	c.items = items
	c.selected = 0
	if err != nil {
		c.status = fmt.Sprintf("load failed: %v (starting empty)", err)
		return err
	}
	if len(items) > 0 {
		c.status = fmt.Sprintf("loaded %d todos", len(items))
	}
	return nil
}

// QuitRequested reports whether a quit has been committed.
func (c *Controller) QuitRequested() bool {
	return c.quit
}

// Dirty reports whether the list has unsaved changes.
func (c *Controller) Dirty() bool {
	return c.dirty
}

// HandleKey processes one input key according to the current mode.
func (c *Controller) HandleKey(key string) {
	switch c.mode {
	case ModeNormal:
		c.handleNormalKey(key)
	case ModeVisual:
		c.handleVisualKey(key)
	case ModeHelp:
		c.handleHelpKey(key)
	default:
		c.handleTextKey(key)
	}
}

// handleNormalKey interprets one key in Normal mode. The pending prefix for
// the gg/dd sequences is cleared by any non-matching key.
func (c *Controller) handleNormalKey(key string) {
	pending := c.pendingKey
	c.pendingKey = ""

	switch key {
	case "j", "down":
		c.moveSelection(1)
	case "k", "up":
		c.moveSelection(-1)
	case "g":
		if pending == "g" {
			c.selected = 0
		} else {
			c.pendingKey = "g"
		}
	case "G":
		if len(c.items) > 0 {
			c.selected = len(c.items) - 1
		}
	case "i":
		c.mode = ModeInsert
		c.buffer = ""
		c.status = "insert"
	case "e":
		if !c.hasSelection() {
			return
		}
		c.mode = ModeEdit
		c.buffer = c.items[c.selected].RawText()
		c.status = "edit"
	case "o":
		if !c.hasSelection() {
			return
		}
		c.mode = ModeNoteEdit
		c.buffer = c.items[c.selected].Note
		c.status = "note"
	case "x":
		c.toggleRange(c.selected, c.selected)
	case "d":
		if pending == "d" {
			c.deleteRange(c.selected, c.selected)
		} else if c.hasSelection() {
			c.pendingKey = "d"
		}
	case "v":
		if !c.hasSelection() {
			return
		}
		c.mode = ModeVisual
		c.anchor = c.selected
		c.status = "visual"
	case "/":
		c.mode = ModeSearch
		c.buffer = ""
		c.status = "search"
	case ":":
		c.mode = ModeCommand
		c.buffer = ""
		c.status = "command"
	case "n":
		c.nextMatch()
	case "y":
		c.yankRange(c.selected, c.selected)
	case "p":
		c.paste()
	case "?":
		c.mode = ModeHelp
		c.status = "help"
	case "q":
		if c.dirty {
			c.status = "unsaved changes (use :q! to quit without saving)"
			return
		}
		c.quit = true
	case c.undoKey:
		c.undo()
	case c.redoKey:
		c.redo()
	}
}

// handleVisualKey interprets one key in Visual mode. j/k extend the range
// between the anchor and the cursor; x/d/y act on the whole range as one
// operation.
func (c *Controller) handleVisualKey(key string) {
	start, end := c.visualRange()
	switch key {
	case "j", "down":
		c.moveSelection(1)
	case "k", "up":
		c.moveSelection(-1)
	case "x":
		c.toggleRange(start, end)
		c.exitVisual()
	case "d":
		c.deleteRange(start, end)
		c.exitVisual()
	case "y":
		c.yankRange(start, end)
		c.exitVisual()
	case "esc":
		c.exitVisual()
		c.status = "ready"
	}
}

// handleHelpKey dismisses the help view.
func (c *Controller) handleHelpKey(key string) {
	switch key {
	case "esc", "q", "?":
		c.mode = ModeNormal
		c.status = "ready"
	}
}

// handleTextKey edits the active buffer in the Insert, Edit, NoteEdit,
// Search and Command modes. Esc discards, Enter commits.
func (c *Controller) handleTextKey(key string) {
	switch key {
	case "esc":
		c.buffer = ""
		c.mode = ModeNormal
		c.status = "cancelled"
	case "enter":
		c.commitBuffer()
	case "backspace":
		if runes := []rune(c.buffer); len(runes) > 0 {
			c.buffer = string(runes[:len(runes)-1])
		}
	case "space":
		c.buffer += " "
	default:
		if utf8.RuneCountInString(key) == 1 {
			c.buffer += key
		}
	}
}

// commitBuffer dispatches Enter for the buffer-owning modes.
func (c *Controller) commitBuffer() {
	switch c.mode {
	case ModeInsert:
		c.commitInsert()
	case ModeEdit:
		c.commitEdit()
	case ModeNoteEdit:
		c.commitNote()
	case ModeSearch:
		c.commitSearch()
	case ModeCommand:
		line := c.buffer
		c.buffer = ""
		c.mode = ModeNormal
		c.runCommand(line)
	}
}

// commitInsert parses the buffer into a new item placed after the selection
// (at the head of an empty list) and selects it. An empty result keeps the
// buffer so the input can be corrected or cancelled.
func (c *Controller) commitInsert() {
	item, err := domain.NewItem(c.idGen(), c.buffer)
	if err != nil {
		c.status = "empty todo not added"
		return
	}
	pos := 0
	if len(c.items) > 0 {
		pos = c.selected + 1
	}
	if !c.record(domain.InsertOp{Entries: []domain.ItemAt{{Index: pos, Item: item}}}) {
		return
	}
	c.selected = pos
	c.exitInput("todo added")
}

// commitEdit replaces the selected item's text and priority, keeping its
// identity, completion state and note.
func (c *Controller) commitEdit() {
	if !c.hasSelection() {
		c.exitInput("nothing to edit")
		return
	}
	priority, text, err := domain.ParseText(c.buffer)
	if err != nil {
		c.status = "empty text rejected"
		return
	}
	before := c.items[c.selected]
	after := before
	after.Text = text
	after.Priority = priority
	if after == before {
		c.exitInput("no changes")
		return
	}
	if !c.record(domain.EditOp{Index: c.selected, Before: before, After: after}) {
		return
	}
	c.exitInput("todo updated")
}

// commitNote stores the buffer as the selected item's note; an empty buffer
// clears the note entirely.
func (c *Controller) commitNote() {
	if !c.hasSelection() {
		c.exitInput("nothing to annotate")
		return
	}
	before := c.items[c.selected]
	after := before
	after.Note = strings.TrimSpace(c.buffer)
	if after == before {
		c.exitInput("note unchanged")
		return
	}
	if !c.record(domain.EditOp{Index: c.selected, Before: before, After: after}) {
		return
	}
	if after.Note == "" {
		c.exitInput("note cleared")
		return
	}
	c.exitInput("note saved")
}

// commitSearch ranks every item against the query and jumps the selection to
// the best match. The query is retained so n can cycle matches.
func (c *Controller) commitSearch() {
	query := strings.TrimSpace(c.buffer)
	if query == "" {
		c.exitInput("search cancelled")
		return
	}
	c.searchQuery = query
	c.searchPos = 0
	matches := c.matcher.Ranked(query, c.items)
	if len(matches) == 0 {
		c.exitInput(fmt.Sprintf("no match for %q", query))
		return
	}
	c.selected = matches[0]
	c.exitInput(fmt.Sprintf("%d matches for %q", len(matches), query))
}

// nextMatch advances through the ranked matches of the last committed
// search. Matches are re-ranked on each press because the list may have
// changed since the search.
func (c *Controller) nextMatch() {
	if c.searchQuery == "" {
		c.status = "no previous search"
		return
	}
	matches := c.matcher.Ranked(c.searchQuery, c.items)
	if len(matches) == 0 {
		c.status = fmt.Sprintf("no match for %q", c.searchQuery)
		return
	}
	c.searchPos = (c.searchPos + 1) % len(matches)
	c.selected = matches[c.searchPos]
	c.status = fmt.Sprintf("match %d of %d", c.searchPos+1, len(matches))
}

// toggleRange flips completion for [start, end] as one recorded operation.
func (c *Controller) toggleRange(start, end int) {
	if !c.hasSelection() {
		return
	}
	indices := make([]int, 0, end-start+1)
	previous := make([]bool, 0, end-start+1)
	for i := start; i <= end; i++ {
		indices = append(indices, i)
		previous = append(previous, c.items[i].Completed)
	}
	if !c.record(domain.ToggleOp{Indices: indices, Previous: previous}) {
		return
	}
	if len(indices) == 1 {
		c.status = "todo toggled"
	} else {
		c.status = fmt.Sprintf("%d todos toggled", len(indices))
	}
}

// deleteRange removes [start, end] as one recorded operation, capturing
// ordered per-index entries so undo restores exact positions. Deleted items
// also land in the yank register.
func (c *Controller) deleteRange(start, end int) {
	if !c.hasSelection() {
		return
	}
	entries := make([]domain.ItemAt, 0, end-start+1)
	for i := start; i <= end; i++ {
		entries = append(entries, domain.ItemAt{Index: i, Item: c.items[i]})
	}
	c.setRegister(entries)
	if !c.record(domain.DeleteOp{Entries: entries}) {
		return
	}
	c.selected = clamp(start, 0, len(c.items)-1)
	if len(entries) == 1 {
		c.status = "todo deleted"
	} else {
		c.status = fmt.Sprintf("%d todos deleted", len(entries))
	}
}

// yankRange copies [start, end] into the register and mirrors the text to
// the system clipboard, best effort.
func (c *Controller) yankRange(start, end int) {
	if !c.hasSelection() {
		return
	}
	entries := make([]domain.ItemAt, 0, end-start+1)
	for i := start; i <= end; i++ {
		entries = append(entries, domain.ItemAt{Index: i, Item: c.items[i]})
	}
	c.setRegister(entries)
	if len(entries) == 1 {
		c.status = "todo yanked"
	} else {
		c.status = fmt.Sprintf("%d todos yanked", len(entries))
	}
}

// setRegister replaces the yank register and mirrors it to the clipboard.
func (c *Controller) setRegister(entries []domain.ItemAt) {
	c.register = c.register[:0]
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		c.register = append(c.register, entry.Item)
		lines = append(lines, entry.Item.RawText())
	}
	if c.clipboard != nil {
		// Clipboard access can fail on headless terminals; the register
		// still works.
		_ = c.clipboard.WriteText(strings.Join(lines, "\n"))
	}
}

// paste inserts the register below the selection as one recorded batch.
// Pasted items get fresh identities.
func (c *Controller) paste() {
	if len(c.register) == 0 {
		c.status = "nothing to paste"
		return
	}
	pos := 0
	if len(c.items) > 0 {
		pos = c.selected + 1
	}
	entries := make([]domain.ItemAt, 0, len(c.register))
	for i, item := range c.register {
		item.ID = c.idGen()
		entries = append(entries, domain.ItemAt{Index: pos + i, Item: item})
	}
	if !c.record(domain.InsertOp{Entries: entries}) {
		return
	}
	c.selected = pos
	if len(entries) == 1 {
		c.status = "todo pasted"
	} else {
		c.status = fmt.Sprintf("pasted %d todos", len(entries))
	}
}

// undo reverses the most recent operation. An empty stack is absorbed as a
// status message, never an error.
func (c *Controller) undo() {
	op, err := c.history.Undo(&c.items)
	if err != nil {
		c.status = "nothing to undo"
		return
	}
	c.afterHistoryShift()
	c.status = "undo: " + op.Summary()
}

// redo reapplies the most recently undone operation.
func (c *Controller) redo() {
	op, err := c.history.Redo(&c.items)
	if err != nil {
		c.status = "nothing to redo"
		return
	}
	c.afterHistoryShift()
	c.status = "redo: " + op.Summary()
}

// afterHistoryShift reclamps the selection and persists after an undo or
// redo changed the list.
func (c *Controller) afterHistoryShift() {
	c.selected = clamp(c.selected, 0, len(c.items)-1)
	c.dirty = true
	c.persistAfterMutation()
}

// record applies op through the history. Failures here mean an internal
// index bug; they surface in the status area and leave the list untouched.
func (c *Controller) record(op domain.Operation) bool {
	if err := c.history.Record(&c.items, op); err != nil {
		c.status = fmt.Sprintf("operation failed: %v", err)
		return false
	}
	c.dirty = true
	c.persistAfterMutation()
	return true
}

// persistAfterMutation saves synchronously when autosave is on. The event
// loop is single threaded, so the write cannot race another save.
func (c *Controller) persistAfterMutation() {
	if !c.autosave {
		return
	}
	if err := c.store.Save(c.items); err != nil {
		c.status = fmt.Sprintf("autosave failed: %v", err)
		return
	}
	c.dirty = false
}

// exitInput leaves the current text mode for Normal with a status message.
func (c *Controller) exitInput(status string) {
	c.buffer = ""
	c.mode = ModeNormal
	c.status = status
}

// exitVisual leaves Visual mode, clearing the anchor.
func (c *Controller) exitVisual() {
	if c.mode == ModeVisual {
		c.mode = ModeNormal
		c.anchor = 0
	}
}

// moveSelection shifts the cursor, clamped to the list edges. Empty lists
// ignore navigation.
func (c *Controller) moveSelection(delta int) {
	if len(c.items) == 0 {
		return
	}
	c.selected = clamp(c.selected+delta, 0, len(c.items)-1)
}

// hasSelection reports whether the selection addresses a real item.
func (c *Controller) hasSelection() bool {
	return len(c.items) > 0 && c.selected >= 0 && c.selected < len(c.items)
}

// visualRange returns the inclusive range between anchor and cursor.
func (c *Controller) visualRange() (int, int) {
	if c.anchor <= c.selected {
		return c.anchor, c.selected
	}
	return c.selected, c.anchor
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
