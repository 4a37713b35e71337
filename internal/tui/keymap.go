package tui

import "charm.land/bubbles/v2/key"

// keyMap represents key map data used by this package.
type keyMap struct {
	moveUp     key.Binding
	moveDown   key.Binding
	gotoFirst  key.Binding
	gotoLast   key.Binding
	insert     key.Binding
	edit       key.Binding
	note       key.Binding
	toggle     key.Binding
	delete     key.Binding
	visual     key.Binding
	yank       key.Binding
	paste      key.Binding
	search     key.Binding
	nextMatch  key.Binding
	command    key.Binding
	undo       key.Binding
	redo       key.Binding
	toggleHelp key.Binding
	quit       key.Binding
}

// newKeyMap constructs key map.
func newKeyMap(undoKey, redoKey string) keyMap {
	if undoKey == "" {
		undoKey = "u"
	}
	if redoKey == "" {
		redoKey = "ctrl+r"
	}
	return keyMap{
		moveUp:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		moveDown:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		gotoFirst:  key.NewBinding(key.WithKeys("g"), key.WithHelp("gg", "first")),
		gotoLast:   key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "last")),
		insert:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insert")),
		edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		note:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "note")),
		toggle:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle done")),
		delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("dd", "delete")),
		visual:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "visual")),
		yank:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank")),
		paste:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste")),
		search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		nextMatch:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
		command:    key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		undo:       key.NewBinding(key.WithKeys(undoKey), key.WithHelp(undoKey, "undo")),
		redo:       key.NewBinding(key.WithKeys(redoKey), key.WithHelp(redoKey, "redo")),
		toggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.insert, k.toggle, k.delete, k.search, k.command, k.toggleHelp, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.moveUp, k.moveDown, k.gotoFirst, k.gotoLast, k.nextMatch},
		{k.insert, k.edit, k.note, k.toggle, k.delete, k.visual, k.yank, k.paste},
		{k.search, k.command, k.undo, k.redo, k.toggleHelp, k.quit},
	}
}
