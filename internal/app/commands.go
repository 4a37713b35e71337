package app

import (
	"fmt"
	"strings"

	"github.com/hverdal/tuido/internal/domain"
)

// runCommand interprets one ex-style command line. Unknown commands and
// collaborator failures become status messages; nothing here panics or
// quits except the quit commands themselves.
func (c *Controller) runCommand(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		c.status = "ready"
		return
	}
	if rest, ok := strings.CutPrefix(line, "!"); ok {
		c.runShell(strings.TrimSpace(rest))
		return
	}

	fields := strings.Fields(line)
	verb := strings.ToLower(fields[0])
	arg := strings.Join(fields[1:], " ")

	switch verb {
	case "q", "quit":
		if c.dirty {
			c.status = fmt.Sprintf("%v (use :q! to quit without saving)", ErrUnsavedChanges)
			return
		}
		c.quit = true
	case "q!", "quit!":
		c.quit = true
	case "w":
		c.saveStore()
	case "wq":
		if c.saveStore() {
			c.quit = true
		}
	case "clear":
		c.clearCompleted()
	case "sort":
		c.sortItems(arg)
	case "write":
		c.writeTo(arg)
	case "open":
		c.openFrom(arg)
	case "export":
		c.exportTo(arg)
	case "help":
		c.mode = ModeHelp
		c.status = "help"
	default:
		c.status = fmt.Sprintf("%v: %s", ErrCommandUnrecognized, line)
	}
}

// saveStore persists the list to the configured store and clears the dirty
// flag. Returns false on failure so :wq can refuse to quit.
func (c *Controller) saveStore() bool {
	if err := c.store.Save(c.items); err != nil {
		c.status = fmt.Sprintf("save failed: %v", err)
		return false
	}
	c.dirty = false
	c.status = fmt.Sprintf("saved %d todos", len(c.items))
	return true
}

// clearCompleted deletes every completed item as one recorded operation.
func (c *Controller) clearCompleted() {
	var entries []domain.ItemAt
	for i, item := range c.items {
		if item.Completed {
			entries = append(entries, domain.ItemAt{Index: i, Item: item})
		}
	}
	if len(entries) == 0 {
		c.status = "no completed todos"
		return
	}
	if !c.record(domain.DeleteOp{Entries: entries}) {
		return
	}
	c.selected = clamp(c.selected, 0, len(c.items)-1)
	c.status = fmt.Sprintf("cleared %d completed todos", len(entries))
}

// sortItems reorders the list as one recorded operation. ":sort" groups
// completed items first; ":sort priority" orders by priority marker.
func (c *Controller) sortItems(arg string) {
	var label string
	var after domain.List
	switch strings.ToLower(arg) {
	case "":
		label = "sort by completion"
		after = c.items.SortedByCompletion()
	case "priority":
		label = "sort by priority"
		after = c.items.SortedByPriority()
	default:
		c.status = fmt.Sprintf("unknown sort order: %s", arg)
		return
	}
	if slicesEqualItems(c.items, after) {
		c.status = "already sorted"
		return
	}
	if !c.record(domain.ReorderOp{Label: label, Before: c.items.Clone(), After: after}) {
		return
	}
	c.status = label
}

// writeTo saves a copy of the list to an arbitrary path via the file port.
func (c *Controller) writeTo(path string) {
	if path == "" {
		c.status = "usage: :write <path>"
		return
	}
	if c.files == nil {
		c.status = "file access not available"
		return
	}
	if err := c.files.WriteList(path, c.items); err != nil {
		c.status = fmt.Sprintf("write failed: %v", err)
		return
	}
	c.status = "wrote " + path
}

// openFrom replaces the list with the contents of an arbitrary path. The
// replacement is recorded so it can be undone.
func (c *Controller) openFrom(path string) {
	if path == "" {
		c.status = "usage: :open <path>"
		return
	}
	if c.files == nil {
		c.status = "file access not available"
		return
	}
	items, err := c.files.ReadList(path)
	if err != nil {
		c.status = fmt.Sprintf("open failed: %v", err)
		return
	}
	op := domain.ReorderOp{Label: "open " + path, Before: c.items.Clone(), After: items}
	if !c.record(op) {
		return
	}
	c.selected = 0
	c.status = fmt.Sprintf("opened %s (%d todos)", path, len(items))
}

// exportTo serializes the list to a path, picking the format from the file
// extension.
func (c *Controller) exportTo(path string) {
	if path == "" {
		c.status = "usage: :export <path>.txt|.md"
		return
	}
	if c.exporter == nil {
		c.status = "export not available"
		return
	}
	format, err := FormatForPath(path)
	if err != nil {
		c.status = err.Error()
		return
	}
	if err := c.exporter.Export(c.items, format, path); err != nil {
		c.status = fmt.Sprintf("export failed: %v", err)
		return
	}
	c.status = "exported to " + path
}

// runShell executes one escaped shell command and shows its trimmed output.
func (c *Controller) runShell(command string) {
	if command == "" {
		c.status = "usage: :!<command>"
		return
	}
	if c.shell == nil {
		c.status = "shell escape not available"
		return
	}
	out, err := c.shell.Run(command)
	if err != nil {
		c.status = fmt.Sprintf("shell failed: %v", err)
		return
	}
	out = strings.TrimSpace(out)
	if out == "" {
		c.status = "(no output)"
		return
	}
	c.status = "> " + out
}

// FormatForPath maps a file extension to an export format.
func FormatForPath(path string) (ExportFormat, error) {
	switch {
	case strings.HasSuffix(path, ".txt"):
		return ExportTodoTxt, nil
	case strings.HasSuffix(path, ".md"):
		return ExportMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %s (use .txt or .md)", ErrUnsupportedFormat, path)
	}
}

// slicesEqualItems reports whether two lists hold the same items in order.
func slicesEqualItems(a, b domain.List) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
