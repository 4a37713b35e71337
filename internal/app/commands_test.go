package app

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hverdal/tuido/internal/domain"
)

type fakeExporter struct {
	items  domain.List
	format ExportFormat
	path   string
	err    error
}

func (e *fakeExporter) Export(items domain.List, format ExportFormat, path string) error {
	if e.err != nil {
		return e.err
	}
	e.items = items.Clone()
	e.format = format
	e.path = path
	return nil
}

type fakeShell struct {
	command string
	output  string
	err     error
}

func (s *fakeShell) Run(command string) (string, error) {
	s.command = command
	return s.output, s.err
}

type fakeFiles struct {
	written map[string]domain.List
	read    domain.List
	readErr error
}

func (f *fakeFiles) WriteList(path string, items domain.List) error {
	if f.written == nil {
		f.written = make(map[string]domain.List)
	}
	f.written[path] = items.Clone()
	return nil
}

func (f *fakeFiles) ReadList(path string) (domain.List, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.read.Clone(), nil
}

func runCommandLine(c *Controller, line string) {
	c.HandleKey(":")
	typeText(c, line)
	c.HandleKey("enter")
}

func TestCommandSavePersistsAndClearsDirty(t *testing.T) {
	store := seedStore(t, "one")
	c := newTestController(t, store, Deps{})
	keys(c, "x")
	if !c.Dirty() {
		t.Fatal("Dirty() = false, want true before :w")
	}
	runCommandLine(c, "w")
	if c.Dirty() {
		t.Fatal("Dirty() = true after :w, want false")
	}
	if store.saves != 1 {
		t.Fatalf("saves = %d, want 1", store.saves)
	}
	if !store.items[0].Completed {
		t.Fatal("store missing the toggled state")
	}
}

func TestCommandQuitRefusesWhenDirty(t *testing.T) {
	c := newTestController(t, seedStore(t, "one"), Deps{})
	keys(c, "x")
	runCommandLine(c, "q")
	if c.QuitRequested() {
		t.Fatal("QuitRequested() = true, want refusal while dirty")
	}
	if !strings.Contains(c.Snapshot().Status, "unsaved") {
		t.Fatalf("Status = %q, want an unsaved-changes warning", c.Snapshot().Status)
	}
}

func TestCommandForceQuitDiscardsChanges(t *testing.T) {
	store := seedStore(t, "one")
	c := newTestController(t, store, Deps{})
	keys(c, "x")
	runCommandLine(c, "q!")
	if !c.QuitRequested() {
		t.Fatal("QuitRequested() = false, want true")
	}
	if store.saves != 0 {
		t.Fatalf("saves = %d, want 0 (q! must not save)", store.saves)
	}
}

func TestCommandSaveAndQuit(t *testing.T) {
	store := seedStore(t, "one")
	c := newTestController(t, store, Deps{})
	keys(c, "x")
	runCommandLine(c, "wq")
	if !c.QuitRequested() {
		t.Fatal("QuitRequested() = false, want true")
	}
	if store.saves != 1 {
		t.Fatalf("saves = %d, want 1", store.saves)
	}
}

func TestCommandSaveAndQuitStaysOnSaveFailure(t *testing.T) {
	store := seedStore(t, "one")
	store.saveErr = fmt.Errorf("disk full")
	c := newTestController(t, store, Deps{})
	keys(c, "x")
	runCommandLine(c, "wq")
	if c.QuitRequested() {
		t.Fatal("QuitRequested() = true, want refusal when the save fails")
	}
	if !strings.Contains(c.Snapshot().Status, "save failed") {
		t.Fatalf("Status = %q, want a save-failure message", c.Snapshot().Status)
	}
}

func TestCommandClearRemovesCompletedAndUndoes(t *testing.T) {
	c := newTestController(t, seedStore(t, "one", "two", "three"), Deps{})
	keys(c, "x", "G", "x")
	runCommandLine(c, "clear")

	snap := c.Snapshot()
	if len(snap.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(snap.Items))
	}
	if snap.Items[0].Text != "two" {
		t.Fatalf("Items[0].Text = %q, want %q", snap.Items[0].Text, "two")
	}

	keys(c, "u")
	snap = c.Snapshot()
	want := []string{"one", "two", "three"}
	for i, text := range want {
		if snap.Items[i].Text != text {
			t.Fatalf("Items[%d].Text = %q, want %q (undo restores positions)", i, snap.Items[i].Text, text)
		}
	}
}

func TestCommandClearWithNothingCompleted(t *testing.T) {
	c := newTestController(t, seedStore(t, "one"), Deps{})
	runCommandLine(c, "clear")
	if got := c.Snapshot().Status; got != "no completed todos" {
		t.Fatalf("Status = %q, want %q", got, "no completed todos")
	}
	if got := c.Snapshot().UndoDepth; got != 0 {
		t.Fatalf("UndoDepth = %d, want 0 (no-op must not record)", got)
	}
}

func TestCommandSortPriorityIsRecorded(t *testing.T) {
	c := newTestController(t, seedStore(t, "plain", "(B) second", "(A) first"), Deps{})
	runCommandLine(c, "sort priority")

	snap := c.Snapshot()
	want := []string{"first", "second", "plain"}
	for i, text := range want {
		if snap.Items[i].Text != text {
			t.Fatalf("Items[%d].Text = %q, want %q", i, snap.Items[i].Text, text)
		}
	}

	keys(c, "u")
	snap = c.Snapshot()
	want = []string{"plain", "second", "first"}
	for i, text := range want {
		if snap.Items[i].Text != text {
			t.Fatalf("after undo Items[%d].Text = %q, want %q", i, snap.Items[i].Text, text)
		}
	}
}

func TestCommandSortGroupsCompletedFirst(t *testing.T) {
	c := newTestController(t, seedStore(t, "open one", "done one", "open two"), Deps{})
	keys(c, "j", "x", "g", "g")
	runCommandLine(c, "sort")

	snap := c.Snapshot()
	if snap.Items[0].Text != "done one" {
		t.Fatalf("Items[0].Text = %q, want %q", snap.Items[0].Text, "done one")
	}
	if snap.Items[1].Text != "open one" || snap.Items[2].Text != "open two" {
		t.Fatalf("open items out of order: %v", snap.Items)
	}
}

func TestCommandSortWhenAlreadySorted(t *testing.T) {
	c := newTestController(t, seedStore(t, "(A) first", "(B) second"), Deps{})
	runCommandLine(c, "sort priority")
	if got := c.Snapshot().Status; got != "already sorted" {
		t.Fatalf("Status = %q, want %q", got, "already sorted")
	}
	if got := c.Snapshot().UndoDepth; got != 0 {
		t.Fatalf("UndoDepth = %d, want 0", got)
	}
}

func TestCommandExportPicksFormatFromExtension(t *testing.T) {
	exporter := &fakeExporter{}
	c := newTestController(t, seedStore(t, "one"), Deps{Exporter: exporter})

	runCommandLine(c, "export todos.txt")
	if exporter.format != ExportTodoTxt {
		t.Fatalf("format = %q, want %q", exporter.format, ExportTodoTxt)
	}
	if exporter.path != "todos.txt" {
		t.Fatalf("path = %q, want %q", exporter.path, "todos.txt")
	}

	runCommandLine(c, "export todos.md")
	if exporter.format != ExportMarkdown {
		t.Fatalf("format = %q, want %q", exporter.format, ExportMarkdown)
	}
}

func TestCommandExportRejectsUnknownExtension(t *testing.T) {
	exporter := &fakeExporter{}
	c := newTestController(t, seedStore(t, "one"), Deps{Exporter: exporter})
	runCommandLine(c, "export todos.pdf")
	if !strings.Contains(c.Snapshot().Status, "unsupported export format") {
		t.Fatalf("Status = %q, want an unsupported-format message", c.Snapshot().Status)
	}
	if exporter.path != "" {
		t.Fatalf("exporter called with %q, want no call", exporter.path)
	}
}

func TestCommandShellEscape(t *testing.T) {
	shell := &fakeShell{output: "hello\n"}
	c := newTestController(t, seedStore(t), Deps{Shell: shell})
	runCommandLine(c, "!echo hello")
	if shell.command != "echo hello" {
		t.Fatalf("command = %q, want %q", shell.command, "echo hello")
	}
	if got := c.Snapshot().Status; got != "> hello" {
		t.Fatalf("Status = %q, want %q", got, "> hello")
	}
}

func TestCommandShellFailure(t *testing.T) {
	shell := &fakeShell{err: fmt.Errorf("exit status 127")}
	c := newTestController(t, seedStore(t), Deps{Shell: shell})
	runCommandLine(c, "!nope")
	if !strings.Contains(c.Snapshot().Status, "shell failed") {
		t.Fatalf("Status = %q, want a shell-failure message", c.Snapshot().Status)
	}
}

func TestCommandWriteToPath(t *testing.T) {
	files := &fakeFiles{}
	c := newTestController(t, seedStore(t, "one", "two"), Deps{Files: files})
	runCommandLine(c, "write backup.json")
	got, ok := files.written["backup.json"]
	if !ok {
		t.Fatal("WriteList not called for backup.json")
	}
	if len(got) != 2 {
		t.Fatalf("wrote %d items, want 2", len(got))
	}
}

func TestCommandOpenReplacesListAndUndoes(t *testing.T) {
	files := &fakeFiles{read: seedStore(t, "imported one", "imported two").items}
	c := newTestController(t, seedStore(t, "original"), Deps{Files: files})
	runCommandLine(c, "open other.json")

	snap := c.Snapshot()
	if len(snap.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(snap.Items))
	}
	if snap.Items[0].Text != "imported one" {
		t.Fatalf("Items[0].Text = %q, want %q", snap.Items[0].Text, "imported one")
	}
	if snap.Selected != 0 {
		t.Fatalf("Selected = %d, want 0", snap.Selected)
	}

	keys(c, "u")
	snap = c.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].Text != "original" {
		t.Fatalf("after undo Items = %v, want the original list", snap.Items)
	}
}

func TestCommandOpenFailureLeavesListUntouched(t *testing.T) {
	files := &fakeFiles{readErr: fmt.Errorf("no such file")}
	c := newTestController(t, seedStore(t, "original"), Deps{Files: files})
	runCommandLine(c, "open missing.json")
	snap := c.Snapshot()
	if len(snap.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(snap.Items))
	}
	if !strings.Contains(snap.Status, "open failed") {
		t.Fatalf("Status = %q, want an open-failure message", snap.Status)
	}
}

func TestCommandUnknown(t *testing.T) {
	c := newTestController(t, seedStore(t), Deps{})
	runCommandLine(c, "frobnicate")
	if !strings.Contains(c.Snapshot().Status, "unrecognized command") {
		t.Fatalf("Status = %q, want an unrecognized-command message", c.Snapshot().Status)
	}
}

func TestCommandHelpEntersHelpMode(t *testing.T) {
	c := newTestController(t, seedStore(t), Deps{})
	runCommandLine(c, "help")
	if got := c.Snapshot().Mode; got != ModeHelp {
		t.Fatalf("Mode = %v, want ModeHelp", got)
	}
}

func TestCommandEmptyLine(t *testing.T) {
	c := newTestController(t, seedStore(t, "one"), Deps{})
	runCommandLine(c, "")
	snap := c.Snapshot()
	if snap.Mode != ModeNormal {
		t.Fatalf("Mode = %v, want ModeNormal", snap.Mode)
	}
	if len(snap.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(snap.Items))
	}
}
