package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

// fakeProgram represents fake program data used by this package.
type fakeProgram struct {
	model  tea.Model
	runErr error
	ran    *bool
}

// Run runs the requested command flow.
func (f fakeProgram) Run() (tea.Model, error) {
	if f.ran != nil {
		*f.ran = true
	}
	return f.model, f.runErr
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func writeStoreFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "todos.json")
	content := `[
  {"id": "a1", "text": "buy milk", "completed": false, "priority": "A"},
  {"id": "b2", "text": "water plants", "completed": true}
]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestPathsCommand(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "todos.json")
	out, err := runCLI(t, "--config", filepath.Join(dir, "config.toml"), "--store", storePath, "paths")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, storePath) {
		t.Fatalf("paths output missing store path:\n%s", out)
	}
	if !strings.Contains(out, "backend: json") {
		t.Fatalf("paths output missing backend:\n%s", out)
	}
}

func TestExportToStdout(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStoreFile(t, dir)
	out, err := runCLI(t, "--config", filepath.Join(dir, "config.toml"), "--store", storePath, "export")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "(A) buy milk") {
		t.Fatalf("export output missing priority line:\n%s", out)
	}
	if !strings.Contains(out, "x water plants") {
		t.Fatalf("export output missing completed line:\n%s", out)
	}
}

func TestExportToMarkdownFile(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStoreFile(t, dir)
	outPath := filepath.Join(dir, "todos.md")
	if _, err := runCLI(t, "--config", filepath.Join(dir, "config.toml"), "--store", storePath, "export", "--out", outPath); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "- [x] water plants") {
		t.Fatalf("markdown export missing task line:\n%s", data)
	}
}

func TestExportRejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStoreFile(t, dir)
	if _, err := runCLI(t, "--config", filepath.Join(dir, "config.toml"), "--store", storePath, "export", "--out", filepath.Join(dir, "todos.pdf")); err == nil {
		t.Fatal("Execute() error = nil, want unsupported-format error")
	}
}

func TestImportReplacesStore(t *testing.T) {
	dir := t.TempDir()
	inPath := writeStoreFile(t, dir)
	storePath := filepath.Join(dir, "store.json")
	out, err := runCLI(t, "--config", filepath.Join(dir, "config.toml"), "--store", storePath, "import", "--in", inPath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "imported 2 todos") {
		t.Fatalf("import output = %q, want imported count", out)
	}
	data, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "buy milk") {
		t.Fatalf("store missing imported todo:\n%s", data)
	}
}

func TestImportRequiresInput(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, "--config", filepath.Join(dir, "config.toml"), "--store", filepath.Join(dir, "s.json"), "import"); err == nil {
		t.Fatal("Execute() error = nil, want missing --in error")
	}
}

func TestRootStartsProgramLoop(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStoreFile(t, dir)

	original := programFactory
	defer func() { programFactory = original }()
	ran := false
	programFactory = func(m tea.Model) program {
		return fakeProgram{model: m, ran: &ran}
	}

	if _, err := runCLI(t, "--config", filepath.Join(dir, "config.toml"), "--store", storePath); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !ran {
		t.Fatal("expected the program loop to start")
	}
}

func TestRootPropagatesProgramError(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStoreFile(t, dir)

	original := programFactory
	defer func() { programFactory = original }()
	programFactory = func(m tea.Model) program {
		return fakeProgram{model: m, runErr: fmt.Errorf("terminal unavailable")}
	}

	if _, err := runCLI(t, "--config", filepath.Join(dir, "config.toml"), "--store", storePath); err == nil {
		t.Fatal("Execute() error = nil, want program error")
	}
}

func TestInvalidConfigFailsFast(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[store]\nbackend = \"parchment\"\npath = \"/tmp/x\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := runCLI(t, "--config", configPath, "paths"); err == nil {
		t.Fatal("Execute() error = nil, want config validation error")
	}
}
