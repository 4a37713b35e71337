package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hverdal/tuido/internal/app"
	"github.com/hverdal/tuido/internal/domain"
)

// Writer serializes todo lists to the supported export formats.
type Writer struct{}

// New constructs an export writer.
func New() Writer {
	return Writer{}
}

// Export renders items in format and writes the result to path, creating
// parent directories as needed.
func (Writer) Export(items domain.List, format app.ExportFormat, path string) error {
	var content string
	switch format {
	case app.ExportTodoTxt:
		content = TodoTxt(items)
	case app.ExportMarkdown:
		content = Markdown(items)
	default:
		return fmt.Errorf("%w: %s", app.ErrUnsupportedFormat, format)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// TodoTxt renders items in todo.txt line format: an "x " completion marker,
// then the "(A) " priority marker, then the text.
func TodoTxt(items domain.List) string {
	var b strings.Builder
	for _, item := range items {
		if item.Completed {
			b.WriteString("x ")
		}
		b.WriteString(item.RawText())
		b.WriteByte('\n')
	}
	return b.String()
}

// Markdown renders items as a task-list document.
func Markdown(items domain.List) string {
	var b strings.Builder
	b.WriteString("# TODOs\n\n")
	for _, item := range items {
		if item.Completed {
			b.WriteString("- [x] ")
		} else {
			b.WriteString("- [ ] ")
		}
		b.WriteString(item.RawText())
		b.WriteByte('\n')
	}
	return b.String()
}
