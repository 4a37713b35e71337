package app

import "github.com/hverdal/tuido/internal/domain"

// Store persists the item list at its configured location. A missing or
// corrupt store loads as an empty list; Load's error then reports why.
type Store interface {
	Load() (domain.List, error)
	Save(items domain.List) error
}

// Files reads and writes item lists at arbitrary paths, backing the :write
// and :open commands independently of the configured store.
type Files interface {
	WriteList(path string, items domain.List) error
	ReadList(path string) (domain.List, error)
}

// ExportFormat selects an export serialization.
type ExportFormat string

// Supported export formats.
const (
	ExportTodoTxt  ExportFormat = "todotxt"
	ExportMarkdown ExportFormat = "markdown"
)

// Exporter serializes the item list to a file. Exporting never mutates
// engine state.
type Exporter interface {
	Export(items domain.List, format ExportFormat, path string) error
}

// ShellRunner executes one shell command line and returns its output.
type ShellRunner interface {
	Run(command string) (string, error)
}

// Clipboard mirrors yanked text to the system clipboard, best effort.
type Clipboard interface {
	WriteText(text string) error
}

// IDGenerator returns unique identifiers for new items.
type IDGenerator func() string
