package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hverdal/tuido/internal/domain"
)

// record is the on-disk shape of one todo. Priority and note are omitted
// when absent so files stay hand-editable.
type record struct {
	ID        string  `json:"id,omitempty"`
	Text      string  `json:"text"`
	Completed bool    `json:"completed"`
	Priority  *string `json:"priority,omitempty"`
	Note      *string `json:"note,omitempty"`
}

// Store persists the todo list as a JSON array at a fixed path.
type Store struct {
	path string
}

// New constructs a store for the given path.
func New(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("store path is required")
	}
	return &Store{path: path}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the list from disk. A missing file is a fresh start: empty
// list, nil error. A corrupt file also loads empty, with the parse error
// returned for reporting.
func (s *Store) Load() (domain.List, error) {
	items, err := readFile(s.path)
	if err != nil {
		return domain.List{}, err
	}
	return items, nil
}

// Save writes the list, creating parent directories as needed.
func (s *Store) Save(items domain.List) error {
	return writeFile(s.path, items)
}

// Codec reads and writes todo lists at arbitrary paths. It backs the
// :write and :open commands and the import/export CLI plumbing.
type Codec struct{}

// WriteList serializes items to path.
func (Codec) WriteList(path string, items domain.List) error {
	return writeFile(path, items)
}

// ReadList parses the file at path. Unlike Load, a missing or corrupt file
// here is an error: the caller asked for this file specifically.
func (Codec) ReadList(path string) (domain.List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	items, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return items, nil
}

func readFile(path string) (domain.List, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.List{}, nil
	}
	if err != nil {
		return domain.List{}, fmt.Errorf("read store: %w", err)
	}
	items, err := decode(data)
	if err != nil {
		return domain.List{}, fmt.Errorf("parse store: %w", err)
	}
	return items, nil
}

func writeFile(path string, items domain.List) error {
	records := make([]record, 0, len(items))
	for _, item := range items {
		rec := record{
			ID:        item.ID,
			Text:      item.Text,
			Completed: item.Completed,
		}
		if item.HasPriority() {
			p := string(item.Priority)
			rec.Priority = &p
		}
		if item.HasNote() {
			n := item.Note
			rec.Note = &n
		}
		records = append(records, rec)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	return nil
}

func decode(data []byte) (domain.List, error) {
	if len(data) == 0 {
		return domain.List{}, nil
	}
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	items := make(domain.List, 0, len(records))
	for i, rec := range records {
		if strings.TrimSpace(rec.Text) == "" {
			return nil, fmt.Errorf("record %d: empty text", i)
		}
		item := domain.Item{
			ID:        rec.ID,
			Text:      rec.Text,
			Completed: rec.Completed,
		}
		if rec.Priority != nil {
			p := strings.ToUpper(strings.TrimSpace(*rec.Priority))
			if len(p) != 1 || p[0] < 'A' || p[0] > 'Z' {
				return nil, fmt.Errorf("record %d: bad priority %q", i, *rec.Priority)
			}
			item.Priority = p[0]
		}
		if rec.Note != nil {
			item.Note = *rec.Note
		}
		items = append(items, item)
	}
	return items, nil
}
