package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hverdal/tuido/internal/domain"
	_ "modernc.org/sqlite"
)

// driverName defines a package constant value.
const driverName = "sqlite"

// Repository persists the todo list in a single sqlite table, ordered by an
// explicit position column.
type Repository struct {
	db *sql.DB
}

// Open opens the database at path, creating parent directories and the
// schema as needed.
func Open(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// OpenInMemory opens a throwaway in-memory database, used by tests.
func OpenInMemory() (*Repository, error) {
	db, err := sql.Open(driverName, "file::memory:?cache=shared")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// migrate creates the schema.
func (r *Repository) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS todos (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL DEFAULT '',
			text TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			priority TEXT NOT NULL DEFAULT '',
			note TEXT NOT NULL DEFAULT ''
		);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// Load reads the whole list in position order. An empty database loads as
// an empty list.
func (r *Repository) Load() (domain.List, error) {
	rows, err := r.db.Query(`SELECT id, text, completed, priority, note FROM todos ORDER BY position`)
	if err != nil {
		return domain.List{}, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	var items domain.List
	for rows.Next() {
		var (
			item      domain.Item
			completed int
			priority  string
		)
		if err := rows.Scan(&item.ID, &item.Text, &completed, &priority, &item.Note); err != nil {
			return domain.List{}, fmt.Errorf("scan todo: %w", err)
		}
		item.Completed = completed != 0
		if priority != "" {
			item.Priority = priority[0]
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.List{}, fmt.Errorf("iterate todos: %w", err)
	}
	if items == nil {
		items = domain.List{}
	}
	return items, nil
}

// Save replaces the stored list with items, positions matching list order.
// The swap runs in one transaction so a failure leaves the old list intact.
func (r *Repository) Save(items domain.List) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM todos`); err != nil {
		return fmt.Errorf("clear todos: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO todos (position, id, text, completed, priority, note) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		completed := 0
		if item.Completed {
			completed = 1
		}
		priority := ""
		if item.HasPriority() {
			priority = string(item.Priority)
		}
		if _, err := stmt.Exec(i, item.ID, item.Text, completed, priority, item.Note); err != nil {
			return fmt.Errorf("insert todo %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}
