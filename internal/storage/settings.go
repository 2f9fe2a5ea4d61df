// Package storage persists the server's runtime settings and the edit
// journal in a single SQLite database under the data directory.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Settings are the persisted defaults consumed by the task operations.
// ExcludedDirs is a comma-separated list of path prefixes.
type Settings struct {
	SectionHeading    string `json:"section_heading"`
	DailyNoteTemplate string `json:"daily_note_template"`
	ExcludedDirs      string `json:"excluded_dirs"`
}

// settingKeys maps setting names to their column values. Only these
// keys are accepted by Set.
var settingKeys = map[string]bool{
	"section_heading":     true,
	"daily_note_template": true,
	"excluded_dirs":       true,
}

// DefaultSettings returns the out-of-the-box configuration.
func DefaultSettings() Settings {
	return Settings{
		SectionHeading:    "# Tasks",
		DailyNoteTemplate: "Daily/2006-01-02.md",
		ExcludedDirs:      "Templates/,Archive/",
	}
}

// ExcludedDirList splits the comma-separated exclusion setting into
// prefixes. A value that reduces to a single empty string yields nil,
// which disables the exclusion stage.
func (s Settings) ExcludedDirList() []string {
	var out []string
	for _, p := range strings.Split(s.ExcludedDirs, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DailyNotePath resolves the daily-note template against the given day
// using Go reference-time layout rules.
func (s Settings) DailyNotePath(day time.Time) string {
	return day.Format(s.DailyNoteTemplate)
}

// Store is the settings database handle.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the settings database under dataDir and runs
// migrations.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "vault-todos.db")
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open settings db: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate settings db: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the persisted settings, with defaults filling any key
// that was never set.
func (s *Store) Load() (Settings, error) {
	settings := DefaultSettings()

	rows, err := s.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return settings, fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return settings, fmt.Errorf("scan setting: %w", err)
		}
		switch key {
		case "section_heading":
			settings.SectionHeading = value
		case "daily_note_template":
			settings.DailyNoteTemplate = value
		case "excluded_dirs":
			settings.ExcludedDirs = value
		}
	}
	return settings, rows.Err()
}

// Set persists one setting value, creating or replacing the row.
func (s *Store) Set(key, value string) error {
	if !settingKeys[key] {
		return fmt.Errorf("unknown setting %q", key)
	}
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// EditRecord is one journaled checklist mutation.
type EditRecord struct {
	ID        string `json:"id"`
	Op        string `json:"op"`
	Path      string `json:"path"`
	OldLine   string `json:"old_line,omitempty"`
	NewLine   string `json:"new_line"`
	CreatedAt string `json:"created_at"`
}

// RecordEdit appends one mutation to the edit journal.
func (s *Store) RecordEdit(op, path, oldLine, newLine string) error {
	_, err := s.db.Exec(
		`INSERT INTO edit_journal (id, op, path, old_line, new_line) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), op, path, oldLine, newLine,
	)
	if err != nil {
		return fmt.Errorf("record edit: %w", err)
	}
	return nil
}

// RecentEdits returns the newest journal entries, most recent first.
func (s *Store) RecentEdits(limit int) ([]EditRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, op, path, old_line, new_line, created_at
		 FROM edit_journal ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list edits: %w", err)
	}
	defer rows.Close()

	var edits []EditRecord
	for rows.Next() {
		var e EditRecord
		if err := rows.Scan(&e.ID, &e.Op, &e.Path, &e.OldLine, &e.NewLine, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan edit: %w", err)
		}
		edits = append(edits, e)
	}
	return edits, rows.Err()
}
