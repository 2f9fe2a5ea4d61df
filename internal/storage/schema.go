package storage

// Schema is the SQL schema for the settings database: persisted runtime
// settings as key/value rows, plus the journal of checklist mutations.
const Schema = `
CREATE TABLE IF NOT EXISTS settings (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS edit_journal (
    id         TEXT PRIMARY KEY,
    op         TEXT NOT NULL CHECK(op IN ('add', 'update')),
    path       TEXT NOT NULL,
    old_line   TEXT NOT NULL DEFAULT '',
    new_line   TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_edit_journal_path ON edit_journal(path);
CREATE INDEX IF NOT EXISTS idx_edit_journal_created ON edit_journal(created_at);
`
