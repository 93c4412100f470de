// Package sqlite implements the task repository over a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	seq             INTEGER PRIMARY KEY AUTOINCREMENT,
	uid             TEXT    NOT NULL UNIQUE,
	owner_id        TEXT    NOT NULL,
	title           TEXT    NOT NULL,
	priority        INTEGER NOT NULL DEFAULT 2,
	status          TEXT    NOT NULL DEFAULT 'open',
	source          TEXT    NOT NULL,
	source_ref      TEXT    NOT NULL DEFAULT '',
	linked_event_id TEXT    NOT NULL DEFAULT '',
	created_at      INTEGER NOT NULL,
	updated_at      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_owner_status ON tasks(owner_id, status);
CREATE INDEX IF NOT EXISTS idx_tasks_source_ref ON tasks(owner_id, source_ref);
`

// Open opens (creating if needed) the SQLite database at path and ensures
// the schema exists. Use ":memory:" for tests.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %q: %w", path, err)
	}

	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY on concurrent handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return db, nil
}
