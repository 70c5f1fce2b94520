// ABOUTME: SQLite export of the grid
// ABOUTME: Writes classes and entries tables for ad-hoc SQL analysis
package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/harper/tally/internal/grid"
)

const schema = `
DROP TABLE IF EXISTS entries;
DROP TABLE IF EXISTS classes;

CREATE TABLE classes (
	id       TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	name     TEXT NOT NULL
);

CREATE TABLE entries (
	class_id  TEXT NOT NULL REFERENCES classes(id) ON DELETE CASCADE,
	row_index INTEGER NOT NULL,
	timestamp DATETIME NOT NULL,
	value     INTEGER,
	PRIMARY KEY (class_id, row_index)
);

CREATE INDEX idx_entries_timestamp ON entries(timestamp);
`

// SQLite replaces the tables in the database at path with the grid.
// Blank cells are stored as NULL.
func SQLite(ctx context.Context, path string, d *grid.Data) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil { //nolint:gosec // Standard directory permissions for user data
		return fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	classStmt, err := tx.PrepareContext(ctx, "INSERT INTO classes (id, position, name) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare class insert: %w", err)
	}
	defer func() { _ = classStmt.Close() }()

	entryStmt, err := tx.PrepareContext(ctx, "INSERT INTO entries (class_id, row_index, timestamp, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare entry insert: %w", err)
	}
	defer func() { _ = entryStmt.Close() }()

	for pos, c := range d.Classes {
		if _, err := classStmt.ExecContext(ctx, c.ID, pos, c.Name); err != nil {
			return fmt.Errorf("insert class %q: %w", c.Name, err)
		}
		for row, e := range c.Entries {
			var value sql.NullInt64
			if !e.IsBlank() {
				value = sql.NullInt64{Int64: int64(e.Value), Valid: true}
			}
			if _, err := entryStmt.ExecContext(ctx, c.ID, row, e.Timestamp.UTC(), value); err != nil {
				return fmt.Errorf("insert entry %s[%d]: %w", c.Name, row, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
