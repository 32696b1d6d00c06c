package io

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/flow"
)

// Schema of a SQLite flow file. Row order is insertion order, which the
// layout uses to stack nodes within a level.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS nodes (
	id    INTEGER NOT NULL UNIQUE CHECK (id > 0),
	name  TEXT    NOT NULL,
	level INTEGER NOT NULL,
	color TEXT    NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS flows (
	source INTEGER NOT NULL REFERENCES nodes(id),
	target INTEGER NOT NULL REFERENCES nodes(id),
	weight REAL    NOT NULL,
	UNIQUE (source, target)
);
`

// ReadSQLite loads a graph from a SQLite database with "nodes" and "flows"
// tables (and an optional "meta" table holding the title). The database
// is opened read-only.
func ReadSQLite(ctx context.Context, path string) (*flow.Graph, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer db.Close()

	var doc document
	if err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'title'`).Scan(&doc.Title); err != nil &&
		err != sql.ErrNoRows && !isMissingTable(err) {
		return nil, formatError(FormatSQLite, err)
	}

	rows, err := db.QueryContext(ctx, `SELECT id, name, level, color FROM nodes ORDER BY rowid`)
	if err != nil {
		return nil, formatError(FormatSQLite, err)
	}
	for rows.Next() {
		var n nodeEntry
		if err := rows.Scan(&n.ID, &n.Name, &n.Level, &n.Color); err != nil {
			rows.Close()
			return nil, formatError(FormatSQLite, err)
		}
		doc.Nodes = append(doc.Nodes, n)
	}
	if err := closeRows(rows); err != nil {
		return nil, formatError(FormatSQLite, err)
	}

	rows, err = db.QueryContext(ctx, `SELECT source, target, weight FROM flows ORDER BY rowid`)
	if err != nil {
		return nil, formatError(FormatSQLite, err)
	}
	for rows.Next() {
		var f flowEntry
		if err := rows.Scan(&f.From, &f.To, &f.Weight); err != nil {
			rows.Close()
			return nil, formatError(FormatSQLite, err)
		}
		doc.Flows = append(doc.Flows, f)
	}
	if err := closeRows(rows); err != nil {
		return nil, formatError(FormatSQLite, err)
	}

	return doc.toGraph()
}

// WriteSQLite stores a graph in a new SQLite database at path, replacing
// any existing file.
func WriteSQLite(ctx context.Context, g *flow.Graph, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	doc := fromGraph(g)
	if doc.Title != "" {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES ('title', ?)`, doc.Title); err != nil {
			return fmt.Errorf("insert title: %w", err)
		}
	}
	for _, n := range doc.Nodes {
		if _, err := tx.ExecContext(ctx, `INSERT INTO nodes (id, name, level, color) VALUES (?, ?, ?, ?)`,
			n.ID, n.Name, n.Level, n.Color); err != nil {
			return fmt.Errorf("insert node %d: %w", n.ID, err)
		}
	}
	for _, f := range doc.Flows {
		if _, err := tx.ExecContext(ctx, `INSERT INTO flows (source, target, weight) VALUES (?, ?, ?)`,
			f.From, f.To, f.Weight); err != nil {
			return fmt.Errorf("insert flow %d->%d: %w", f.From, f.To, err)
		}
	}
	return tx.Commit()
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}

func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}
