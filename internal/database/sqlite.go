// Package database stores the category-rule table in SQLite.
package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS category_rules (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	category   TEXT    NOT NULL,
	keywords   TEXT    NOT NULL,
	priority   INTEGER NOT NULL DEFAULT 1,
	enabled    INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_category_rules_enabled ON category_rules(enabled);
`

// Connect opens the SQLite database at path, verifies the connection and
// creates the schema when missing. Use ":memory:" for an ephemeral store.
func Connect(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}
