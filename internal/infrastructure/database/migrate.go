package database

import (
	"context"
	"fmt"
)

// schema for the custom books store. Authors are stored as a
// JSON-serialized list and deserialized on every read.
const customBooksSchema = `
CREATE TABLE IF NOT EXISTS custom_books (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	authors      TEXT NOT NULL,
	publish_year INTEGER,
	genre        TEXT,
	description  TEXT,
	cover_url    TEXT,
	status       TEXT NOT NULL DEFAULT 'want-to-read',
	created_date TIMESTAMPTZ NOT NULL,
	updated_date TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_custom_books_created_date
	ON custom_books (created_date DESC);

CREATE INDEX IF NOT EXISTS idx_custom_books_status
	ON custom_books (status);
`

// EnsureSchema bootstraps the custom_books table on startup.
// There is no migration tooling; the schema is additive-only.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, customBooksSchema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
