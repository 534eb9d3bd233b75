package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"label-batch-service/internal/labels"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	createLabelsQuery := `
	CREATE TABLE IF NOT EXISTS labels (
		label_id INTEGER PRIMARY KEY AUTOINCREMENT,
		reference TEXT NOT NULL DEFAULT '',
		payload TEXT NOT NULL
	);
	`

	createDocumentsQuery := `
	CREATE TABLE IF NOT EXISTS batch_documents (
		batch_id TEXT PRIMARY KEY,
		package_count INTEGER NOT NULL,
		xml TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_labels_reference
	ON labels(reference);
	`

	return execSchema(db, []string{createLabelsQuery, createDocumentsQuery, createIndexQuery})
}

// Initialize the Postgres database schema.
func InitPostgresSchema(db *sql.DB) error {
	createLabelsQuery := `
	CREATE TABLE IF NOT EXISTS labels (
		label_id BIGSERIAL PRIMARY KEY,
		reference TEXT NOT NULL DEFAULT '',
		payload JSONB NOT NULL
	);
	`

	createDocumentsQuery := `
	CREATE TABLE IF NOT EXISTS batch_documents (
		batch_id UUID PRIMARY KEY,
		package_count INTEGER NOT NULL,
		xml TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_labels_reference
	ON labels(reference);
	`

	return execSchema(db, []string{createLabelsQuery, createDocumentsQuery, createIndexQuery})
}

func execSchema(db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Storage that accepts new label requests.
type LabelWriter interface {
	AddLabels(ctx context.Context, reqs []*labels.Request) error
}

// Populate the database with label requests from a YAML or JSON file.
func SeedFromFile(ctx context.Context, w LabelWriter, path string) error {
	f, err := labels.Load(path)
	if err != nil {
		return fmt.Errorf("seed labels: %w", err)
	}

	for i, r := range f.Labels {
		// Catch bad weights, indexes and flags before they are stored.
		if _, err := r.Options(); err != nil {
			return fmt.Errorf("seed labels: label at index %d: %w", i+1, err)
		}
	}

	if err := w.AddLabels(ctx, f.Labels); err != nil {
		return fmt.Errorf("seed labels: %w", err)
	}

	return nil
}
