package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"label-batch-service/internal/labels"
	"label-batch-service/internal/ports"
	"strings"
)

// SQLite-backed implementation of the LabelRepository and DocumentStore ports.
type SqliteLabelRepository struct{ DB *sql.DB }

func NewSqliteLabelRepository(db *sql.DB) *SqliteLabelRepository {
	return &SqliteLabelRepository{DB: db}
}

// Return all label requests in insertion order.
func (s *SqliteLabelRepository) ListLabels(ctx context.Context) ([]*labels.Request, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite label repository: DB is nil")
	}

	query := `
	SELECT
		label_id,
		payload
	FROM labels
	ORDER BY label_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list labels: query labels table: %w", err)
	}
	defer rows.Close()

	return scanLabels(rows)
}

// Store label requests, keeping their order.
func (s *SqliteLabelRepository) AddLabels(ctx context.Context, reqs []*labels.Request) error {
	if s.DB == nil {
		return errors.New("sqlite label repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("add labels: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO labels (
		reference,
		payload
	)
	VALUES (?, ?);
	`)
	if err != nil {
		return fmt.Errorf("add labels: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range reqs {
		payload, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("add labels: encode label at index %d: %w", i+1, err)
		}
		if _, err := stmt.ExecContext(ctx, r.Reference, string(payload)); err != nil {
			return fmt.Errorf("add labels: insert label at index %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("add labels: commit tx: %w", err)
	}

	return nil
}

// Store generated batch documents. A batch saved twice keeps the latest XML.
func (s *SqliteLabelRepository) SaveDocuments(ctx context.Context, docs []ports.StoredDocument) error {
	if s.DB == nil {
		return errors.New("sqlite label repository: DB is nil")
	}

	if len(docs) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save documents: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO batch_documents (
		batch_id,
		package_count,
		xml,
		created_at
	)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save documents: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range docs {
		if _, err := stmt.ExecContext(ctx, d.BatchID, d.PackageCount, d.XML, d.CreatedAt.UTC()); err != nil {
			return fmt.Errorf("save documents: insert batch_id=%s: %w", d.BatchID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save documents: commit tx: %w", err)
	}

	return nil
}

// Return stored batch documents, oldest first.
func (s *SqliteLabelRepository) ListDocuments(ctx context.Context) ([]ports.StoredDocument, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite label repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT batch_id, package_count, xml, created_at
	FROM batch_documents
	ORDER BY created_at, batch_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list documents: query batch_documents table: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// Fetch stored documents for the given batch IDs.
func (s *SqliteLabelRepository) GetDocuments(ctx context.Context, batchIDs []string) (map[string]ports.StoredDocument, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite label repository: DB is nil")
	}

	uniq := uniqueIDs(batchIDs)
	if len(uniq) == 0 {
		return map[string]ports.StoredDocument{}, nil
	}

	ph := make([]string, len(uniq))
	args := make([]any, len(uniq))
	for i, id := range uniq {
		ph[i] = "?"
		args[i] = id
	}

	// SQLite cannot bind a slice to IN (...). Only the placeholder list is
	// interpolated; the IDs stay parameterized.
	q := fmt.Sprintf(`
	SELECT batch_id, package_count, xml, created_at
	FROM batch_documents
	WHERE batch_id IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get documents: query batch_documents table: %w", err)
	}
	defer rows.Close()

	docs, err := scanDocuments(rows)
	if err != nil {
		return nil, err
	}
	return byBatchID(docs), nil
}

// uniqueIDs trims, drops blanks and removes duplicates, keeping order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func byBatchID(docs []ports.StoredDocument) map[string]ports.StoredDocument {
	out := make(map[string]ports.StoredDocument, len(docs))
	for _, d := range docs {
		out[d.BatchID] = d
	}
	return out
}

func scanLabels(rows *sql.Rows) ([]*labels.Request, error) {
	out := make([]*labels.Request, 0, 64)
	for rows.Next() {
		var id int64
		var payload []byte
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("list labels: scan row: %w", err)
		}

		var r labels.Request
		if err := json.Unmarshal(payload, &r); err != nil {
			return nil, fmt.Errorf("list labels: decode label_id=%d: %w", id, err)
		}
		out = append(out, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list labels: row iteration: %w", err)
	}

	return out, nil
}

func scanDocuments(rows *sql.Rows) ([]ports.StoredDocument, error) {
	var out []ports.StoredDocument
	for rows.Next() {
		var d ports.StoredDocument
		if err := rows.Scan(&d.BatchID, &d.PackageCount, &d.XML, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("list documents: scan row: %w", err)
		}
		out = append(out, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: row iteration: %w", err)
	}

	return out, nil
}
