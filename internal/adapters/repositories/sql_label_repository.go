package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"label-batch-service/internal/labels"
	"label-batch-service/internal/platform/obs"
	"label-batch-service/internal/ports"
)

// SQLLabelRepository is the Postgres (pgx) implementation of the
// LabelRepository and DocumentStore ports.
type SQLLabelRepository struct {
	DB *sql.DB
}

func NewSQLLabelRepository(db *sql.DB) *SQLLabelRepository {
	return &SQLLabelRepository{DB: db}
}

// Return all label requests in insertion order.
func (s *SQLLabelRepository) ListLabels(ctx context.Context) (_ []*labels.Request, err error) {
	defer obs.Time(ctx, "labels.repo.ListLabels")(&err)

	if s.DB == nil {
		return nil, errors.New("label repository: db is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT label_id, payload
	FROM labels
	ORDER BY label_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list labels: query labels table: %w", err)
	}
	defer rows.Close()

	return scanLabels(rows)
}

// Store label requests, keeping their order.
func (s *SQLLabelRepository) AddLabels(ctx context.Context, reqs []*labels.Request) error {
	if s.DB == nil {
		return errors.New("label repository: db is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("add labels: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO labels (reference, payload)
	VALUES ($1, $2::jsonb);
	`)
	if err != nil {
		return fmt.Errorf("add labels: db prepare: %w", err)
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
		return fmt.Errorf("add labels commit: %w", err)
	}

	return nil
}

// Store generated batch documents. A batch saved twice keeps the latest XML.
func (s *SQLLabelRepository) SaveDocuments(ctx context.Context, docs []ports.StoredDocument) (err error) {
	defer obs.Time(ctx, "labels.repo.SaveDocuments")(&err)

	if s.DB == nil {
		return errors.New("label repository: db is nil")
	}

	if len(docs) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save documents: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO batch_documents (batch_id, package_count, xml, created_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (batch_id) DO UPDATE
	SET package_count = EXCLUDED.package_count,
		xml = EXCLUDED.xml,
		created_at = EXCLUDED.created_at;
	`)
	if err != nil {
		return fmt.Errorf("save documents: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, d := range docs {
		if _, err := stmt.ExecContext(ctx, d.BatchID, d.PackageCount, d.XML, d.CreatedAt); err != nil {
			return fmt.Errorf("save documents batch_id=%s: %w", d.BatchID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save documents commit: %w", err)
	}

	return nil
}

// Return stored batch documents, oldest first.
func (s *SQLLabelRepository) ListDocuments(ctx context.Context) ([]ports.StoredDocument, error) {
	if s.DB == nil {
		return nil, errors.New("label repository: db is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT batch_id::text, package_count, xml, created_at
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
func (s *SQLLabelRepository) GetDocuments(ctx context.Context, batchIDs []string) (_ map[string]ports.StoredDocument, err error) {
	defer obs.Time(ctx, "labels.repo.GetDocuments")(&err)

	if s.DB == nil {
		return nil, errors.New("label repository: db is nil")
	}

	uniq := uniqueIDs(batchIDs)
	if len(uniq) == 0 {
		return map[string]ports.StoredDocument{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT batch_id::text, package_count, xml, created_at
	FROM batch_documents
	WHERE batch_id::text = ANY($1);
	`, uniq)
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
