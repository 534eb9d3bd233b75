package ports

import (
	"context"
	"time"
)

// A serialized batch document ready to hand to the label printer.
type StoredDocument struct {
	BatchID      string
	PackageCount int
	XML          string
	CreatedAt    time.Time
}

// Port: persistence for generated batch documents.
type DocumentStore interface {
	SaveDocuments(ctx context.Context, docs []StoredDocument) error
	// Fetch stored documents by batch ID. Unknown IDs are absent from the map.
	GetDocuments(ctx context.Context, batchIDs []string) (map[string]StoredDocument, error)
}
