package repositories

import (
	"context"
	"label-batch-service/internal/labels"
	"label-batch-service/internal/ports"
	"sort"
	"sync"
)

// MemoryLabelRepository keeps labels and documents in process memory. It
// backs tests and one-off builds that have no database.
type MemoryLabelRepository struct {
	mu     sync.Mutex
	labels []*labels.Request
	docs   map[string]ports.StoredDocument
}

func NewMemoryLabelRepository(reqs ...*labels.Request) *MemoryLabelRepository {
	return &MemoryLabelRepository{
		labels: append([]*labels.Request(nil), reqs...),
		docs:   make(map[string]ports.StoredDocument),
	}
}

func (m *MemoryLabelRepository) ListLabels(ctx context.Context) ([]*labels.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*labels.Request(nil), m.labels...), nil
}

func (m *MemoryLabelRepository) AddLabels(ctx context.Context, reqs []*labels.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.labels = append(m.labels, reqs...)
	return nil
}

func (m *MemoryLabelRepository) SaveDocuments(ctx context.Context, docs []ports.StoredDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range docs {
		m.docs[d.BatchID] = d
	}
	return nil
}

func (m *MemoryLabelRepository) GetDocuments(ctx context.Context, batchIDs []string) (map[string]ports.StoredDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]ports.StoredDocument)
	for _, id := range uniqueIDs(batchIDs) {
		if d, ok := m.docs[id]; ok {
			out[id] = d
		}
	}
	return out, nil
}

// ListDocuments returns stored documents, oldest first.
func (m *MemoryLabelRepository) ListDocuments(ctx context.Context) ([]ports.StoredDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.StoredDocument, 0, len(m.docs))
	for _, d := range m.docs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].BatchID < out[j].BatchID
	})
	return out, nil
}
