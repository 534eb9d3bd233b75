package ports

import (
	"context"
	"label-batch-service/internal/labels"
)

// Port: a boundary for retrieving label requests from a data source.
type LabelRepository interface {
	// Retrieve all label requests waiting to be batched, in insertion order.
	ListLabels(ctx context.Context) ([]*labels.Request, error)
}
