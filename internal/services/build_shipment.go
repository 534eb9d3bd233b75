package services

import (
	"context"
	"errors"
	"fmt"
	"label-batch-service/internal/domain"
	"label-batch-service/internal/labels"
	"label-batch-service/internal/platform/obs"
	"label-batch-service/internal/ports"
	"time"

	"go.uber.org/zap"
)

type BuildShipmentRequest struct {
	// Labels to batch. When empty, every label in the repository is used.
	Labels []*labels.Request
	// Default layers, strongest first. They apply to every label without
	// overriding it; where two layers set the same field the earlier wins.
	Defaults []*labels.Request
	// Persist the generated documents in the DocumentStore.
	Save bool
}

// One generated batch document.
type BatchDocument struct {
	BatchID      string
	PackageCount int
	// References of the labels in the batch, in package ID order.
	References []string
	XML        string
}

// LabelError identifies the label that stopped a build.
type LabelError struct {
	Index     int
	Reference string
	Err       error
}

func (e *LabelError) Error() string {
	if e.Reference != "" {
		return fmt.Sprintf("label #%d (%s): %v", e.Index, e.Reference, e.Err)
	}
	return fmt.Sprintf("label #%d: %v", e.Index, e.Err)
}

func (e *LabelError) Unwrap() error { return e.Err }

// BuildShipment groups labels into batches of compatible options and renders
// one document per batch.
//
// Labels are placed first-fit in the order given, so the same input always
// produces the same batches. The first label that fits no batch stops the
// build.
func BuildShipment(
	ctx context.Context,
	req BuildShipmentRequest,
	repo ports.LabelRepository,
	store ports.DocumentStore,
	newDoc domain.DocumentFactory,
) (_ []BatchDocument, err error) {
	defer obs.Time(ctx, "services.BuildShipment")(&err)

	reqs := req.Labels
	if len(reqs) == 0 {
		if repo == nil {
			return nil, errors.New("build shipment: no labels given and no repository configured")
		}
		reqs, err = repo.ListLabels(ctx)
		if err != nil {
			return nil, fmt.Errorf("build shipment: list labels: %w", err)
		}
	}
	if len(reqs) == 0 {
		return []BatchDocument{}, nil
	}

	var rules []any
	for i, d := range req.Defaults {
		opts, err := d.Options()
		if err != nil {
			return nil, fmt.Errorf("build shipment: defaults layer %d: %w", i+1, err)
		}
		rules = append(rules, opts)
	}

	shipment := domain.NewShipment(newDoc, rules, domain.WithLogger(obs.Logger()))

	// Track which label landed where so the response can name them.
	refs := make(map[*domain.Batch][]string)
	for i, r := range reqs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build shipment: %w", err)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("build shipment: %w", &LabelError{Index: i + 1, Reference: r.Reference, Err: err})
		}

		opts, err := r.Options()
		if err != nil {
			return nil, fmt.Errorf("build shipment: %w", &LabelError{Index: i + 1, Reference: r.Reference, Err: err})
		}

		batch, err := shipment.AddPackage(opts)
		if err != nil {
			return nil, fmt.Errorf("build shipment: %w", &LabelError{Index: i + 1, Reference: r.Reference, Err: err})
		}
		refs[batch] = append(refs[batch], r.Reference)
	}

	now := time.Now()
	out := make([]BatchDocument, 0, shipment.Len())
	stored := make([]ports.StoredDocument, 0, shipment.Len())
	for _, b := range shipment.Batches() {
		xml, err := b.Document().String()
		if err != nil {
			return nil, fmt.Errorf("build shipment: serialize batch %s: %w", b.ID(), err)
		}
		out = append(out, BatchDocument{
			BatchID:      b.ID(),
			PackageCount: b.Len(),
			References:   refs[b],
			XML:          xml,
		})
		stored = append(stored, ports.StoredDocument{
			BatchID:      b.ID(),
			PackageCount: b.Len(),
			XML:          xml,
			CreatedAt:    now,
		})
	}

	if req.Save {
		if store == nil {
			return nil, errors.New("build shipment: save requested but no document store configured")
		}
		if err := store.SaveDocuments(ctx, stored); err != nil {
			return nil, fmt.Errorf("build shipment: save documents: %w", err)
		}
	}

	obs.Logger().Info("shipment built",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.Int("labels", len(reqs)),
		zap.Int("batches", len(out)),
	)

	return out, nil
}
