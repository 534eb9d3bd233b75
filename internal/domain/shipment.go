package domain

import (
	"errors"

	"go.uber.org/zap"
)

// Shipment routes labels into batches. Each label goes to the first batch,
// in creation order, that accepts it; a new batch is opened only when all
// existing ones conflict.
type Shipment struct {
	newDoc   DocumentFactory
	rules    []any
	resolver *Resolver
	logger   *zap.Logger
	batches  []*Batch
}

// ShipmentOption configures a Shipment.
type ShipmentOption func(*Shipment)

// WithResolver replaces DefaultResolver for the shipment's batches.
func WithResolver(r *Resolver) ShipmentOption {
	return func(s *Shipment) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithLogger logs batch rejections at debug level.
func WithLogger(l *zap.Logger) ShipmentOption {
	return func(s *Shipment) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewShipment returns an empty shipment. newDoc creates the document of
// each new batch; rules are the defaults applied to every package.
func NewShipment(newDoc DocumentFactory, rules []any, opts ...ShipmentOption) *Shipment {
	s := &Shipment{
		newDoc:   newDoc,
		rules:    rules,
		resolver: DefaultResolver,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Batches returns the shipment's batches in creation order. None is empty.
func (s *Shipment) Batches() []*Batch {
	return s.batches
}

func (s *Shipment) Len() int {
	return len(s.batches)
}

// AddPackage places src in a batch and returns that batch.
//
// Only conflicts move on to the next batch; any other error is returned as
// is. A conflict from a brand-new batch means the package contradicts
// itself and is returned wrapped in *UnplaceableError.
func (s *Shipment) AddPackage(src any) (*Batch, error) {
	for _, b := range s.batches {
		err := b.AddPackage(src)
		if err == nil {
			return b, nil
		}
		var conflict *OptionConflict
		if !errors.As(err, &conflict) {
			return nil, err
		}
		s.logger.Debug("batch rejected package",
			zap.String("batch_id", b.ID()),
			zap.Int("batch_packages", b.Len()),
			zap.Error(err),
		)
	}

	b := newBatch(s.newDoc(RootName), s.resolver, s.rules)
	if err := b.AddPackage(src); err != nil {
		var conflict *OptionConflict
		if errors.As(err, &conflict) {
			return nil, &UnplaceableError{Err: err}
		}
		return nil, err
	}
	s.batches = append(s.batches, b)
	s.logger.Debug("opened batch", zap.String("batch_id", b.ID()), zap.Int("batches", len(s.batches)))
	return b, nil
}

// AddPackages adds each source in order, stopping at the first error.
func (s *Shipment) AddPackages(srcs ...any) error {
	for _, src := range srcs {
		if _, err := s.AddPackage(src); err != nil {
			return err
		}
	}
	return nil
}
