package domain

import (
	"reflect"
	"sync"
)

// Applier is anything the resolver can hand to a package directly: a plain
// Option, or a record such as CustomsItem that applies itself with side
// effects on the package.
type Applier interface {
	ApplyTo(p *Package, isDefault bool) error
}

// ExpandFunc turns one registered record into further option inputs. The
// result is resolved again, so it may contain Options, other records or
// nested slices.
type ExpandFunc func(v any) ([]any, error)

// Resolver flattens option inputs into an ordered list of Appliers.
//
// Inputs are checked in order: nil values and nil pointers are skipped, a
// type registered with Register is expanded, an Applier is taken as is, and
// a slice or array is walked element by element. Anything else is
// unsupported.
type Resolver struct {
	mu       sync.RWMutex
	handlers map[reflect.Type]ExpandFunc
}

// NewResolver returns a resolver with no registered record types.
func NewResolver() *Resolver {
	return &Resolver{handlers: make(map[reflect.Type]ExpandFunc)}
}

// DefaultResolver is the process-wide resolver used by batches unless one
// is supplied. Record types register on it from init functions.
var DefaultResolver = NewResolver()

// Register installs fn as the expansion for values of sample's type.
// Registering a type again replaces the previous expansion.
func (r *Resolver) Register(sample any, fn ExpandFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[reflect.TypeOf(sample)] = fn
}

// RegisterFunc registers a typed expansion for T on r.
func RegisterFunc[T any](r *Resolver, fn func(T) ([]any, error)) {
	var zero T
	r.Register(zero, func(v any) ([]any, error) {
		return fn(v.(T))
	})
}

func (r *Resolver) lookup(t reflect.Type) (ExpandFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.handlers[t]
	return fn, ok
}

// Resolve flattens src depth-first, left to right.
func (r *Resolver) Resolve(src any) ([]Applier, error) {
	var out []Applier
	if err := r.resolve(src, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resolver) resolve(src any, out *[]Applier) error {
	if src == nil {
		return nil
	}
	rv := reflect.ValueOf(src)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}

	if fn, ok := r.lookup(reflect.TypeOf(src)); ok {
		items, err := fn(src)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := r.resolve(item, out); err != nil {
				return err
			}
		}
		return nil
	}

	switch v := src.(type) {
	case Applier:
		*out = append(*out, v)
		return nil
	case []any:
		for _, item := range v {
			if err := r.resolve(item, out); err != nil {
				return err
			}
		}
		return nil
	}

	if k := rv.Kind(); k == reflect.Slice || k == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			if err := r.resolve(rv.Index(i).Interface(), out); err != nil {
				return err
			}
		}
		return nil
	}

	return &UnsupportedOptionTypeError{Type: reflect.TypeOf(src)}
}
