package domain

import (
	"fmt"
	"reflect"
)

// OptionConflict reports a write that disagrees with a value already present
// in the document, or a package that fails a cross-field check after its
// options were applied.
//
// A conflict is recoverable: the batch that raised it has already been
// rolled back, so the caller may try the package somewhere else.
type OptionConflict struct {
	Path     Path
	Value    string
	Existing string
	// Reason replaces the default message for cross-field checks.
	Reason string
}

func (e *OptionConflict) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Reason != "" {
		return "dazzle: conflict: " + e.Reason
	}
	name := e.Path.String()
	return fmt.Sprintf("dazzle: conflict: can't set '%s=%s' when '%s=%s' already set", name, e.Value, name, e.Existing)
}

// InversionError is returned by Option.Invert for values with no opposite.
type InversionError struct {
	Path  Path
	Value string
}

func (e *InversionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("dazzle: cannot invert %s=%q: value has no opposite", e.Path, e.Value)
}

// UnsupportedOptionTypeError is returned when the resolver has no rule for
// an input's type.
type UnsupportedOptionTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedOptionTypeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("dazzle: no option resolver registered for %v", e.Type)
}

// ValidationError is raised by option constructors for bad input, before
// anything touches a document.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("dazzle: invalid %s: %s", e.Field, e.Reason)
}

// UnplaceableError wraps the conflict raised when even a brand-new batch
// rejects a package. The package's own options contradict each other, so no
// batch will ever accept it.
type UnplaceableError struct {
	Err error
}

func (e *UnplaceableError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("dazzle: package cannot be placed in any batch: %v", e.Err)
}

func (e *UnplaceableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
