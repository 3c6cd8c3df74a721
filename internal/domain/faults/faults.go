// Package faults defines the error taxonomy shared by the mutation pipeline
// and the read layer.
//
// Every fault carries a human-readable message that is safe to surface to
// the caller as-is; the underlying cause (if any) stays attached for
// logging and errors.Is/As inspection but is never shown to the caller.
package faults

import "errors"

// Kind classifies a fault.
type Kind int

const (
	// Validation means the input shape or format was bad.
	Validation Kind = iota
	// Conflict means a uniqueness constraint was violated.
	Conflict
	// Reference means a soft foreign key or lookup target does not exist.
	Reference
	// Schema means the built document failed structural validation.
	Schema
	// Store means the document store could not be reached or the
	// operation failed inside it.
	Store
)

// Fault is a classified, caller-presentable error.
type Fault struct {
	Kind    Kind
	Message string
	Cause   error
}

func (f *Fault) Error() string { return f.Message }

// Unwrap exposes the underlying cause for errors.Is/As.
func (f *Fault) Unwrap() error { return f.Cause }

// New constructs a fault with the given kind and message.
func New(kind Kind, message string) *Fault {
	return &Fault{Kind: kind, Message: message}
}

// Wrap attaches a cause to a fault. The message is what the caller sees;
// the cause is for diagnostics only.
func Wrap(kind Kind, message string, cause error) *Fault {
	return &Fault{Kind: kind, Message: message, Cause: cause}
}

// KindOf returns the kind of err if it is (or wraps) a Fault.
// Unclassified errors report as Store faults: anything that escapes the
// pipeline unclassified came from the store boundary.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return Store
}

// Is reports whether err is a Fault of the given kind.
func Is(err error, kind Kind) bool {
	var f *Fault
	return errors.As(err, &f) && f.Kind == kind
}
