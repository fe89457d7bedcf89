package apireg

import (
	"errors"
	"fmt"

	"github.com/apireg/apireg/internal/graph"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// Base errors for argument misuse. Domain failures (duplicates, missing
// dependencies, cycles, construction failures) use the typed errors below,
// which carry the identifiers involved.

var (
	ErrNilFactory   = errors.New("factory cannot be nil")
	ErrNilConstruct = errors.New("construction function cannot be nil")
	ErrEmptyID      = errors.New("identifier cannot be empty")
)

var (
	_ error = DuplicateRegistrationError{}
	_ error = CircularDependencyError{}
	_ error = MissingDependencyError{}
	_ error = FactoryError{}
	_ error = ConstructorError{}
	_ error = ConstructorPanicError{}
)

// Chain errors are produced by the ordering pass in internal/graph and
// re-exported here so callers match on a single package.
type (
	// CircularDependencyError reports an identifier reappearing in its own
	// resolution chain, e.g. "a -> b -> a".
	CircularDependencyError = graph.CircularDependencyError

	// MissingDependencyError reports a dependency identifier satisfiable by
	// neither the base registry nor the batch, e.g. "c -> missing".
	MissingDependencyError = graph.MissingDependencyError
)

// DuplicateRegistrationError indicates an identifier that is already
// registered, either in the target resolver or twice within one batch.
// Registered entries are never overwritten or replaced.
type DuplicateRegistrationError struct {
	ID string
}

func (e DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("identifier %q already registered", e.ID)
}

// FactoryError wraps a structural problem with one factory in a batch
// (nil factory, empty produced identifier, malformed dependency).
type FactoryError struct {
	Index int // position in the batch
	ID    string
	Cause error
}

func (e FactoryError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("factory %d (%q): %v", e.Index, e.ID, e.Cause)
	}
	return fmt.Sprintf("factory %d: %v", e.Index, e.Cause)
}

func (e FactoryError) Unwrap() error {
	return e.Cause
}

// ConstructorError wraps an error returned by a construction function.
// The whole batch is rejected; no entries are committed.
type ConstructorError struct {
	ID    string
	Cause error
}

func (e ConstructorError) Error() string {
	return fmt.Sprintf("constructing %q: %v", e.ID, e.Cause)
}

func (e ConstructorError) Unwrap() error {
	return e.Cause
}

// ConstructorPanicError indicates a construction function panicked.
// It captures the panic value and stack trace for debugging.
type ConstructorPanicError struct {
	ID    string
	Panic any
	Stack []byte
}

func (e ConstructorPanicError) Error() string {
	return fmt.Sprintf("constructing %q panicked: %v\n%s", e.ID, e.Panic, e.Stack)
}
