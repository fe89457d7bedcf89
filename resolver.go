package apireg

import (
	"maps"
	"runtime/debug"
	"slices"

	"github.com/apireg/apireg/internal/graph"
)

// Resolver is an immutable registry mapping identifiers to instantiated
// API values. A Resolver is never mutated after construction: With builds
// and returns a new instance, so a Resolver value can be read concurrently
// and shared across scopes without locking.
type Resolver struct {
	values map[string]any
}

// Empty returns a Resolver with no entries.
func Empty() *Resolver {
	return &Resolver{values: make(map[string]any)}
}

// Lookup returns the value registered under the given identifier. Absence
// is a normal outcome, reported by the second return; Lookup never fails
// for an unregistered identifier.
func (r *Resolver) Lookup(id string) (any, bool) {
	value, ok := r.values[id]
	return value, ok
}

// Has reports whether an identifier is registered.
func (r *Resolver) Has(id string) bool {
	_, ok := r.values[id]
	return ok
}

// Len returns the number of registered entries.
func (r *Resolver) Len() int {
	return len(r.values)
}

// IDs returns the registered identifiers in sorted order.
func (r *Resolver) IDs() []string {
	ids := make([]string, 0, len(r.values))
	for id := range r.values {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Resolve returns the value registered under ref's identifier, asserted to
// ref's type. The second return is false if the identifier is absent, or
// if the registered value does not have the referenced type — an entry is
// only resolvable through a reference matching the type it was produced
// with.
func Resolve[T any](r *Resolver, ref Ref[T]) (T, bool) {
	value, ok := r.values[ref.ID()]
	if !ok {
		var zero T
		return zero, false
	}

	typed, ok := value.(T)
	return typed, ok
}

// With returns a new Resolver containing every entry of r plus one entry
// per factory in the batch, instantiated in dependency order. The receiver
// is never mutated: on success the new Resolver is a strict superset of r,
// on failure r is still valid and no entry from the batch is committed.
//
// The batch is rejected atomically with:
//   - DuplicateRegistrationError if a factory produces an identifier that
//     already exists in r or is produced twice within the batch,
//   - MissingDependencyError if a dependency is satisfiable by neither r
//     nor the batch,
//   - CircularDependencyError if an identifier reappears in its own
//     resolution chain,
//   - ConstructorError or ConstructorPanicError if a construction function
//     fails or panics.
//
// Dependencies already present in r are taken as-is; factories within the
// batch are placed depth-first so every factory runs strictly after its
// batch-local dependencies. Among independent factories the batch order is
// kept, but callers must rely only on topological validity.
func (r *Resolver) With(factories ...Factory) (*Resolver, error) {
	nodes := make([]graph.Node, len(factories))
	producers := make(map[string]int, len(factories))

	// Validate the whole batch before instantiating anything.
	for i, f := range factories {
		if f == nil {
			return nil, FactoryError{Index: i, Cause: ErrNilFactory}
		}

		id := f.Provides()
		if id == "" {
			return nil, FactoryError{Index: i, Cause: ErrEmptyID}
		}

		if r.Has(id) {
			return nil, DuplicateRegistrationError{ID: id}
		}
		if _, dup := producers[id]; dup {
			return nil, DuplicateRegistrationError{ID: id}
		}
		producers[id] = i

		deps := f.Dependencies()
		needs := make([]string, len(deps))
		for j, d := range deps {
			if d.ID == "" {
				return nil, FactoryError{Index: i, ID: id, Cause: ErrEmptyID}
			}
			needs[j] = d.ID
		}

		nodes[i] = graph.Node{ID: id, Needs: needs}
	}

	order, err := graph.Plan(r.Has, nodes)
	if err != nil {
		return nil, err
	}

	next := make(map[string]any, len(r.values)+len(factories))
	maps.Copy(next, r.values)

	for _, i := range order {
		f := factories[i]

		deps := f.Dependencies()
		vals := make(Values, len(deps))
		for _, d := range deps {
			vals[d.Name] = next[d.ID]
		}

		value, err := construct(f, vals)
		if err != nil {
			return nil, err
		}

		next[f.Provides()] = value
	}

	return &Resolver{values: next}, nil
}

// construct invokes a factory's construction function, converting panics
// into ConstructorPanicError so a misbehaving factory rejects the batch
// instead of unwinding through the caller.
func construct(f Factory, vals Values) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ConstructorPanicError{
				ID:    f.Provides(),
				Panic: r,
				Stack: debug.Stack(),
			}
		}
	}()

	value, err = f.Construct(vals)
	if err != nil {
		return nil, ConstructorError{ID: f.Provides(), Cause: err}
	}

	return value, nil
}
