package apireg

import "fmt"

// Values carries the resolved dependency values handed to a construction
// function, keyed by the local dependency name the factory declared.
type Values map[string]any

// Dependency declares one requirement of a factory: the local name the
// construction function will use to look the value up, and the identifier
// that must be resolvable before the factory runs.
type Dependency struct {
	Name string
	ID   string
}

// Factory describes how to build one API entry from its declared
// dependencies. Implementations are usually created with Provide rather
// than written by hand.
type Factory interface {
	// Provides returns the identifier this factory produces.
	Provides() string

	// Dependencies returns the factory's requirements in declared order.
	// The order determines which failure is reported first when several
	// dependencies are unsatisfiable.
	Dependencies() []Dependency

	// Construct builds the value from its resolved dependencies.
	// Construction functions must be deterministic and free of observable
	// side effects; the registry memoizes their results.
	Construct(deps Values) (any, error)
}

// Use declares a named dependency on a typed reference, for passing to
// Provide. The reference's type parameter is erased here; Get re-checks it
// inside the construction function.
func Use[T any](name string, ref Ref[T]) Dependency {
	return Dependency{Name: name, ID: ref.ID()}
}

// Provide creates a Factory producing the entry named by ref.
// The construction function receives one resolved value per Use
// declaration, keyed by local name:
//
//	apireg.Provide(Sum, func(v apireg.Values) (int, error) {
//	    return apireg.MustGet[int](v, "a") + apireg.MustGet[int](v, "b"), nil
//	}, apireg.Use("a", A), apireg.Use("b", B))
func Provide[T any](ref Ref[T], construct func(Values) (T, error), deps ...Dependency) Factory {
	return &factory[T]{
		ref:       ref,
		deps:      deps,
		construct: construct,
	}
}

type factory[T any] struct {
	ref       Ref[T]
	deps      []Dependency
	construct func(Values) (T, error)
}

func (f *factory[T]) Provides() string { return f.ref.ID() }

func (f *factory[T]) Dependencies() []Dependency { return f.deps }

func (f *factory[T]) Construct(deps Values) (any, error) {
	if f.construct == nil {
		return nil, ErrNilConstruct
	}

	return f.construct(deps)
}

// Get returns the dependency value registered under the given local name,
// asserted to type T. The second return is false if the name is absent or
// the value is not a T.
func Get[T any](v Values, name string) (T, bool) {
	value, ok := v[name]
	if !ok {
		var zero T
		return zero, false
	}

	typed, ok := value.(T)
	return typed, ok
}

// MustGet is Get that panics on absence or type mismatch. Inside a
// construction function the panic is recovered by With and reported as a
// ConstructorPanicError, so MustGet is the idiomatic accessor for
// dependencies the factory itself declared.
func MustGet[T any](v Values, name string) T {
	value, ok := v[name]
	if !ok {
		panic(fmt.Sprintf("dependency %q was not provided", name))
	}

	typed, ok := value.(T)
	if !ok {
		panic(fmt.Sprintf("dependency %q is %T, not %T", name, value, *new(T)))
	}

	return typed
}
