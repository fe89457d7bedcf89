package apireg

// Ref is a typed handle naming an API entry without holding its value.
// The type parameter exists only at compile time: it lets Resolve and
// Provide check that the value registered under an identifier is consumed
// as the type it was produced with. At runtime a Ref is nothing but its
// identifier string.
//
// Refs are plain values and compare by identifier, so two packages can
// construct equal Refs independently without sharing a variable:
//
//	var Clock = apireg.NewRef[clock.Clock]("core/clock")
type Ref[T any] struct {
	id string
}

// NewRef creates a typed reference for the given identifier.
// Identifier uniqueness is enforced by the Resolver at registration time,
// not here.
func NewRef[T any](id string) Ref[T] {
	return Ref[T]{id: id}
}

// ID returns the identifier this reference names.
func (r Ref[T]) ID() string { return r.id }

func (r Ref[T]) String() string { return r.id }
