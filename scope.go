package apireg

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Scope is a request/operation-scoped carrier of a cancellation signal and
// an API resolver. Scopes form a derivation tree: WithAPI grows the
// resolver into a child scope, WithTimeout and WithDeadline tighten the
// cancellation signal, and cancelling a scope cancels every scope derived
// from it.
//
// A Scope never exposes a mutation path into its resolver. Derived scopes
// wrap new Resolver values, so concurrent readers of a parent scope are
// unaffected by derivation:
//
//	scope := apireg.NewScope(r.Context())
//	defer scope.Close()
//
//	scope, err := scope.WithAPI(factories...)
type Scope struct {
	id       string
	ctx      context.Context
	cancel   context.CancelFunc
	resolver *Resolver
	parent   *Scope
}

// NewScope creates a root scope with an empty resolver, derived from the
// given context. A nil context falls back to context.Background.
func NewScope(ctx context.Context) *Scope {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Scope{
		id:       uuid.NewString(),
		ctx:      ctx,
		cancel:   cancel,
		resolver: Empty(),
	}
}

// WithAPI derives a child scope whose resolver contains every entry of
// this scope's resolver plus the batch, instantiated in dependency order.
// The child shares this scope's cancellation signal. Registration failures
// reject the whole batch and no child is created; see (*Resolver).With for
// the error taxonomy.
func (s *Scope) WithAPI(factories ...Factory) (*Scope, error) {
	next, err := s.resolver.With(factories...)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(s.ctx)
	return s.derive(next, ctx, cancel), nil
}

// WithTimeout derives a child scope sharing this scope's resolver, whose
// context is cancelled after d or when this scope is cancelled, whichever
// comes first.
func (s *Scope) WithTimeout(d time.Duration) *Scope {
	ctx, cancel := context.WithTimeout(s.ctx, d)
	return s.derive(s.resolver, ctx, cancel)
}

// WithDeadline derives a child scope sharing this scope's resolver, whose
// context is cancelled at t or when this scope is cancelled, whichever
// comes first.
func (s *Scope) WithDeadline(t time.Time) *Scope {
	ctx, cancel := context.WithDeadline(s.ctx, t)
	return s.derive(s.resolver, ctx, cancel)
}

func (s *Scope) derive(resolver *Resolver, ctx context.Context, cancel context.CancelFunc) *Scope {
	return &Scope{
		id:       uuid.NewString(),
		ctx:      ctx,
		cancel:   cancel,
		resolver: resolver,
		parent:   s,
	}
}

// ResolveAPI returns the value registered under the given identifier.
// Absence is a normal outcome; use the generic ResolveAPI function for a
// typed lookup through a Ref.
func (s *Scope) ResolveAPI(id string) (any, bool) {
	return s.resolver.Lookup(id)
}

// ResolveAPI returns the value registered under ref in the scope's
// resolver, typed by the reference.
func ResolveAPI[T any](s *Scope, ref Ref[T]) (T, bool) {
	return Resolve(s.resolver, ref)
}

// Resolver returns the scope's resolver. The returned value is immutable
// and safe to retain past the scope's lifetime.
func (s *Scope) Resolver() *Resolver {
	return s.resolver
}

// ID returns the unique ID of this scope.
func (s *Scope) ID() string {
	return s.id
}

// Context returns the context carrying this scope's cancellation signal.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Done mirrors s.Context().Done().
func (s *Scope) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Err mirrors s.Context().Err().
func (s *Scope) Err() error {
	return s.ctx.Err()
}

// Parent returns the scope this scope was derived from, or nil for a root
// scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// IsRoot reports whether this scope has no parent.
func (s *Scope) IsRoot() bool {
	return s.parent == nil
}

// Close cancels this scope's context and, through it, every derived
// scope. The resolver is unaffected: values already resolved stay
// readable. Close is idempotent.
func (s *Scope) Close() {
	s.cancel()
}
