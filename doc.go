// Package apireg provides an immutable, dependency-ordered registry of
// named API implementations. Factories declare what they produce and what
// they need; the resolver instantiates them in dependency order, memoizes
// the results, and rejects invalid registration graphs before running
// anything.
//
// # Overview
//
// apireg is built around three small pieces:
//   - Ref: a typed handle naming an API entry by an opaque string
//     identifier, without holding its value
//   - Factory: a descriptor of how to build one entry from its declared
//     dependencies
//   - Resolver: an immutable identifier-to-value registry, grown in atomic
//     batches
//
// # Basic Usage
//
// Declare references, provide factories, grow a resolver:
//
//	var (
//	    Config = apireg.NewRef[*Config]("app/config")
//	    Store  = apireg.NewRef[*Store]("app/store")
//	)
//
//	r, err := apireg.Empty().With(
//	    apireg.Provide(Store, func(v apireg.Values) (*Store, error) {
//	        return OpenStore(apireg.MustGet[*Config](v, "config"))
//	    }, apireg.Use("config", Config)),
//	    apireg.Provide(Config, func(apireg.Values) (*Config, error) {
//	        return LoadConfig()
//	    }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store, ok := apireg.Resolve(r, Store)
//
// Batch order does not matter: With computes a valid instantiation order
// from the declared dependencies, so Store above is built after Config even
// though it was registered first.
//
// # Immutability
//
// A Resolver is never mutated after construction. With returns a new
// Resolver containing the previous entries plus the batch, or an error and
// no change at all. A Resolver value can therefore be shared across
// goroutines and scopes freely; there is nothing to lock.
//
// # Error Handling
//
// With rejects a batch atomically with typed errors:
//   - DuplicateRegistrationError: an identifier is already registered
//   - MissingDependencyError: a dependency is satisfiable by neither the
//     base registry nor the batch, reported as a chain ("c -> missing")
//   - CircularDependencyError: an identifier reappears in its own
//     resolution chain, reported in path order ("a -> b -> a")
//   - ConstructorError, ConstructorPanicError: a construction function
//     failed or panicked
//
// Lookup and Resolve never fail for unregistered identifiers; absence is a
// normal, checkable outcome.
//
// # Scopes
//
// Scope ties a Resolver to a cancellation signal for request-style use.
// Derivation is the only way to grow a scope's registry:
//
//	scope := apireg.NewScope(r.Context())
//	defer scope.Close()
//
//	scope, err := scope.WithAPI(factories...)
//	svc, ok := apireg.ResolveAPI(scope, Store)
//
// # Best Practices
//
//   - Register factories during startup or scope setup; treat registration
//     failures as fatal configuration errors
//   - Keep construction functions deterministic and side-effect free; the
//     registry memoizes their results
//   - Declare one Ref per API in the package that defines the API's type
//   - Derive new scopes instead of sharing a growing one
package apireg
