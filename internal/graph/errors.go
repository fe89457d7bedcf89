package graph

import (
	"fmt"
	"strings"
)

// CircularDependencyError reports an identifier that reappeared in its own
// resolution chain. Chain holds the in-progress path in order, closed by
// the repeated identifier, e.g. ["a", "b", "a"].
type CircularDependencyError struct {
	Chain []string
}

func (e CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency: %s", FormatChain(e.Chain))
}

// MissingDependencyError reports an identifier that is neither in the base
// registry nor produced by the batch. Chain holds the path from the
// originating registration to the missing identifier, e.g. ["c", "missing"].
type MissingDependencyError struct {
	Chain []string
}

func (e MissingDependencyError) Error() string {
	return fmt.Sprintf("missing dependency: %s", FormatChain(e.Chain))
}

// FormatChain renders an identifier chain as "a -> b -> c".
func FormatChain(chain []string) string {
	return strings.Join(chain, " -> ")
}
