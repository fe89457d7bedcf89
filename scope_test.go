package apireg_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apireg/apireg"
	"github.com/apireg/apireg/internal/testutil"
)

func TestNewScope(t *testing.T) {
	t.Parallel()

	scope := apireg.NewScope(context.Background())
	defer scope.Close()

	assert.NotEmpty(t, scope.ID())
	assert.True(t, scope.IsRoot())
	assert.Nil(t, scope.Parent())
	assert.NoError(t, scope.Err())
	assert.Equal(t, 0, scope.Resolver().Len())

	_, ok := scope.ResolveAPI("anything")
	assert.False(t, ok)
}

func TestNewScope_NilContext(t *testing.T) {
	t.Parallel()

	scope := apireg.NewScope(nil)
	defer scope.Close()

	require.NotNil(t, scope.Context())
	assert.NoError(t, scope.Err())
}

func TestScope_WithAPI(t *testing.T) {
	t.Parallel()

	parent := apireg.NewScope(context.Background())
	defer parent.Close()

	child, err := parent.WithAPI(
		testutil.Const(refA, 1),
		testutil.Sum(refB, 1, refA),
	)
	require.NoError(t, err)

	assert.False(t, child.IsRoot())
	assert.Same(t, parent, child.Parent())
	assert.NotEqual(t, parent.ID(), child.ID())

	value, ok := apireg.ResolveAPI(child, refB)
	require.True(t, ok)
	assert.Equal(t, 2, value)

	// The parent's resolver is untouched by derivation.
	_, ok = apireg.ResolveAPI(parent, refA)
	assert.False(t, ok)
	assert.Equal(t, 0, parent.Resolver().Len())
}

func TestScope_WithAPIRegistrationFailure(t *testing.T) {
	t.Parallel()

	scope, err := apireg.NewScope(context.Background()).WithAPI(testutil.Const(refA, 1))
	require.NoError(t, err)
	defer scope.Close()

	child, err := scope.WithAPI(testutil.Const(refA, 2))

	var dup apireg.DuplicateRegistrationError
	require.ErrorAs(t, err, &dup)
	assert.Nil(t, child)
}

func TestScope_CancellationPropagatesToDerived(t *testing.T) {
	t.Parallel()

	parent := apireg.NewScope(context.Background())

	child, err := parent.WithAPI(testutil.Const(refA, 1))
	require.NoError(t, err)

	parent.Close()

	assert.ErrorIs(t, child.Err(), context.Canceled)
	select {
	case <-child.Done():
	default:
		t.Fatal("derived scope not cancelled with parent")
	}

	// Cancellation does not affect the registry.
	value, ok := apireg.ResolveAPI(child, refA)
	require.True(t, ok)
	assert.Equal(t, 1, value)
}

func TestScope_CloseDoesNotCancelParent(t *testing.T) {
	t.Parallel()

	parent := apireg.NewScope(context.Background())
	defer parent.Close()

	child, err := parent.WithAPI(testutil.Const(refA, 1))
	require.NoError(t, err)
	child.Close()

	assert.ErrorIs(t, child.Err(), context.Canceled)
	assert.NoError(t, parent.Err())
}

func TestScope_WithTimeout(t *testing.T) {
	t.Parallel()

	parent, err := apireg.NewScope(context.Background()).WithAPI(testutil.Const(refA, 1))
	require.NoError(t, err)
	defer parent.Close()

	child := parent.WithTimeout(10 * time.Millisecond)
	defer child.Close()

	// Same resolver, tighter signal.
	assert.Same(t, parent.Resolver(), child.Resolver())

	select {
	case <-child.Done():
	case <-time.After(time.Second):
		t.Fatal("timeout scope never expired")
	}

	assert.ErrorIs(t, child.Err(), context.DeadlineExceeded)
	assert.NoError(t, parent.Err())

	// Expired scopes still resolve: the registry is orthogonal to the
	// cancellation signal.
	value, ok := apireg.ResolveAPI(child, refA)
	require.True(t, ok)
	assert.Equal(t, 1, value)
}

func TestScope_WithDeadline(t *testing.T) {
	t.Parallel()

	parent := apireg.NewScope(context.Background())
	defer parent.Close()

	child := parent.WithDeadline(time.Now().Add(-time.Second))
	defer child.Close()

	assert.ErrorIs(t, child.Err(), context.DeadlineExceeded)

	deadline, ok := child.Context().Deadline()
	require.True(t, ok)
	assert.True(t, deadline.Before(time.Now()))
}

func TestScope_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	scope := apireg.NewScope(context.Background())
	scope.Close()
	scope.Close()

	assert.ErrorIs(t, scope.Err(), context.Canceled)
}

func TestScope_DerivationChain(t *testing.T) {
	t.Parallel()

	root := apireg.NewScope(context.Background())
	defer root.Close()

	s1, err := root.WithAPI(testutil.Const(refA, 1))
	require.NoError(t, err)

	s2, err := s1.WithAPI(testutil.Sum(refB, 1, refA))
	require.NoError(t, err)

	// Each scope sees exactly the entries registered up to its derivation.
	assert.Equal(t, 0, root.Resolver().Len())
	assert.Equal(t, []string{"a"}, s1.Resolver().IDs())
	assert.Equal(t, []string{"a", "b"}, s2.Resolver().IDs())

	assert.True(t, root.IsRoot())
	assert.Same(t, root, s1.Parent())
	assert.Same(t, s1, s2.Parent())
}
