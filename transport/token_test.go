package transport

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedJWT(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-key"))
	require.NoError(t, err)
	return raw
}

func TestStaticToken(t *testing.T) {
	t.Parallel()

	token, err := StaticToken("abc").Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = StaticToken("").Token()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestTokenFunc(t *testing.T) {
	t.Parallel()

	src := TokenFunc(func() (string, error) { return "fn-token", nil })

	token, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "fn-token", token)
}

func TestJWTSource_ValidToken(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour)
	raw := signedJWT(t, jwt.MapClaims{"sub": "user", "exp": exp.Unix()})

	src, err := NewJWTSource(raw)
	require.NoError(t, err)

	token, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, raw, token)

	got, ok := src.ExpiresAt()
	require.True(t, ok)
	assert.WithinDuration(t, exp, got, time.Second)
}

func TestJWTSource_ExpiredToken(t *testing.T) {
	t.Parallel()

	raw := signedJWT(t, jwt.MapClaims{
		"sub": "user",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	src, err := NewJWTSource(raw)
	require.NoError(t, err)

	_, err = src.Token()
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTSource_ExpiresWhileHeld(t *testing.T) {
	t.Parallel()

	raw := signedJWT(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})

	src, err := NewJWTSource(raw)
	require.NoError(t, err)

	_, err = src.Token()
	require.NoError(t, err)

	// Expiry is checked on every call, not once at construction.
	src.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = src.Token()
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTSource_NoExpClaim(t *testing.T) {
	t.Parallel()

	raw := signedJWT(t, jwt.MapClaims{"sub": "user"})

	src, err := NewJWTSource(raw)
	require.NoError(t, err)

	_, ok := src.ExpiresAt()
	assert.False(t, ok)

	token, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, raw, token)
}

func TestJWTSource_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewJWTSource("not-a-jwt")
	assert.Error(t, err)
}

func TestTokenSlot(t *testing.T) {
	t.Parallel()

	var slot TokenSlot

	_, ok := slot.Get()
	assert.False(t, ok)

	slot.Set(StaticToken("abc"))
	src, ok := slot.Get()
	require.True(t, ok)
	token, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	// Set replaces, Clear empties.
	slot.Set(StaticToken("def"))
	src, _ = slot.Get()
	token, _ = src.Token()
	assert.Equal(t, "def", token)

	slot.Clear()
	_, ok = slot.Get()
	assert.False(t, ok)
}
