package transport

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("no token available")
	ErrTokenExpired = errors.New("token has expired")
)

// TokenSource yields the current auth token. Implementations are read
// fresh on every request, so a source backed by a refreshing session is
// picked up without reconfiguring the transport.
type TokenSource interface {
	Token() (string, error)
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func() (string, error)

func (f TokenFunc) Token() (string, error) { return f() }

// StaticToken is a fixed token string.
type StaticToken string

func (t StaticToken) Token() (string, error) {
	if t == "" {
		return "", ErrNoToken
	}
	return string(t), nil
}

// JWTSource is a TokenSource holding a JWT. It parses the token's claims
// once, without verifying the signature (the injecting client is not the
// verifier), and refuses to yield the token after its expiry so requests
// fail locally instead of bouncing off the server with a stale credential.
type JWTSource struct {
	raw     string
	expires *time.Time

	// now is replaceable in tests.
	now func() time.Time
}

// NewJWTSource parses raw as a JWT and returns a source that tracks its
// expiry. Tokens without an exp claim never expire locally.
func NewJWTSource(raw string) (*JWTSource, error) {
	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	src := &JWTSource{raw: raw, now: time.Now}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("reading exp claim: %w", err)
	}
	if exp != nil {
		src.expires = &exp.Time
	}

	return src, nil
}

func (s *JWTSource) Token() (string, error) {
	if s.expires != nil && !s.now().Before(*s.expires) {
		return "", ErrTokenExpired
	}
	return s.raw, nil
}

// ExpiresAt returns the token's expiry, or false if it has no exp claim.
func (s *JWTSource) ExpiresAt() (time.Time, bool) {
	if s.expires == nil {
		return time.Time{}, false
	}
	return *s.expires, true
}

// TokenSlot is a settable slot for the current TokenSource. A long-lived
// Transport holds one slot and reads it on every request, rather than
// capturing the auth state that happened to be current at construction
// time. Set, Get and Clear are safe for concurrent use.
type TokenSlot struct {
	mu  sync.RWMutex
	src TokenSource
}

// Set installs src as the current token source.
func (s *TokenSlot) Set(src TokenSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src = src
}

// Get returns the current token source, or false if none is set.
func (s *TokenSlot) Get() (TokenSource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.src, s.src != nil
}

// Clear removes the current token source. Subsequent requests go out
// without credentials until Set is called again.
func (s *TokenSlot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src = nil
}
