// Package transport provides an http.RoundTripper that injects the
// current auth token into outgoing requests. The token is read from a
// settable slot on every request, so a long-lived client observes auth
// state changes (login, refresh, logout) without being rebuilt.
package transport

import "net/http"

const (
	defaultHeader = "Authorization"
	defaultScheme = "Bearer"
)

// Transport decorates a base http.RoundTripper with auth header
// injection. The zero value is not usable; create one with New.
type Transport struct {
	base   http.RoundTripper
	slot   *TokenSlot
	header string
	scheme string
}

// Option configures a Transport.
type Option func(*Transport)

// WithBase sets the underlying round tripper. Defaults to
// http.DefaultTransport.
func WithBase(base http.RoundTripper) Option {
	return func(t *Transport) { t.base = base }
}

// WithHeader overrides the header name the token is injected into.
// Defaults to "Authorization".
func WithHeader(name string) Option {
	return func(t *Transport) { t.header = name }
}

// WithScheme overrides the credential scheme prefix. Defaults to
// "Bearer"; set the empty string to inject the bare token.
func WithScheme(scheme string) Option {
	return func(t *Transport) { t.scheme = scheme }
}

// New creates a Transport reading tokens from slot.
func New(slot *TokenSlot, opts ...Option) *Transport {
	t := &Transport{
		base:   http.DefaultTransport,
		slot:   slot,
		header: defaultHeader,
		scheme: defaultScheme,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// RoundTrip injects the current token, if one is available, and delegates
// to the base transport. The slot is consulted per request, never cached.
// A request that already carries the header is passed through untouched.
// If the slot is empty or its source cannot yield a token (for example an
// expired JWTSource), the request goes out without credentials; whether
// that is an error is the server's call, not the transport's.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, ok := t.currentToken()
	if !ok || req.Header.Get(t.header) != "" {
		return t.base.RoundTrip(req)
	}

	// Per the RoundTripper contract the request must not be mutated.
	clone := req.Clone(req.Context())

	value := token
	if t.scheme != "" {
		value = t.scheme + " " + token
	}
	clone.Header.Set(t.header, value)

	return t.base.RoundTrip(clone)
}

func (t *Transport) currentToken() (string, bool) {
	if t.slot == nil {
		return "", false
	}

	src, ok := t.slot.Get()
	if !ok {
		return "", false
	}

	token, err := src.Token()
	if err != nil || token == "" {
		return "", false
	}

	return token, true
}

// Client returns an *http.Client using this transport.
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}
