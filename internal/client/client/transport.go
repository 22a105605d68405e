package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
)

// TokenSource yields the bearer token of the current session, if any.
type TokenSource interface {
	Token() (string, bool)
}

type tokenKey struct{}

// WithToken overrides the TokenSource for requests made with ctx. It is
// used while a persisted token is being verified and no session exists yet.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey{}).(string)
	return t, ok
}

// BearerTransport attaches `Authorization: Bearer <token>` and a request id
// to every outgoing request. With no token the header is removed.
type BearerTransport struct {
	Base   http.RoundTripper
	Source TokenSource
}

func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	token, ok := tokenFromContext(r.Context())
	if !ok && t.Source != nil {
		token, ok = t.Source.Token()
	}
	if ok && token != "" {
		r.Header.Set(AuthorizationHeader, "Bearer "+token)
	} else {
		r.Header.Del(AuthorizationHeader)
	}

	if r.Header.Get(RequestIDHeader) == "" {
		r.Header.Set(RequestIDHeader, uuid.NewString())
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(r)
}
