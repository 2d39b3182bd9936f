package api

import (
	"context"
	"strings"
)

// RequestIDHeader carries the console's request id to the backend.
const RequestIDHeader = "X-Request-ID"

// TokenSource supplies the bearer token attached to backend requests.
type TokenSource interface {
	Token(ctx context.Context) string
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

func (t StaticToken) Token(context.Context) string { return strings.TrimSpace(string(t)) }

type tokenKey struct{}
type requestIDKey struct{}

// WithBearerToken makes requests issued with ctx carry token instead of the
// client's TokenSource. The console uses it to act on behalf of the caller.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// WithRequestID attaches a correlation id that is forwarded to the backend.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by WithRequestID.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func bearerToken(ctx context.Context, src TokenSource) string {
	if token, ok := ctx.Value(tokenKey{}).(string); ok {
		return strings.TrimSpace(token)
	}
	if src == nil {
		return ""
	}
	return src.Token(ctx)
}
