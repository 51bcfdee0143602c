// Package correlationid carries a request correlation id through a context.
package correlationid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the header (HTTP or message) carrying the correlation id.
const Header = "x-correlation-id"

type ctxKey struct{}

// NewContext returns a copy of ctx carrying id.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the correlation id stored in ctx, if any.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// New generates a fresh correlation id.
func New() string {
	return uuid.NewString()
}

// Ensure returns ctx unchanged when it already has a correlation id,
// otherwise a context with a freshly generated one.
func Ensure(ctx context.Context) (context.Context, string) {
	if id, ok := FromContext(ctx); ok {
		return ctx, id
	}
	id := New()
	return NewContext(ctx, id), id
}
