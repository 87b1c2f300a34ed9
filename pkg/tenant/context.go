package tenant

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxKey struct{}

// SetToContext stores the tenant ID in the context.
func SetToContext(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext retrieves the tenant ID from the context, if present.
func FromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// ContextResolver reads the tenant ID previously stored in the request
// context, typically by an upstream auth middleware.
type ContextResolver struct{}

func NewContextResolver() *ContextResolver {
	return &ContextResolver{}
}

func (ContextResolver) Resolve(r *http.Request) (uuid.UUID, error) {
	id, ok := FromContext(r.Context())
	if !ok {
		return uuid.Nil, ErrNoTenant
	}
	return id, nil
}
