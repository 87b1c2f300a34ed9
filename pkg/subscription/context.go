package subscription

import "context"

type ctxKey struct{}

// SetToContext stores a subscription snapshot in the context for downstream
// handlers. Callers must not cache the snapshot across requests.
func SetToContext(ctx context.Context, sub *Subscription) context.Context {
	return context.WithValue(ctx, ctxKey{}, sub)
}

// FromContext retrieves the subscription snapshot from the context, if present.
func FromContext(ctx context.Context) (*Subscription, bool) {
	sub, ok := ctx.Value(ctxKey{}).(*Subscription)
	return sub, ok
}
