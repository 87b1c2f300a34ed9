package tenant

import (
	"net/http"

	"github.com/google/uuid"
)

// Middleware resolves the tenant for each request and stores the ID in the
// request context. Requests without a resolvable tenant get 401; downstream
// gates then read the ID via NewContextResolver or FromContext.
func Middleware(res Resolver) func(http.Handler) http.Handler {
	if res == nil {
		panic("tenant: Resolver is required")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := res.Resolve(r)
			if err != nil || id == uuid.Nil {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(SetToContext(r.Context(), id)))
		})
	}
}
