package entitlement

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/clinicore/entitlement/pkg/entitlement"
	"github.com/clinicore/entitlement/pkg/plan"
	"github.com/clinicore/entitlement/pkg/subscription"
	"github.com/clinicore/entitlement/pkg/tenant"
)

// Middleware translates engine verdicts into HTTP responses. The engine
// itself is transport-agnostic; this is the one place reason codes become
// status codes.
type Middleware struct {
	svc      entitlement.Service
	resolver tenant.Resolver
}

// NewMiddleware creates gate middleware around the given engine.
// Panics if svc or resolver is nil to fail fast during initialization.
func NewMiddleware(svc entitlement.Service, resolver tenant.Resolver) *Middleware {
	if svc == nil {
		panic("entitlement: Service is required")
	}
	if resolver == nil {
		panic("entitlement: tenant.Resolver is required")
	}
	return &Middleware{svc: svc, resolver: resolver}
}

// RequireAccess guards a route with the base access gate.
func (m *Middleware) RequireAccess(next http.Handler) http.Handler {
	return m.guard(next, func(r *http.Request, tenantID uuid.UUID) (entitlement.Verdict, error) {
		return m.svc.CheckAccess(r.Context(), tenantID)
	})
}

// RequirePlan guards a route with a minimum plan tier.
func (m *Middleware) RequirePlan(min plan.Tier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return m.guard(next, func(r *http.Request, tenantID uuid.UUID) (entitlement.Verdict, error) {
			return m.svc.CheckPlan(r.Context(), tenantID, min)
		})
	}
}

// RequireFeature guards a route with a named feature.
func (m *Middleware) RequireFeature(feature plan.Feature) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return m.guard(next, func(r *http.Request, tenantID uuid.UUID) (entitlement.Verdict, error) {
			return m.svc.CheckFeature(r.Context(), tenantID, feature)
		})
	}
}

func (m *Middleware) guard(next http.Handler, check func(*http.Request, uuid.UUID) (entitlement.Verdict, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := m.resolver.Resolve(r)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		v, err := check(r, tenantID)
		if err != nil {
			// Unable to authorize: fail closed.
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}

		if !v.Allowed {
			writeVerdict(w, v)
			return
		}

		// Attach the snapshot so handlers don't re-read the subscription.
		ctx := subscription.SetToContext(r.Context(), v.Subscription)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusFor maps stable reason codes onto HTTP status codes.
func statusFor(reason entitlement.Reason) int {
	switch reason {
	case entitlement.ReasonExpiredDeleted:
		return http.StatusGone
	case entitlement.ReasonInsufficientPlan, entitlement.ReasonFeatureNotAvailable:
		return http.StatusForbidden
	default:
		// Missing, expired, inactive, in grace: the tenant needs to pay.
		return http.StatusPaymentRequired
	}
}

func writeVerdict(w http.ResponseWriter, v entitlement.Verdict) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusFor(v.Reason))
	_ = json.NewEncoder(w).Encode(v)
}
