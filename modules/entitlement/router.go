package entitlement

import (
	"github.com/go-chi/chi/v5"
)

// Router returns a chi router with the base access gate applied to every
// route registered through fn. Stricter gates stack per route group.
//
// Example:
//
//	r.Mount("/app", entitlement.Router(m, func(r chi.Router) {
//	    r.Get("/patients", listPatients)
//	    r.Group(func(r chi.Router) {
//	        r.Use(m.RequirePlan(plan.TierProfessional))
//	        r.Get("/reports", financialReports)
//	    })
//	    r.Group(func(r chi.Router) {
//	        r.Use(m.RequireFeature(plan.FeatureAPIAccess))
//	        r.Mount("/api", apiHandler)
//	    })
//	}))
func Router(m *Middleware, fn func(chi.Router)) chi.Router {
	r := chi.NewRouter()
	r.Use(m.RequireAccess)
	if fn != nil {
		fn(r)
	}
	return r
}
