// Package tenant resolves which clinic an HTTP request belongs to.
//
// Resolvers extract the tenant ID from a header, the request subdomain, or
// the request context, and can be chained so the first successful strategy
// wins. The middleware resolves once per request and stores the ID in the
// context for the entitlement gates.
//
//	res := tenant.NewChainResolver(
//	    tenant.NewHeaderResolver("X-Tenant-ID"),
//	    tenant.NewSubdomainResolver(".clinicore.app", lookupClinicSlug),
//	)
//	r.Use(tenant.Middleware(res))
package tenant
