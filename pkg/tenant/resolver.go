package tenant

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Resolver extracts the tenant ID from an inbound HTTP request.
type Resolver interface {
	// Resolve returns the tenant ID for the request.
	// Returns ErrNoTenant when the request carries no tenant identifier.
	Resolve(r *http.Request) (uuid.UUID, error)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(r *http.Request) (uuid.UUID, error)

func (f ResolverFunc) Resolve(r *http.Request) (uuid.UUID, error) {
	return f(r)
}

// HeaderResolver reads the tenant ID from an HTTP header carrying a UUID.
// Useful behind an API gateway or in service-to-service calls.
type HeaderResolver struct {
	headerName string
}

// NewHeaderResolver creates a header resolver. Defaults to "X-Tenant-ID"
// when headerName is empty.
func NewHeaderResolver(headerName string) *HeaderResolver {
	if headerName == "" {
		headerName = "X-Tenant-ID"
	}
	return &HeaderResolver{headerName: headerName}
}

func (h *HeaderResolver) Resolve(r *http.Request) (uuid.UUID, error) {
	value := r.Header.Get(h.headerName)
	if value == "" {
		return uuid.Nil, ErrNoTenant
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidTenantID, err)
	}
	return id, nil
}

// LookupFunc maps a tenant slug to its ID, typically via a clinics table.
type LookupFunc func(r *http.Request, slug string) (uuid.UUID, error)

// SubdomainResolver extracts the clinic slug from the request subdomain
// (e.g. "acme" from "acme.clinicore.app") and maps it to a tenant ID.
type SubdomainResolver struct {
	suffix string
	lookup LookupFunc
}

// NewSubdomainResolver creates a subdomain resolver. suffix is the base
// domain to strip, e.g. ".clinicore.app". Panics if lookup is nil.
func NewSubdomainResolver(suffix string, lookup LookupFunc) *SubdomainResolver {
	if lookup == nil {
		panic("tenant: LookupFunc is required")
	}
	return &SubdomainResolver{suffix: suffix, lookup: lookup}
}

func (s *SubdomainResolver) Resolve(r *http.Request) (uuid.UUID, error) {
	slug := s.slugFromHost(r.Host)
	if slug == "" {
		return uuid.Nil, ErrNoTenant
	}
	return s.lookup(r, slug)
}

func (s *SubdomainResolver) slugFromHost(host string) string {
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	if s.suffix != "" {
		if !strings.HasSuffix(host, s.suffix) {
			return ""
		}
		host = strings.TrimSuffix(host, s.suffix)
	} else {
		// Without a configured suffix only subdomain.domain.tld counts.
		parts := strings.Split(host, ".")
		if len(parts) < 3 {
			return ""
		}
		host = parts[0]
	}

	if host == "" || host == "www" || strings.Contains(host, ".") {
		return ""
	}
	return host
}

// ChainResolver tries each resolver in order and returns the first hit.
// Resolvers that report ErrNoTenant are skipped; other errors stop the chain.
type ChainResolver struct {
	resolvers []Resolver
}

func NewChainResolver(resolvers ...Resolver) *ChainResolver {
	return &ChainResolver{resolvers: resolvers}
}

func (c *ChainResolver) Resolve(r *http.Request) (uuid.UUID, error) {
	for _, res := range c.resolvers {
		id, err := res.Resolve(r)
		if errors.Is(err, ErrNoTenant) {
			continue
		}
		if err != nil {
			return uuid.Nil, err
		}
		return id, nil
	}
	return uuid.Nil, ErrNoTenant
}
