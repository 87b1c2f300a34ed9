package entitlement

import (
	"encoding/json"
	"net/http"

	"github.com/clinicore/entitlement/pkg/entitlement"
	"github.com/clinicore/entitlement/pkg/plan"
	"github.com/clinicore/entitlement/pkg/subscription"
	"github.com/clinicore/entitlement/pkg/tenant"
)

type usageEntry struct {
	Used    int64 `json:"used"`
	Limit   int64 `json:"limit"`
	Percent int   `json:"percent"`
}

type summaryResponse struct {
	Access entitlement.Verdict                 `json:"access"`
	Plan   plan.Tier                           `json:"plan,omitempty"`
	Status subscription.Status                 `json:"status,omitempty"`
	Usage  map[entitlement.Resource]usageEntry `json:"usage,omitempty"`
}

// SummaryHandler reports the tenant's access verdict, current plan, and
// usage against plan limits. Billing pages poll it, so it answers 200 for
// denied tenants as well; only an unresolvable tenant is an error.
func SummaryHandler(svc entitlement.Service, resolver tenant.Resolver) http.HandlerFunc {
	if svc == nil {
		panic("entitlement: Service is required")
	}
	if resolver == nil {
		panic("entitlement: tenant.Resolver is required")
	}

	resources := []entitlement.Resource{
		entitlement.ResourcePatients,
		entitlement.ResourceUsers,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := resolver.Resolve(r)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		v, err := svc.CheckAccess(r.Context(), tenantID)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}

		resp := summaryResponse{Access: v}
		if v.Subscription != nil {
			resp.Plan = v.Subscription.Tier
			resp.Status = v.Subscription.Status
			resp.Usage = make(map[entitlement.Resource]usageEntry, len(resources))
			for _, res := range resources {
				used, limit, err := svc.Usage(r.Context(), tenantID, res)
				if err != nil {
					continue
				}
				resp.Usage[res] = usageEntry{
					Used:    used,
					Limit:   limit,
					Percent: svc.UsagePercent(r.Context(), tenantID, res),
				}
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
