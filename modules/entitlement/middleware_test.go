package entitlement_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gate "github.com/clinicore/entitlement/modules/entitlement"
	"github.com/clinicore/entitlement/pkg/entitlement"
	"github.com/clinicore/entitlement/pkg/plan"
	"github.com/clinicore/entitlement/pkg/subscription"
	"github.com/clinicore/entitlement/pkg/tenant"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

const tenantHeader = "X-Tenant-ID"

func testCatalogSource() plan.Source {
	return plan.NewInMemSource(
		map[plan.Tier]plan.Entitlements{
			plan.TierFree:         {PatientLimit: 20, UserLimit: 1},
			plan.TierBasic:        {PatientLimit: 100, UserLimit: 3},
			plan.TierProfessional: {PatientLimit: 500, UserLimit: 10},
			plan.TierEnterprise:   {PatientLimit: plan.Unlimited, UserLimit: plan.Unlimited},
		},
		map[plan.Feature][]plan.Tier{
			plan.FeatureFinancialReports: {plan.TierProfessional, plan.TierEnterprise},
			plan.FeatureWhiteLabel:       {plan.TierEnterprise},
		},
	)
}

func newTestMiddleware(t *testing.T, store subscription.Store) *gate.Middleware {
	t.Helper()

	svc, err := entitlement.NewService(context.Background(), testCatalogSource(), store,
		entitlement.WithClock(func() time.Time { return testNow }),
		entitlement.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)

	return gate.NewMiddleware(svc, tenant.NewHeaderResolver(tenantHeader))
}

func seedTenant(t *testing.T, store subscription.Store, sub *subscription.Subscription) uuid.UUID {
	t.Helper()

	sub.ID = uuid.New()
	sub.TenantID = uuid.New()
	require.NoError(t, store.Save(context.Background(), sub))
	return sub.TenantID
}

func doRequest(handler http.Handler, tenantID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	if tenantID != "" {
		req.Header.Set(tenantHeader, tenantID)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeVerdict(t *testing.T, rec *httptest.ResponseRecorder) entitlement.Verdict {
	t.Helper()

	var v entitlement.Verdict
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestMiddleware_RequireAccess(t *testing.T) {
	t.Parallel()

	t.Run("allowed request reaches handler with subscription in context", func(t *testing.T) {
		t.Parallel()
		store := subscription.NewMemStore()
		tenantID := seedTenant(t, store, &subscription.Subscription{
			Tier:   plan.TierBasic,
			Status: subscription.StatusActive,
		})
		m := newTestMiddleware(t, store)

		var fromCtx *subscription.Subscription
		handler := m.RequireAccess(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fromCtx, _ = subscription.FromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		rec := doRequest(handler, tenantID.String())
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, fromCtx)
		assert.Equal(t, tenantID, fromCtx.TenantID)
	})

	t.Run("missing subscription returns 402 with verdict body", func(t *testing.T) {
		t.Parallel()
		m := newTestMiddleware(t, subscription.NewMemStore())
		handler := m.RequireAccess(rejectingHandler(t))

		rec := doRequest(handler, uuid.NewString())
		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

		v := decodeVerdict(t, rec)
		assert.False(t, v.Allowed)
		assert.Equal(t, entitlement.ReasonSubscriptionNotFound, v.Reason)
	})

	t.Run("grace period returns 402", func(t *testing.T) {
		t.Parallel()
		store := subscription.NewMemStore()
		end := testNow.Add(-10 * 24 * time.Hour)
		tenantID := seedTenant(t, store, &subscription.Subscription{
			Tier:    plan.TierBasic,
			Status:  subscription.StatusActive,
			EndDate: &end,
		})
		m := newTestMiddleware(t, store)
		handler := m.RequireAccess(rejectingHandler(t))

		rec := doRequest(handler, tenantID.String())
		assert.Equal(t, http.StatusPaymentRequired, rec.Code)

		v := decodeVerdict(t, rec)
		assert.Equal(t, entitlement.ReasonExpiredGracePeriod, v.Reason)
		assert.Equal(t, 10, v.DaysElapsed)
		assert.Equal(t, 20, v.DaysRemaining)
	})

	t.Run("past grace returns 410", func(t *testing.T) {
		t.Parallel()
		store := subscription.NewMemStore()
		end := testNow.Add(-40 * 24 * time.Hour)
		tenantID := seedTenant(t, store, &subscription.Subscription{
			Tier:    plan.TierProfessional,
			Status:  subscription.StatusPastDue,
			EndDate: &end,
		})
		m := newTestMiddleware(t, store)
		handler := m.RequireAccess(rejectingHandler(t))

		rec := doRequest(handler, tenantID.String())
		assert.Equal(t, http.StatusGone, rec.Code)
		assert.Equal(t, entitlement.ReasonExpiredDeleted, decodeVerdict(t, rec).Reason)
	})

	t.Run("unresolvable tenant returns 401", func(t *testing.T) {
		t.Parallel()
		m := newTestMiddleware(t, subscription.NewMemStore())
		handler := m.RequireAccess(rejectingHandler(t))

		rec := doRequest(handler, "not-a-uuid")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("storage failure fails closed with 503", func(t *testing.T) {
		t.Parallel()
		m := newTestMiddleware(t, failingStore{})
		handler := m.RequireAccess(rejectingHandler(t))

		rec := doRequest(handler, uuid.NewString())
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestMiddleware_RequirePlan(t *testing.T) {
	t.Parallel()

	t.Run("insufficient tier returns 403 with required plan", func(t *testing.T) {
		t.Parallel()
		store := subscription.NewMemStore()
		tenantID := seedTenant(t, store, &subscription.Subscription{
			Tier:   plan.TierBasic,
			Status: subscription.StatusActive,
		})
		m := newTestMiddleware(t, store)
		handler := m.RequirePlan(plan.TierProfessional)(rejectingHandler(t))

		rec := doRequest(handler, tenantID.String())
		assert.Equal(t, http.StatusForbidden, rec.Code)

		v := decodeVerdict(t, rec)
		assert.Equal(t, entitlement.ReasonInsufficientPlan, v.Reason)
		assert.Equal(t, plan.TierProfessional, v.RequiredTier)
		assert.Equal(t, plan.TierBasic, v.CurrentTier)
	})

	t.Run("sufficient tier passes", func(t *testing.T) {
		t.Parallel()
		store := subscription.NewMemStore()
		tenantID := seedTenant(t, store, &subscription.Subscription{
			Tier:   plan.TierEnterprise,
			Status: subscription.StatusActive,
		})
		m := newTestMiddleware(t, store)
		handler := m.RequirePlan(plan.TierProfessional)(okHandler())

		rec := doRequest(handler, tenantID.String())
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestMiddleware_RequireFeature(t *testing.T) {
	t.Parallel()

	t.Run("locked feature returns 403", func(t *testing.T) {
		t.Parallel()
		store := subscription.NewMemStore()
		tenantID := seedTenant(t, store, &subscription.Subscription{
			Tier:   plan.TierBasic,
			Status: subscription.StatusActive,
		})
		m := newTestMiddleware(t, store)
		handler := m.RequireFeature(plan.FeatureFinancialReports)(rejectingHandler(t))

		rec := doRequest(handler, tenantID.String())
		assert.Equal(t, http.StatusForbidden, rec.Code)

		v := decodeVerdict(t, rec)
		assert.Equal(t, entitlement.ReasonFeatureNotAvailable, v.Reason)
		assert.Equal(t, plan.FeatureFinancialReports, v.Feature)
		assert.Equal(t, plan.TierProfessional, v.RequiredTier)
	})

	t.Run("unlocked feature passes", func(t *testing.T) {
		t.Parallel()
		store := subscription.NewMemStore()
		tenantID := seedTenant(t, store, &subscription.Subscription{
			Tier:   plan.TierProfessional,
			Status: subscription.StatusActive,
		})
		m := newTestMiddleware(t, store)
		handler := m.RequireFeature(plan.FeatureFinancialReports)(okHandler())

		rec := doRequest(handler, tenantID.String())
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouter(t *testing.T) {
	t.Parallel()

	store := subscription.NewMemStore()
	tenantID := seedTenant(t, store, &subscription.Subscription{
		Tier:   plan.TierBasic,
		Status: subscription.StatusActive,
	})
	m := newTestMiddleware(t, store)

	r := gate.Router(m, func(r chi.Router) {
		r.Get("/patients", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.Group(func(r chi.Router) {
			r.Use(m.RequirePlan(plan.TierProfessional))
			r.Get("/reports", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		})
	})

	t.Run("base gate applies to plain routes", func(t *testing.T) {
		t.Parallel()
		rec := doRequest(r, tenantID.String())
		assert.Equal(t, http.StatusOK, rec.Code)

		denied := doRequest(r, uuid.NewString())
		assert.Equal(t, http.StatusPaymentRequired, denied.Code)
	})

	t.Run("stacked plan gate applies inside the group", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/reports", nil)
		req.Header.Set(tenantHeader, tenantID.String())
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// rejectingHandler fails the test if the gate lets the request through.
func rejectingHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler must not be reached")
	})
}

// failingStore simulates an unreachable database.
type failingStore struct{}

func (failingStore) Get(context.Context, uuid.UUID) (*subscription.Subscription, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) Save(context.Context, *subscription.Subscription) error {
	return errors.New("connection refused")
}
