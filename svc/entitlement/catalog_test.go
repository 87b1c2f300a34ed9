package entitlement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/entitlement/pkg/plan"
	entitlementsvc "github.com/clinicore/entitlement/svc/entitlement"
)

func TestDefaultCatalogSource(t *testing.T) {
	t.Parallel()

	catalog, err := entitlementsvc.DefaultCatalogSource().Load(context.Background())
	require.NoError(t, err)

	t.Run("every tier has entitlements", func(t *testing.T) {
		t.Parallel()
		for _, tier := range plan.Tiers() {
			_, ok := catalog.Entitlements(tier)
			assert.True(t, ok, "tier %s", tier)
		}
	})

	t.Run("limits grow with tier", func(t *testing.T) {
		t.Parallel()
		free, _ := catalog.Entitlements(plan.TierFree)
		basic, _ := catalog.Entitlements(plan.TierBasic)
		pro, _ := catalog.Entitlements(plan.TierProfessional)
		enterprise, _ := catalog.Entitlements(plan.TierEnterprise)

		assert.Equal(t, int64(20), free.PatientLimit)
		assert.Equal(t, int64(1), free.UserLimit)
		assert.Less(t, free.PatientLimit, basic.PatientLimit)
		assert.Less(t, basic.PatientLimit, pro.PatientLimit)
		assert.Equal(t, plan.Unlimited, enterprise.PatientLimit)
		assert.Equal(t, plan.Unlimited, enterprise.UserLimit)
	})

	t.Run("feature map matches per-tier feature lists", func(t *testing.T) {
		t.Parallel()
		for _, tier := range plan.Tiers() {
			ent, ok := catalog.Entitlements(tier)
			require.True(t, ok)
			for _, feature := range ent.Features {
				assert.True(t, catalog.Unlocks(tier, feature),
					"tier %s lists feature %s but the feature map does not unlock it", tier, feature)
			}
		}
	})

	t.Run("minimum tiers for flagship features", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, plan.TierFree, catalog.MinimumTierFor(plan.FeatureOnlineBooking))
		assert.Equal(t, plan.TierBasic, catalog.MinimumTierFor(plan.FeatureWhatsAppReminder))
		assert.Equal(t, plan.TierProfessional, catalog.MinimumTierFor(plan.FeatureFinancialReports))
		assert.Equal(t, plan.TierEnterprise, catalog.MinimumTierFor(plan.FeatureWhiteLabel))
	})
}
