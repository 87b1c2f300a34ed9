package entitlement

import (
	"github.com/clinicore/entitlement/pkg/plan"
)

// DefaultCatalogSource returns the built-in clinic plan catalog.
// Deployments can override it with a YAML file via Config.CatalogPath.
func DefaultCatalogSource() plan.Source {
	return plan.NewInMemSource(
		map[plan.Tier]plan.Entitlements{
			plan.TierFree: {
				PatientLimit: 20,
				UserLimit:    1,
				Storage:      "500 MB",
				Features: []plan.Feature{
					plan.FeatureOnlineBooking,
				},
			},
			plan.TierBasic: {
				PatientLimit: 100,
				UserLimit:    3,
				Storage:      "5 GB",
				Features: []plan.Feature{
					plan.FeatureOnlineBooking,
					plan.FeatureWhatsAppReminder,
					plan.FeatureSMSReminder,
					plan.FeatureDataExport,
				},
			},
			plan.TierProfessional: {
				PatientLimit: 500,
				UserLimit:    10,
				Storage:      "20 GB",
				Features: []plan.Feature{
					plan.FeatureOnlineBooking,
					plan.FeatureWhatsAppReminder,
					plan.FeatureSMSReminder,
					plan.FeatureDataExport,
					plan.FeatureFinancialReports,
					plan.FeatureAPIAccess,
					plan.FeaturePrioritySupport,
				},
			},
			plan.TierEnterprise: {
				PatientLimit: plan.Unlimited,
				UserLimit:    plan.Unlimited,
				Storage:      "100 GB",
				Features: []plan.Feature{
					plan.FeatureOnlineBooking,
					plan.FeatureWhatsAppReminder,
					plan.FeatureSMSReminder,
					plan.FeatureDataExport,
					plan.FeatureFinancialReports,
					plan.FeatureAPIAccess,
					plan.FeaturePrioritySupport,
					plan.FeatureMultiLocation,
					plan.FeatureWhiteLabel,
					plan.FeatureAuditLog,
				},
			},
		},
		map[plan.Feature][]plan.Tier{
			plan.FeatureOnlineBooking:    {plan.TierFree, plan.TierBasic, plan.TierProfessional, plan.TierEnterprise},
			plan.FeatureWhatsAppReminder: {plan.TierBasic, plan.TierProfessional, plan.TierEnterprise},
			plan.FeatureSMSReminder:      {plan.TierBasic, plan.TierProfessional, plan.TierEnterprise},
			plan.FeatureDataExport:       {plan.TierBasic, plan.TierProfessional, plan.TierEnterprise},
			plan.FeatureFinancialReports: {plan.TierProfessional, plan.TierEnterprise},
			plan.FeatureAPIAccess:        {plan.TierProfessional, plan.TierEnterprise},
			plan.FeaturePrioritySupport:  {plan.TierProfessional, plan.TierEnterprise},
			plan.FeatureMultiLocation:    {plan.TierEnterprise},
			plan.FeatureWhiteLabel:       {plan.TierEnterprise},
			plan.FeatureAuditLog:         {plan.TierEnterprise},
		},
	)
}
