package plan

import (
	"errors"
	"fmt"
	"slices"
)

// Feature is a named capability unlocked by one or more plan tiers.
type Feature string

// Features of the clinic product that are gated by tier.
const (
	FeatureOnlineBooking    Feature = "online_booking"
	FeatureWhatsAppReminder Feature = "whatsapp_reminders"
	FeatureSMSReminder      Feature = "sms_reminders"
	FeatureFinancialReports Feature = "financial_reports"
	FeatureDataExport       Feature = "data_export"
	FeatureAPIAccess        Feature = "api_access"
	FeatureMultiLocation    Feature = "multi_location"
	FeatureWhiteLabel       Feature = "white_label"
	FeaturePrioritySupport  Feature = "priority_support"
	FeatureAuditLog         Feature = "audit_log"
)

const (
	// Unlimited indicates no numeric limit for a resource (-1 chosen for SQL compatibility)
	Unlimited int64 = -1
)

// Entitlements describes the numeric limits and named features a tier unlocks.
type Entitlements struct {
	PatientLimit int64     `yaml:"patient_limit" json:"patient_limit"` // -1 means unlimited
	UserLimit    int64     `yaml:"user_limit" json:"user_limit"`       // -1 means unlimited
	Storage      string    `yaml:"storage" json:"storage"`             // display label, e.g. "5 GB"
	Features     []Feature `yaml:"features" json:"features"`
}

// Catalog maps every tier to its entitlements and every gated feature to the
// set of tiers that unlock it. Immutable after construction; safe for
// unsynchronized concurrent reads.
type Catalog struct {
	entitlements map[Tier]Entitlements
	features     map[Feature][]Tier
}

// NewCatalog validates and builds a Catalog.
// Every known tier must have an entitlements entry, limits must be -1 or
// greater, and feature allow-lists may only reference known tiers.
// Feature allow-lists are normalized to ascending tier order so the first
// element is always the minimum unlocking tier.
func NewCatalog(entitlements map[Tier]Entitlements, features map[Feature][]Tier) (*Catalog, error) {
	for _, tier := range tierOrder {
		ent, ok := entitlements[tier]
		if !ok {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("missing entitlements for tier %q", tier))
		}
		if ent.PatientLimit < Unlimited {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("tier %q has invalid patient limit %d", tier, ent.PatientLimit))
		}
		if ent.UserLimit < Unlimited {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("tier %q has invalid user limit %d", tier, ent.UserLimit))
		}
	}
	for tier := range entitlements {
		if !tier.Valid() {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("unknown tier %q in entitlements", tier))
		}
	}

	featuresCopy := make(map[Feature][]Tier, len(features))
	for feature, tiers := range features {
		if len(tiers) == 0 {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("feature %q has an empty tier list", feature))
		}
		for _, tier := range tiers {
			if !tier.Valid() {
				return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("feature %q references unknown tier %q", feature, tier))
			}
		}
		sorted := slices.Clone(tiers)
		slices.SortFunc(sorted, func(a, b Tier) int { return a.Index() - b.Index() })
		sorted = slices.Compact(sorted)
		featuresCopy[feature] = sorted
	}

	entCopy := make(map[Tier]Entitlements, len(entitlements))
	for tier, ent := range entitlements {
		ent.Features = slices.Clone(ent.Features)
		entCopy[tier] = ent
	}

	return &Catalog{
		entitlements: entCopy,
		features:     featuresCopy,
	}, nil
}

// Entitlements returns the entitlements for a tier.
// The second return value is false for unknown tiers.
func (c *Catalog) Entitlements(t Tier) (Entitlements, bool) {
	ent, ok := c.entitlements[t]
	if !ok {
		return Entitlements{}, false
	}
	ent.Features = slices.Clone(ent.Features)
	return ent, true
}

// FeatureTiers returns the tiers that unlock a feature, in ascending tier
// order. Returns nil for unknown features.
func (c *Catalog) FeatureTiers(f Feature) []Tier {
	tiers, ok := c.features[f]
	if !ok {
		return nil
	}
	return slices.Clone(tiers)
}

// Unlocks reports whether the given tier unlocks the named feature.
// Unknown features are unlocked by no tier.
func (c *Catalog) Unlocks(t Tier, f Feature) bool {
	return slices.Contains(c.features[f], t)
}

// MinimumTierFor returns the lowest tier that unlocks the feature.
// Unknown features gate to TierEnterprise: an unmapped feature name fails
// toward the most restrictive tier, never open.
func (c *Catalog) MinimumTierFor(f Feature) Tier {
	tiers, ok := c.features[f]
	if !ok || len(tiers) == 0 {
		return TierEnterprise
	}
	return tiers[0]
}

// FeatureNames returns all gated feature names known to the catalog.
func (c *Catalog) FeatureNames() []Feature {
	names := make([]Feature, 0, len(c.features))
	for f := range c.features {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}
