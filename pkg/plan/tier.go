package plan

// Tier represents a subscription plan tier.
// Tiers form a total order: free < basic < professional < enterprise.
type Tier string

const (
	TierFree         Tier = "free"
	TierBasic        Tier = "basic"
	TierProfessional Tier = "professional"
	TierEnterprise   Tier = "enterprise"
)

// tierOrder defines the hierarchy used by all tier comparisons.
// Gate checks compare positions in this slice, never raw strings.
var tierOrder = []Tier{TierFree, TierBasic, TierProfessional, TierEnterprise}

// Tiers returns all known tiers in ascending order.
func Tiers() []Tier {
	out := make([]Tier, len(tierOrder))
	copy(out, tierOrder)
	return out
}

// Index returns the position of the tier in the hierarchy, or -1 for unknown tiers.
func (t Tier) Index() int {
	for i, tier := range tierOrder {
		if tier == t {
			return i
		}
	}
	return -1
}

// Valid reports whether the tier is one of the four known tiers.
func (t Tier) Valid() bool {
	return t.Index() >= 0
}

// Paid reports whether the tier is a paid tier (anything above free).
func (t Tier) Paid() bool {
	return t.Index() > TierFree.Index()
}

// AtLeast reports whether the tier meets or exceeds min in the hierarchy.
// Unknown tiers never satisfy any minimum, including themselves.
func (t Tier) AtLeast(min Tier) bool {
	idx := t.Index()
	if idx < 0 {
		return false
	}
	minIdx := min.Index()
	if minIdx < 0 {
		return false
	}
	return idx >= minIdx
}
