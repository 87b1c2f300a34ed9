package entitlement

// Resource represents a countable tenant resource gated by plan limits.
type Resource string

const (
	ResourcePatients Resource = "patients"
	ResourceUsers    Resource = "users"
)

// Reason is a stable denial reason code. These values are the contract a
// transport layer maps onto status codes; they never change spelling.
type Reason string

const (
	ReasonSubscriptionNotFound Reason = "SUBSCRIPTION_NOT_FOUND"
	ReasonTrialExpired         Reason = "TRIAL_EXPIRED"
	ReasonSubscriptionInactive Reason = "SUBSCRIPTION_INACTIVE"
	ReasonExpiredGracePeriod   Reason = "SUBSCRIPTION_EXPIRED_GRACE_PERIOD"
	ReasonExpiredDeleted       Reason = "SUBSCRIPTION_EXPIRED_DELETED"
	ReasonInsufficientPlan     Reason = "INSUFFICIENT_PLAN"
	ReasonFeatureNotAvailable  Reason = "FEATURE_NOT_AVAILABLE"
)

// LimitResult is the advisory outcome of a usage limit check.
type LimitResult struct {
	Allowed bool  `json:"allowed"`
	Current int64 `json:"current"`
	Limit   int64 `json:"limit"`
}
