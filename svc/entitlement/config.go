package entitlement

import "time"

type Config struct {
	// CatalogPath points at a YAML plan catalog. Empty means the built-in
	// clinic catalog from DefaultCatalogSource.
	CatalogPath string `env:"ENTITLEMENT_CATALOG_PATH"`

	// GraceWindowDays is the paid-plan grace window length.
	GraceWindowDays int `env:"ENTITLEMENT_GRACE_WINDOW_DAYS" envDefault:"30"`

	// CounterCacheTTL bounds staleness of cached usage counts.
	CounterCacheTTL time.Duration `env:"ENTITLEMENT_COUNTER_CACHE_TTL" envDefault:"30s"`
}
