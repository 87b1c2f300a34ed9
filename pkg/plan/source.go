package plan

import (
	"context"
	"maps"
	"slices"
)

// Source defines how the plan catalog is loaded at process start.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

type inMemSource struct {
	entitlements map[Tier]Entitlements
	features     map[Feature][]Tier
}

// NewInMemSource returns a Source backed by a deep copy of the given tables.
// Deep copying prevents external modifications from affecting the source's state.
func NewInMemSource(entitlements map[Tier]Entitlements, features map[Feature][]Tier) Source {
	entCopy := make(map[Tier]Entitlements, len(entitlements))
	for tier, ent := range entitlements {
		ent.Features = slices.Clone(ent.Features)
		entCopy[tier] = ent
	}

	featCopy := make(map[Feature][]Tier, len(features))
	for feature, tiers := range features {
		featCopy[feature] = slices.Clone(tiers)
	}

	return &inMemSource{
		entitlements: entCopy,
		features:     featCopy,
	}
}

func (s *inMemSource) Load(ctx context.Context) (*Catalog, error) {
	return NewCatalog(maps.Clone(s.entitlements), maps.Clone(s.features))
}
