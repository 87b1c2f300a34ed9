package plan

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML shape of a plan catalog:
//
//	tiers:
//	  free:
//	    patient_limit: 20
//	    user_limit: 1
//	    storage: "500 MB"
//	    features: [online_booking]
//	features:
//	  white_label: [enterprise]
type catalogFile struct {
	Tiers    map[Tier]Entitlements `yaml:"tiers"`
	Features map[Feature][]Tier    `yaml:"features"`
}

type fileSource struct {
	path string
}

// NewFileSource returns a Source that reads the catalog from a YAML file.
// The file is read on every Load call; callers load once at startup.
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

func (s *fileSource) Load(ctx context.Context) (*Catalog, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, fmt.Errorf("parse %s: %w", s.path, err))
	}

	return NewCatalog(file.Tiers, file.Features)
}
