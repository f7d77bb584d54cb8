package config

import (
	_ "embed"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/cybermatters/themis/pkg/domain/model"
	"github.com/cybermatters/themis/pkg/domain/types"
)

//go:embed catalog/frameworks.toml
var defaultCatalog []byte

// Catalog represents the compliance framework catalog configuration
type Catalog struct {
	Frameworks []FrameworkEntry `toml:"framework"`
}

// FrameworkEntry represents one framework in the catalog file
type FrameworkEntry struct {
	ID                     string `toml:"id"`
	Name                   string `toml:"name"`
	Description            string `toml:"description"`
	FrameworkType          string `toml:"framework_type"`
	Category               string `toml:"category"`
	IssuingBody            string `toml:"issuing_body"`
	StandardNumber         string `toml:"standard_number"`
	CertificationAvailable bool   `toml:"certification_available"`
}

// Validate checks if the FrameworkEntry is valid
func (f *FrameworkEntry) Validate() error {
	if f.ID == "" {
		return goerr.New("framework ID is required", goerr.V("name", f.Name))
	}
	if f.Name == "" {
		return goerr.New("framework name is required", goerr.V("id", f.ID))
	}
	if f.Category == "" {
		return goerr.New("framework category is required", goerr.V("id", f.ID))
	}
	return nil
}

// Validate checks the catalog for duplicates and invalid entries
func (c *Catalog) Validate() error {
	if len(c.Frameworks) == 0 {
		return goerr.New("catalog has no frameworks")
	}

	seen := make(map[string]bool, len(c.Frameworks))
	for i := range c.Frameworks {
		f := &c.Frameworks[i]
		if err := f.Validate(); err != nil {
			return goerr.Wrap(err, "invalid framework entry", goerr.V("index", i))
		}
		if seen[f.ID] {
			return goerr.New("duplicate framework ID", goerr.V("id", f.ID))
		}
		seen[f.ID] = true
	}

	return nil
}

// Models converts the catalog entries into domain models, all active
func (c *Catalog) Models() []*model.Framework {
	frameworks := make([]*model.Framework, len(c.Frameworks))
	for i, f := range c.Frameworks {
		frameworks[i] = &model.Framework{
			ID:                     types.FrameworkID(f.ID),
			Name:                   f.Name,
			Description:            f.Description,
			FrameworkType:          f.FrameworkType,
			Category:               f.Category,
			IssuingBody:            f.IssuingBody,
			StandardNumber:         f.StandardNumber,
			CertificationAvailable: f.CertificationAvailable,
			Active:                 true,
		}
	}
	return frameworks
}

// LoadCatalog reads and validates a catalog file. An empty path loads the
// built-in default catalog.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V("path", path))
		}
		data = raw
	}

	var catalog Catalog
	if err := toml.Unmarshal(data, &catalog); err != nil {
		return nil, goerr.Wrap(err, "failed to parse catalog file", goerr.V("path", path))
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	return &catalog, nil
}
