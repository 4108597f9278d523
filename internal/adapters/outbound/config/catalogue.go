package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/happyshop/happyshop/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed default_catalogue.yaml
var defaultCatalogue []byte

type catalogueFile struct {
	Products []domain.Product `yaml:"products"`
}

// LoadCatalogue reads the products listed in path. An empty path yields
// the built-in catalogue.
func LoadCatalogue(path string) ([]domain.Product, error) {
	data := defaultCatalogue
	name := "built-in catalogue"
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalogue: %w", err)
		}
		name = path
	}
	return ParseCatalogue(data, name)
}

// ParseCatalogue decodes and validates a catalogue document.
func ParseCatalogue(data []byte, name string) ([]domain.Product, error) {
	var f catalogueFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	seen := make(map[string]bool, len(f.Products))
	for _, p := range f.Products {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", name, err)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("invalid %s: %w: duplicate id %s", name, domain.ErrInvalidProduct, p.ID)
		}
		seen[p.ID] = true
	}
	return f.Products, nil
}
