package domain

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// IncludedItem is an option bundled into the Pioneer Package, referenced by
// its stable catalog slug together with the quantity it ships with.
type IncludedItem struct {
	OptionSlug string `yaml:"optionSlug" json:"optionSlug"`
	Quantity   int    `yaml:"quantity" json:"quantity"`
}

// PackageDefinition describes the Pioneer Package bundle: its price, the
// physical variants it comes in, models whose variant is fixed by business
// rule, and the options it includes. Included options are matched by explicit
// slug; the name-substring matching of earlier systems is not supported.
type PackageDefinition struct {
	Slug                string            `yaml:"slug" json:"slug"`
	Name                string            `yaml:"name" json:"name"`
	PricePence          int64             `yaml:"pricePence" json:"pricePence"`
	Variants            []string          `yaml:"variants" json:"variants"`
	FixedVariantByModel map[string]string `yaml:"fixedVariantByModel" json:"fixedVariantByModel,omitempty"`
	Included            []IncludedItem    `yaml:"included" json:"included"`
}

// HasVariant reports whether the given variant is one the package offers.
func (d *PackageDefinition) HasVariant(variant string) bool {
	for _, v := range d.Variants {
		if v == variant {
			return true
		}
	}
	return false
}

// VariantForModel resolves the effective variant for a model: fixed-variant
// models override the request, otherwise the requested variant is used, and an
// empty request defaults to the first declared variant.
func (d *PackageDefinition) VariantForModel(modelSlug, requested string) string {
	if fixed, ok := d.FixedVariantByModel[modelSlug]; ok {
		return fixed
	}
	if requested == "" && len(d.Variants) > 0 {
		return d.Variants[0]
	}
	return requested
}

// LoadPackageDefinition reads a package definition from a YAML file.
func LoadPackageDefinition(path string) (*PackageDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read package definition: %w", err)
	}

	var def PackageDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse package definition: %w", err)
	}

	if def.Slug == "" || def.PricePence <= 0 {
		return nil, fmt.Errorf("package definition %q is incomplete", path)
	}
	if len(def.Variants) == 0 {
		return nil, fmt.Errorf("package definition %q declares no variants", path)
	}

	return &def, nil
}
