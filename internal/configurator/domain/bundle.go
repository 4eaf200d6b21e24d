package domain

import "fmt"

// SetPioneerPackage toggles the bundled package.
//
// Enabling sets the flag and the resolved variant, then adds every included
// option that is not already selected, marked FromPackage so it stays locked
// while the package is active. Enabling twice is idempotent. Options the
// customer had already selected independently are left untouched (and keep
// their quantities), so disabling restores exactly the pre-enable set.
//
// Disabling clears the flag and variant and removes only the FromPackage
// items. Disabling when never enabled is a no-op.
//
// Included slugs that have no catalog match are recorded as warnings rather
// than silently skipped.
func (c *Configuration) SetPioneerPackage(enabled bool, variant string, catalog []CatalogOption, def *PackageDefinition) {
	if !enabled {
		if !c.PioneerPackage {
			return
		}
		c.PioneerPackage = false
		c.PioneerVariant = ""
		c.PioneerPricePence = 0
		c.ValidationError = ""

		kept := c.SelectedOptions[:0]
		for _, item := range c.SelectedOptions {
			if !item.FromPackage {
				kept = append(kept, item)
			}
		}
		c.SelectedOptions = kept
		c.Recalculate()
		return
	}

	if def == nil {
		c.ValidationError = "package definition unavailable"
		return
	}
	if c.Model == nil {
		c.ValidationError = "select a model before adding the Pioneer Package"
		return
	}
	if !c.Model.PioneerEligible {
		c.ValidationError = fmt.Sprintf("the %s is not eligible for the %s", c.Model.Name, def.Name)
		return
	}

	resolved := def.VariantForModel(c.Model.Slug, variant)
	if !def.HasVariant(resolved) {
		c.ValidationError = fmt.Sprintf("unknown package variant %q", resolved)
		return
	}

	c.PioneerPackage = true
	c.PioneerVariant = resolved
	c.PioneerPricePence = def.PricePence
	c.ValidationError = ""

	for _, item := range def.Included {
		if c.findOption(item.OptionSlug) != nil {
			continue
		}
		opt, ok := findCatalogOption(catalog, item.OptionSlug)
		if !ok {
			c.Warn(fmt.Sprintf("package option %q not found in catalog", item.OptionSlug))
			continue
		}
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		c.SelectedOptions = append(c.SelectedOptions, SelectedOption{
			Slug:        opt.Slug,
			Name:        opt.Name,
			PricePence:  opt.PricePence,
			Quantity:    quantity,
			Category:    opt.Category,
			FromPackage: true,
		})
	}

	c.Recalculate()
}

// resolveRequirements pulls in the prerequisites an option declares, walking
// transitive requirements with a visited set so cyclic declarations cannot
// recurse forever. Missing catalog entries are recorded as warnings.
func (c *Configuration) resolveRequirements(opt CatalogOption, catalog []CatalogOption, visited map[string]bool) {
	for _, requiredSlug := range opt.Requires {
		if visited[requiredSlug] {
			continue
		}
		visited[requiredSlug] = true

		if c.findOption(requiredSlug) != nil {
			continue
		}

		required, ok := findCatalogOption(catalog, requiredSlug)
		if !ok {
			c.Warn(fmt.Sprintf("required option %q not found in catalog", requiredSlug))
			continue
		}

		c.SelectedOptions = append(c.SelectedOptions, SelectedOption{
			Slug:       required.Slug,
			Name:       required.Name,
			PricePence: required.PricePence,
			Quantity:   1,
			Category:   required.Category,
		})

		c.resolveRequirements(required, catalog, visited)
	}
}

func findCatalogOption(catalog []CatalogOption, slug string) (CatalogOption, bool) {
	for _, opt := range catalog {
		if opt.Slug == slug {
			return opt, true
		}
	}
	return CatalogOption{}, false
}
