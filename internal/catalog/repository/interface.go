package repository

import "context"

// Model represents a horsebox model row.
type Model struct {
	Slug            string  `db:"slug"`
	Name            string  `db:"name"`
	BasePricePence  *int64  `db:"base_price_pence"`
	VatRateBps      int     `db:"vat_rate_bps"`
	WeightClass     string  `db:"weight_class"`
	Availability    string  `db:"availability"`
	PioneerEligible bool    `db:"pioneer_eligible"`
	Description     *string `db:"description"`
	DisplayOrder    int     `db:"display_order"`
	CreatedAt       string  `db:"created_at"`
	UpdatedAt       string  `db:"updated_at"`
}

// Option represents a configurable option row. CompatibleModels empty means
// the option is available on every model.
type Option struct {
	Slug             string   `db:"slug"`
	Name             string   `db:"name"`
	PricePence       int64    `db:"price_pence"`
	Category         string   `db:"category"`
	Subcategory      *string  `db:"subcategory"`
	PricingType      string   `db:"pricing_type"`
	Requires         []string `db:"requires"`
	CompatibleModels []string `db:"compatible_models"`
	Description      *string  `db:"description"`
	DisplayOrder     int      `db:"display_order"`
	CreatedAt        string   `db:"created_at"`
	UpdatedAt        string   `db:"updated_at"`
}

// ListOptionsParams defines filters for listing options.
type ListOptionsParams struct {
	ModelSlug string
	Category  string
}

// Repository defines catalog storage operations.
type Repository interface {
	ListModels(ctx context.Context) ([]Model, error)
	GetModelBySlug(ctx context.Context, slug string) (Model, error)

	ListOptions(ctx context.Context, params ListOptionsParams) ([]Option, error)
	GetOptionBySlug(ctx context.Context, slug string) (Option, error)
	GetOptionsBySlugs(ctx context.Context, slugs []string) ([]Option, error)
}
