package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"horsebox_backend/platform/apperr"
)

const (
	modelNotFoundMessage  = "model not found"
	optionNotFoundMessage = "option not found"
)

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ListModels lists all models in display order.
func (r *Repo) ListModels(ctx context.Context) ([]Model, error) {
	query := `
		SELECT slug, name, base_price_pence, vat_rate_bps, weight_class, availability,
		       pioneer_eligible, description, display_order, created_at, updated_at
		FROM catalog_models
		ORDER BY display_order ASC, name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	items := make([]Model, 0)
	for rows.Next() {
		model, err := scanModel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan model: %w", err)
		}
		items = append(items, model)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate models: %w", rows.Err())
	}

	return items, nil
}

// GetModelBySlug retrieves a model by slug.
func (r *Repo) GetModelBySlug(ctx context.Context, slug string) (Model, error) {
	query := `
		SELECT slug, name, base_price_pence, vat_rate_bps, weight_class, availability,
		       pioneer_eligible, description, display_order, created_at, updated_at
		FROM catalog_models
		WHERE slug = $1`

	model, err := scanModel(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Model{}, apperr.NotFound(modelNotFoundMessage)
		}
		return Model{}, fmt.Errorf("get model by slug: %w", err)
	}

	return model, nil
}

// ListOptions lists options, filtered by model compatibility and category.
// An option with no compatible_models entries is available on every model.
func (r *Repo) ListOptions(ctx context.Context, params ListOptionsParams) ([]Option, error) {
	query := `
		SELECT slug, name, price_pence, category, subcategory, pricing_type, requires,
		       compatible_models, description, display_order, created_at, updated_at
		FROM catalog_options
		WHERE ($1 = '' OR compatible_models = '{}' OR $1 = ANY(compatible_models))
		  AND ($2 = '' OR category = $2)
		ORDER BY category ASC, display_order ASC, name ASC`

	rows, err := r.pool.Query(ctx, query, params.ModelSlug, params.Category)
	if err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	defer rows.Close()

	items := make([]Option, 0)
	for rows.Next() {
		option, err := scanOption(rows)
		if err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		items = append(items, option)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate options: %w", rows.Err())
	}

	return items, nil
}

// GetOptionBySlug retrieves an option by slug.
func (r *Repo) GetOptionBySlug(ctx context.Context, slug string) (Option, error) {
	query := `
		SELECT slug, name, price_pence, category, subcategory, pricing_type, requires,
		       compatible_models, description, display_order, created_at, updated_at
		FROM catalog_options
		WHERE slug = $1`

	option, err := scanOption(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Option{}, apperr.NotFound(optionNotFoundMessage)
		}
		return Option{}, fmt.Errorf("get option by slug: %w", err)
	}

	return option, nil
}

// GetOptionsBySlugs retrieves options by their slugs. Unknown slugs are
// silently absent from the result; the caller decides how to report them.
func (r *Repo) GetOptionsBySlugs(ctx context.Context, slugs []string) ([]Option, error) {
	query := `
		SELECT slug, name, price_pence, category, subcategory, pricing_type, requires,
		       compatible_models, description, display_order, created_at, updated_at
		FROM catalog_options
		WHERE slug = ANY($1)`

	rows, err := r.pool.Query(ctx, query, slugs)
	if err != nil {
		return nil, fmt.Errorf("get options by slugs: %w", err)
	}
	defer rows.Close()

	items := make([]Option, 0)
	for rows.Next() {
		option, err := scanOption(rows)
		if err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		items = append(items, option)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate options by slugs: %w", rows.Err())
	}

	return items, nil
}

func scanModel(row pgx.Row) (Model, error) {
	var model Model
	var createdAt, updatedAt time.Time
	if err := row.Scan(
		&model.Slug, &model.Name, &model.BasePricePence, &model.VatRateBps, &model.WeightClass,
		&model.Availability, &model.PioneerEligible, &model.Description, &model.DisplayOrder,
		&createdAt, &updatedAt,
	); err != nil {
		return Model{}, err
	}

	model.CreatedAt = createdAt.Format(time.RFC3339)
	model.UpdatedAt = updatedAt.Format(time.RFC3339)
	return model, nil
}

func scanOption(row pgx.Row) (Option, error) {
	var option Option
	var createdAt, updatedAt time.Time
	if err := row.Scan(
		&option.Slug, &option.Name, &option.PricePence, &option.Category, &option.Subcategory,
		&option.PricingType, &option.Requires, &option.CompatibleModels, &option.Description,
		&option.DisplayOrder, &createdAt, &updatedAt,
	); err != nil {
		return Option{}, err
	}

	option.CreatedAt = createdAt.Format(time.RFC3339)
	option.UpdatedAt = updatedAt.Format(time.RFC3339)
	return option, nil
}
