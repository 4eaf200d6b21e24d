// Package service provides business logic for the public model and option
// catalog. The catalog is read-only at the API level; rows are managed through
// migrations and seed data.
package service

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"horsebox_backend/internal/catalog/repository"
	"horsebox_backend/internal/catalog/transport"
	"horsebox_backend/internal/configurator/domain"
	"horsebox_backend/platform/logger"
)

// Service provides business logic for catalog.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ListModels retrieves all models in display order.
func (s *Service) ListModels(ctx context.Context) (transport.ModelListResponse, error) {
	items, err := s.repo.ListModels(ctx)
	if err != nil {
		return transport.ModelListResponse{}, err
	}

	responses := make([]transport.ModelResponse, len(items))
	for i, item := range items {
		responses[i] = toModelResponse(item)
	}

	return transport.ModelListResponse{Items: responses, Total: len(responses)}, nil
}

// GetModelBySlug retrieves a model by slug.
func (s *Service) GetModelBySlug(ctx context.Context, slug string) (transport.ModelResponse, error) {
	model, err := s.repo.GetModelBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return transport.ModelResponse{}, err
	}
	return toModelResponse(model), nil
}

// ListOptionsForModel retrieves the options available on a model, optionally
// filtered by category. The model must exist; the existence check and the
// options query run concurrently.
func (s *Service) ListOptionsForModel(ctx context.Context, modelSlug string, req transport.ListOptionsRequest) (transport.OptionListResponse, error) {
	modelSlug = strings.TrimSpace(modelSlug)

	var items []repository.Option
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.repo.GetModelBySlug(gctx, modelSlug)
		return err
	})
	g.Go(func() error {
		listed, err := s.repo.ListOptions(gctx, repository.ListOptionsParams{
			ModelSlug: modelSlug,
			Category:  strings.TrimSpace(req.Category),
		})
		if err != nil {
			return err
		}
		items = listed
		return nil
	})
	if err := g.Wait(); err != nil {
		return transport.OptionListResponse{}, err
	}

	responses := make([]transport.OptionResponse, len(items))
	for i, item := range items {
		responses[i] = toOptionResponse(item)
	}

	return transport.OptionListResponse{Items: responses, Total: len(responses)}, nil
}

// ModelSnapshot loads a model as the configurator's reference view.
func (s *Service) ModelSnapshot(ctx context.Context, slug string) (*domain.ModelSnapshot, error) {
	model, err := s.repo.GetModelBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}

	return &domain.ModelSnapshot{
		Slug:            model.Slug,
		Name:            model.Name,
		BasePricePence:  model.BasePricePence,
		VatRateBps:      model.VatRateBps,
		WeightClass:     model.WeightClass,
		Availability:    domain.Availability(model.Availability),
		PioneerEligible: model.PioneerEligible,
	}, nil
}

// OptionsForModel loads the catalog options for a model as the configurator's
// reference view.
func (s *Service) OptionsForModel(ctx context.Context, modelSlug string) ([]domain.CatalogOption, error) {
	items, err := s.repo.ListOptions(ctx, repository.ListOptionsParams{ModelSlug: strings.TrimSpace(modelSlug)})
	if err != nil {
		return nil, err
	}
	return toCatalogOptions(items), nil
}

// OptionsBySlugs loads specific options as the configurator's reference view.
// Unknown slugs are omitted.
func (s *Service) OptionsBySlugs(ctx context.Context, slugs []string) ([]domain.CatalogOption, error) {
	if len(slugs) == 0 {
		return []domain.CatalogOption{}, nil
	}

	items, err := s.repo.GetOptionsBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}
	return toCatalogOptions(items), nil
}

func toCatalogOptions(items []repository.Option) []domain.CatalogOption {
	options := make([]domain.CatalogOption, len(items))
	for i, item := range items {
		options[i] = domain.CatalogOption{
			Slug:        item.Slug,
			Name:        item.Name,
			PricePence:  item.PricePence,
			Category:    item.Category,
			Subcategory: derefString(item.Subcategory),
			PricingType: item.PricingType,
			Requires:    item.Requires,
		}
	}
	return options
}

func toModelResponse(model repository.Model) transport.ModelResponse {
	return transport.ModelResponse{
		Slug:            model.Slug,
		Name:            model.Name,
		BasePricePence:  model.BasePricePence,
		VatRateBps:      model.VatRateBps,
		WeightClass:     model.WeightClass,
		Availability:    model.Availability,
		PioneerEligible: model.PioneerEligible,
		Description:     model.Description,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func toOptionResponse(option repository.Option) transport.OptionResponse {
	return transport.OptionResponse{
		Slug:        option.Slug,
		Name:        option.Name,
		PricePence:  option.PricePence,
		Category:    option.Category,
		Subcategory: option.Subcategory,
		PricingType: option.PricingType,
		Requires:    option.Requires,
		Description: option.Description,
		CreatedAt:   option.CreatedAt,
		UpdatedAt:   option.UpdatedAt,
	}
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
