package service

import (
	"context"
	"errors"
	"testing"

	"horsebox_backend/internal/catalog/repository"
	"horsebox_backend/internal/catalog/transport"
	"horsebox_backend/internal/configurator/domain"
	"horsebox_backend/platform/apperr"
	"horsebox_backend/platform/logger"
)

type fakeRepo struct {
	models  []repository.Model
	options []repository.Option
}

func (f *fakeRepo) ListModels(_ context.Context) ([]repository.Model, error) {
	return f.models, nil
}

func (f *fakeRepo) GetModelBySlug(_ context.Context, slug string) (repository.Model, error) {
	for _, m := range f.models {
		if m.Slug == slug {
			return m, nil
		}
	}
	return repository.Model{}, apperr.NotFound("model not found")
}

func (f *fakeRepo) ListOptions(_ context.Context, params repository.ListOptionsParams) ([]repository.Option, error) {
	items := make([]repository.Option, 0)
	for _, o := range f.options {
		if params.Category != "" && o.Category != params.Category {
			continue
		}
		if params.ModelSlug != "" && len(o.CompatibleModels) > 0 && !contains(o.CompatibleModels, params.ModelSlug) {
			continue
		}
		items = append(items, o)
	}
	return items, nil
}

func (f *fakeRepo) GetOptionBySlug(_ context.Context, slug string) (repository.Option, error) {
	for _, o := range f.options {
		if o.Slug == slug {
			return o, nil
		}
	}
	return repository.Option{}, apperr.NotFound("option not found")
}

func (f *fakeRepo) GetOptionsBySlugs(_ context.Context, slugs []string) ([]repository.Option, error) {
	items := make([]repository.Option, 0)
	for _, slug := range slugs {
		for _, o := range f.options {
			if o.Slug == slug {
				items = append(items, o)
			}
		}
	}
	return items, nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func newTestService() (*Service, *fakeRepo) {
	basePrice := int64(1850000)
	repo := &fakeRepo{
		models: []repository.Model{
			{Slug: "aeos-qv-45", Name: "Aeos QV 4.5t", BasePricePence: &basePrice, VatRateBps: 2000, WeightClass: "4.5t", Availability: "configurable", PioneerEligible: true},
			{Slug: "helios-75", Name: "Helios 7.5t", VatRateBps: 2000, WeightClass: "7.5t", Availability: "contact"},
		},
		options: []repository.Option{
			{Slug: "awning", Name: "Roll-Out Awning", PricePence: 92500, Category: "exterior", PricingType: "flat"},
			{Slug: "rear-camera", Name: "Rear View Camera", PricePence: 36500, Category: "electrical", PricingType: "flat", Requires: []string{"leisure-battery"}},
			{Slug: "weekender-pack", Name: "Weekender Seating Pack", PricePence: 112000, Category: "living", PricingType: "flat", CompatibleModels: []string{"aeos-qv-45"}},
		},
	}
	return New(repo, logger.New("development")), repo
}

func TestListModels(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected 2 models, got %d", resp.Total)
	}
	if resp.Items[1].BasePricePence != nil {
		t.Errorf("expected contact-only model to have no base price")
	}
}

func TestGetModelBySlug_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetModelBySlug(context.Background(), "no-such-model")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestListOptionsForModel_UnknownModelRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ListOptionsForModel(context.Background(), "no-such-model", transport.ListOptionsRequest{})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestListOptionsForModel_FiltersByCategory(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.ListOptionsForModel(context.Background(), "aeos-qv-45", transport.ListOptionsRequest{Category: "electrical"})
	if err != nil {
		t.Fatalf("ListOptionsForModel failed: %v", err)
	}
	if resp.Total != 1 || resp.Items[0].Slug != "rear-camera" {
		t.Fatalf("expected only rear-camera, got %+v", resp.Items)
	}
}

func TestListOptionsForModel_ModelCompatibility(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.ListOptionsForModel(context.Background(), "helios-75", transport.ListOptionsRequest{})
	if err != nil {
		t.Fatalf("ListOptionsForModel failed: %v", err)
	}
	for _, item := range resp.Items {
		if item.Slug == "weekender-pack" {
			t.Fatalf("weekender-pack is restricted to aeos-qv-45, should not appear for helios-75")
		}
	}
}

func TestModelSnapshot_MapsAvailability(t *testing.T) {
	svc, _ := newTestService()

	snap, err := svc.ModelSnapshot(context.Background(), "helios-75")
	if err != nil {
		t.Fatalf("ModelSnapshot failed: %v", err)
	}
	if snap.Availability != domain.AvailabilityContact {
		t.Errorf("expected contact availability, got %q", snap.Availability)
	}
	if snap.BasePricePence != nil {
		t.Errorf("expected nil base price for contact-only model")
	}
}

func TestOptionsBySlugs_OmitsUnknown(t *testing.T) {
	svc, _ := newTestService()

	options, err := svc.OptionsBySlugs(context.Background(), []string{"awning", "no-such-option"})
	if err != nil {
		t.Fatalf("OptionsBySlugs failed: %v", err)
	}
	if len(options) != 1 || options[0].Slug != "awning" {
		t.Fatalf("expected only awning, got %+v", options)
	}
	if len(options[0].Requires) != 0 {
		t.Errorf("awning has no requirements, got %v", options[0].Requires)
	}
}
