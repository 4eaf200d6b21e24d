// Package service orchestrates configurator sessions: it loads session state
// from the store, applies domain mutations with catalog reference data, and
// persists the result. Catalog and lead capture are reached through narrow
// ports so the configurator stays decoupled from their modules.
package service

import (
	"context"

	"github.com/google/uuid"

	"horsebox_backend/internal/configurator/domain"
	"horsebox_backend/internal/configurator/transport"
	"horsebox_backend/platform/apperr"
	"horsebox_backend/platform/config"
	"horsebox_backend/platform/logger"
)

// SessionStore persists configurator sessions.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, cfg *domain.Configuration) error
	Load(ctx context.Context, sessionID string) (*domain.Configuration, error)
	Delete(ctx context.Context, sessionID string) error
}

// CatalogReader provides the reference data the configurator consumes.
type CatalogReader interface {
	ModelSnapshot(ctx context.Context, slug string) (*domain.ModelSnapshot, error)
	OptionsForModel(ctx context.Context, modelSlug string) ([]domain.CatalogOption, error)
	OptionsBySlugs(ctx context.Context, slugs []string) ([]domain.CatalogOption, error)
}

// LeadReceipt is what lead capture returns for a submitted configuration.
type LeadReceipt struct {
	Reference string
	ShareURL  string
}

// LeadSubmitter turns a finished configuration into a sales lead.
type LeadSubmitter interface {
	Submit(ctx context.Context, sessionID string, snap *domain.Snapshot) (LeadReceipt, error)
}

// Service provides business logic for configurator sessions.
type Service struct {
	sessions SessionStore
	catalog  CatalogReader
	leads    LeadSubmitter
	pkg      *domain.PackageDefinition
	cfg      config.ConfiguratorConfig
	log      *logger.Logger
}

// New creates a new configurator service.
func New(sessions SessionStore, catalog CatalogReader, leads LeadSubmitter, pkg *domain.PackageDefinition, cfg config.ConfiguratorConfig, log *logger.Logger) *Service {
	return &Service{
		sessions: sessions,
		catalog:  catalog,
		leads:    leads,
		pkg:      pkg,
		cfg:      cfg,
		log:      log,
	}
}

// CreateSession starts a new empty session.
func (s *Service) CreateSession(ctx context.Context) (transport.SessionResponse, error) {
	sessionID := uuid.NewString()
	cfg := domain.NewConfiguration(s.cfg.GetDefaultDepositPence())

	if err := s.sessions.Save(ctx, sessionID, cfg); err != nil {
		return transport.SessionResponse{}, err
	}

	s.log.ConfiguratorEvent("session_created", sessionID, cfg.Totals.TotalIncVatPence)
	return toSessionResponse(sessionID, cfg), nil
}

// GetSession returns the current session state.
func (s *Service) GetSession(ctx context.Context, sessionID string) (transport.SessionResponse, error) {
	cfg, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return transport.SessionResponse{}, err
	}
	return toSessionResponse(sessionID, cfg), nil
}

// SetModel selects a model by catalog slug. An empty slug clears the model.
func (s *Service) SetModel(ctx context.Context, sessionID string, req transport.SetModelRequest) (transport.SessionResponse, error) {
	return s.mutate(ctx, sessionID, "model_selected", func(ctx context.Context, cfg *domain.Configuration) error {
		if req.ModelSlug == "" {
			cfg.SetModel(nil)
			return nil
		}

		model, err := s.catalog.ModelSnapshot(ctx, req.ModelSlug)
		if err != nil {
			return err
		}
		cfg.SetModel(model)
		return nil
	})
}

// SetChassisCost sets the customer-supplied chassis cost in pence.
func (s *Service) SetChassisCost(ctx context.Context, sessionID string, req transport.SetChassisCostRequest) (transport.SessionResponse, error) {
	return s.mutate(ctx, sessionID, "chassis_cost_set", func(_ context.Context, cfg *domain.Configuration) error {
		cfg.SetChassisCost(req.ChassisCostPence)
		return nil
	})
}

// SetDeposit sets the deposit amount in pence.
func (s *Service) SetDeposit(ctx context.Context, sessionID string, req transport.SetDepositRequest) (transport.SessionResponse, error) {
	return s.mutate(ctx, sessionID, "deposit_set", func(_ context.Context, cfg *domain.Configuration) error {
		cfg.SetDeposit(req.DepositPence)
		return nil
	})
}

// SetColor sets the exterior color.
func (s *Service) SetColor(ctx context.Context, sessionID string, req transport.SetColorRequest) (transport.SessionResponse, error) {
	return s.mutate(ctx, sessionID, "color_set", func(_ context.Context, cfg *domain.Configuration) error {
		cfg.SetColor(req.Color)
		return nil
	})
}

// UpdateCustomer merges the provided customer contact fields.
func (s *Service) UpdateCustomer(ctx context.Context, sessionID string, req transport.UpdateCustomerRequest) (transport.SessionResponse, error) {
	return s.mutate(ctx, sessionID, "customer_updated", func(_ context.Context, cfg *domain.Configuration) error {
		cfg.SetCustomerInfo(domain.CustomerInfoPatch{
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			AgentName: req.AgentName,
		})
		return nil
	})
}

// SetPackage enables or disables the Pioneer Package.
func (s *Service) SetPackage(ctx context.Context, sessionID string, req transport.SetPackageRequest) (transport.SessionResponse, error) {
	event := "package_disabled"
	if req.Enabled {
		event = "package_enabled"
	}

	return s.mutate(ctx, sessionID, event, func(ctx context.Context, cfg *domain.Configuration) error {
		catalog, err := s.catalogForModel(ctx, cfg)
		if err != nil {
			return err
		}
		cfg.SetPioneerPackage(req.Enabled, req.Variant, catalog, s.pkg)
		s.reportCatalogMisses(sessionID, cfg, "package")
		return nil
	})
}

// AddOption adds an option from the selected model's catalog, defaulting to
// quantity 1. Options the catalog does not offer for that model are rejected.
func (s *Service) AddOption(ctx context.Context, sessionID string, req transport.AddOptionRequest) (transport.SessionResponse, error) {
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	return s.mutate(ctx, sessionID, "option_added", func(ctx context.Context, cfg *domain.Configuration) error {
		if cfg.Model == nil {
			return apperr.Validation("select a model before adding options")
		}

		catalog, err := s.catalogForModel(ctx, cfg)
		if err != nil {
			return err
		}

		opt, ok := optionFromCatalog(catalog, req.OptionSlug)
		if !ok {
			found, err := s.catalog.OptionsBySlugs(ctx, []string{req.OptionSlug})
			if err != nil {
				return err
			}
			if len(found) == 0 {
				return apperr.NotFound("option not found")
			}
			return apperr.Validation("option is not available for the selected model")
		}

		cfg.AddOption(opt, quantity, catalog)
		s.reportCatalogMisses(sessionID, cfg, "requirements")
		return nil
	})
}

// RemoveOption removes an option by slug.
func (s *Service) RemoveOption(ctx context.Context, sessionID, optionSlug string) (transport.SessionResponse, error) {
	return s.mutate(ctx, sessionID, "option_removed", func(_ context.Context, cfg *domain.Configuration) error {
		cfg.RemoveOption(optionSlug)
		return nil
	})
}

// UpdateOptionQuantity updates a selected option's quantity.
func (s *Service) UpdateOptionQuantity(ctx context.Context, sessionID, optionSlug string, req transport.UpdateOptionQuantityRequest) (transport.SessionResponse, error) {
	return s.mutate(ctx, sessionID, "option_quantity_updated", func(_ context.Context, cfg *domain.Configuration) error {
		cfg.UpdateOptionQuantity(optionSlug, req.Quantity)
		return nil
	})
}

// Advance moves the session to the next step when its gate passes.
func (s *Service) Advance(ctx context.Context, sessionID string) (transport.SessionResponse, error) {
	return s.mutate(ctx, sessionID, "step_advanced", func(_ context.Context, cfg *domain.Configuration) error {
		cfg.Advance()
		return nil
	})
}

// Back moves the session to the previous step.
func (s *Service) Back(ctx context.Context, sessionID string) (transport.SessionResponse, error) {
	return s.mutate(ctx, sessionID, "step_back", func(_ context.Context, cfg *domain.Configuration) error {
		cfg.Back()
		return nil
	})
}

// ResetSession restores the session to its initial empty state.
func (s *Service) ResetSession(ctx context.Context, sessionID string) (transport.SessionResponse, error) {
	return s.mutate(ctx, sessionID, "session_reset", func(_ context.Context, cfg *domain.Configuration) error {
		cfg.Reset()
		return nil
	})
}

// Summary returns the submission view of the session.
func (s *Service) Summary(ctx context.Context, sessionID string) (transport.SummaryResponse, error) {
	cfg, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return transport.SummaryResponse{}, err
	}

	snap, err := cfg.Snapshot()
	if err != nil {
		return transport.SummaryResponse{}, err
	}

	return transport.SummaryResponse{SessionID: sessionID, Summary: snap}, nil
}

// Submit validates the whole configuration and hands it to lead capture.
func (s *Service) Submit(ctx context.Context, sessionID string) (transport.SubmitResponse, error) {
	cfg, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return transport.SubmitResponse{}, err
	}

	if err := cfg.ValidateForSubmission(); err != nil {
		return transport.SubmitResponse{}, err
	}

	snap, err := cfg.Snapshot()
	if err != nil {
		return transport.SubmitResponse{}, err
	}

	receipt, err := s.leads.Submit(ctx, sessionID, snap)
	if err != nil {
		return transport.SubmitResponse{}, err
	}

	s.log.ConfiguratorEvent("lead_submitted", sessionID, cfg.Totals.TotalIncVatPence)
	return transport.SubmitResponse{Reference: receipt.Reference, ShareURL: receipt.ShareURL}, nil
}

// mutate is the load-apply-save pipeline shared by every session mutation.
func (s *Service) mutate(ctx context.Context, sessionID, event string, apply func(ctx context.Context, cfg *domain.Configuration) error) (transport.SessionResponse, error) {
	cfg, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return transport.SessionResponse{}, err
	}

	if err := apply(ctx, cfg); err != nil {
		return transport.SessionResponse{}, err
	}

	if err := s.sessions.Save(ctx, sessionID, cfg); err != nil {
		return transport.SessionResponse{}, err
	}

	s.log.ConfiguratorEvent(event, sessionID, cfg.Totals.TotalIncVatPence)
	return toSessionResponse(sessionID, cfg), nil
}

// catalogForModel loads the option catalog for the session's model. With no
// model selected the catalog is empty; the domain reports its own errors.
func (s *Service) catalogForModel(ctx context.Context, cfg *domain.Configuration) ([]domain.CatalogOption, error) {
	if cfg.Model == nil {
		return nil, nil
	}
	return s.catalog.OptionsForModel(ctx, cfg.Model.Slug)
}

// optionFromCatalog finds an option by slug in a model's catalog.
func optionFromCatalog(catalog []domain.CatalogOption, slug string) (domain.CatalogOption, bool) {
	for _, opt := range catalog {
		if opt.Slug == slug {
			return opt, true
		}
	}
	return domain.CatalogOption{}, false
}

// reportCatalogMisses surfaces domain warnings in the logs. The warnings stay
// on the session so the client sees them too.
func (s *Service) reportCatalogMisses(sessionID string, cfg *domain.Configuration, source string) {
	for _, warning := range cfg.Warnings {
		s.log.CatalogMiss(sessionID, warning, source)
	}
}

func toSessionResponse(sessionID string, cfg *domain.Configuration) transport.SessionResponse {
	return transport.SessionResponse{SessionID: sessionID, Configuration: cfg}
}
