// Package service provides business logic for lead capture: turning submitted
// configurations into referenced leads, notifying the sales inbox, scheduling
// follow-ups and serving share links.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"

	"horsebox_backend/internal/configurator/domain"
	"horsebox_backend/internal/events"
	"horsebox_backend/internal/leads/repository"
	"horsebox_backend/internal/leads/transport"
	"horsebox_backend/platform/config"
	platevents "horsebox_backend/platform/events"
	"horsebox_backend/platform/logger"
)

const qrCodeSize = 256

// LeadNotification carries the fields the email templates need.
type LeadNotification struct {
	Reference        string
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	ModelName        string
	TotalIncVatPence int64
	ShareURL         string
}

// Notifier sends lead emails. Implementations must be safe to call
// concurrently.
type Notifier interface {
	SendLeadNotification(ctx context.Context, n LeadNotification) error
	SendFollowUpEmail(ctx context.Context, n LeadNotification) error
}

// FollowUpScheduler enqueues the delayed follow-up for a new lead.
type FollowUpScheduler interface {
	ScheduleFollowUp(ctx context.Context, reference string) error
}

// Service provides business logic for leads.
type Service struct {
	repo      repository.Repository
	bus       platevents.Bus
	notifier  Notifier
	scheduler FollowUpScheduler
	cfg       config.ConfiguratorConfig
	log       *logger.Logger
}

// New creates a new leads service. Notifier and scheduler may be nil when
// email or the worker queue is disabled.
func New(repo repository.Repository, bus platevents.Bus, notifier Notifier, scheduler FollowUpScheduler, cfg config.ConfiguratorConfig, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		bus:       bus,
		notifier:  notifier,
		scheduler: scheduler,
		cfg:       cfg,
		log:       log,
	}
}

// CreateFromSnapshot persists a submitted configuration as a lead. The lead
// row is the durable record; the lead.created handlers (sales notification)
// and follow-up scheduling run afterwards and their failures are logged, not
// propagated.
func (s *Service) CreateFromSnapshot(ctx context.Context, sessionID string, snap *domain.Snapshot) (transport.LeadResponse, error) {
	reference, err := s.nextReference(ctx)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	configuration, err := json.Marshal(snap)
	if err != nil {
		return transport.LeadResponse{}, fmt.Errorf("marshal configuration: %w", err)
	}

	var agentName *string
	if snap.AgentName != "" {
		agentName = &snap.AgentName
	}

	lead, err := s.repo.CreateLead(ctx, repository.CreateLeadParams{
		Reference:        reference,
		SessionID:        sessionID,
		CustomerName:     snap.CustomerName,
		CustomerEmail:    snap.CustomerEmail,
		CustomerPhone:    snap.CustomerPhone,
		AgentName:        agentName,
		ModelSlug:        snap.ModelSlug,
		ModelName:        snap.ModelName,
		TotalIncVatPence: snap.Totals.TotalIncVatPence,
		Configuration:    configuration,
	})
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.log.Info("lead created", "reference", lead.Reference, "model", lead.ModelSlug)

	created := events.LeadCreated{
		BaseEvent:        platevents.NewBaseEvent(),
		LeadID:           lead.ID,
		Reference:        lead.Reference,
		SessionID:        lead.SessionID,
		CustomerName:     lead.CustomerName,
		CustomerEmail:    lead.CustomerEmail,
		CustomerPhone:    lead.CustomerPhone,
		ModelName:        lead.ModelName,
		TotalIncVatPence: lead.TotalIncVatPence,
		ShareURL:         s.shareURL(lead.Reference),
	}
	if err := s.bus.PublishSync(ctx, created); err != nil {
		s.log.Error("lead created handler failed", "reference", lead.Reference, "error", err)
	}

	if s.scheduler != nil {
		if err := s.scheduler.ScheduleFollowUp(ctx, lead.Reference); err != nil {
			s.log.Error("follow-up scheduling failed", "reference", lead.Reference, "error", err)
		}
	}

	return s.toLeadResponse(lead), nil
}

// GetLeadByReference retrieves a lead by reference.
func (s *Service) GetLeadByReference(ctx context.Context, reference string) (transport.LeadResponse, error) {
	lead, err := s.repo.GetLeadByReference(ctx, strings.TrimSpace(reference))
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return s.toLeadResponse(lead), nil
}

// ListLeads retrieves leads with search and pagination.
func (s *Service) ListLeads(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	items, total, err := s.repo.ListLeads(ctx, repository.ListLeadsParams{
		Search: strings.TrimSpace(req.Search),
		Status: req.Status,
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	responses := make([]transport.LeadResponse, len(items))
	for i, item := range items {
		responses[i] = s.toLeadResponse(item)
	}

	totalPages := (total + pageSize - 1) / pageSize
	return transport.LeadListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// SharedConfiguration returns the public share view of a lead.
func (s *Service) SharedConfiguration(ctx context.Context, reference string) (transport.SharedConfigurationResponse, error) {
	lead, err := s.repo.GetLeadByReference(ctx, strings.TrimSpace(reference))
	if err != nil {
		return transport.SharedConfigurationResponse{}, err
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(lead.Configuration, &snap); err != nil {
		return transport.SharedConfigurationResponse{}, fmt.Errorf("unmarshal configuration: %w", err)
	}

	return transport.SharedConfigurationResponse{
		Reference:     lead.Reference,
		ModelName:     lead.ModelName,
		Configuration: &snap,
		CreatedAt:     lead.CreatedAt,
	}, nil
}

// ShareQR renders the share link for a lead as a PNG QR code.
func (s *Service) ShareQR(ctx context.Context, reference string) ([]byte, error) {
	lead, err := s.repo.GetLeadByReference(ctx, strings.TrimSpace(reference))
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(s.shareURL(lead.Reference), qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}

// SendFollowUp sends the delayed follow-up email for a lead. Sending twice is
// a no-op so task retries cannot double-send.
func (s *Service) SendFollowUp(ctx context.Context, reference string) error {
	lead, err := s.repo.GetLeadByReference(ctx, reference)
	if err != nil {
		return err
	}
	if lead.FollowUpSentAt != nil {
		return nil
	}
	if s.notifier == nil {
		return nil
	}

	if err := s.notifier.SendFollowUpEmail(ctx, s.toNotification(lead)); err != nil {
		return err
	}
	if err := s.repo.MarkFollowUpSent(ctx, lead.Reference); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.LeadFollowUpSent{
		BaseEvent:     platevents.NewBaseEvent(),
		Reference:     lead.Reference,
		CustomerEmail: lead.CustomerEmail,
	})
	return nil
}

// nextReference builds the public lead reference, e.g. HB-2026-0042.
func (s *Service) nextReference(ctx context.Context) (string, error) {
	seq, err := s.repo.NextReferenceSequence(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("HB-%d-%04d", time.Now().UTC().Year(), seq), nil
}

func (s *Service) shareURL(reference string) string {
	return strings.TrimRight(s.cfg.GetShareBaseURL(), "/") + "/" + reference
}

func (s *Service) toNotification(lead repository.Lead) LeadNotification {
	return LeadNotification{
		Reference:        lead.Reference,
		CustomerName:     lead.CustomerName,
		CustomerEmail:    lead.CustomerEmail,
		CustomerPhone:    lead.CustomerPhone,
		ModelName:        lead.ModelName,
		TotalIncVatPence: lead.TotalIncVatPence,
		ShareURL:         s.shareURL(lead.Reference),
	}
}

func (s *Service) toLeadResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:               lead.ID,
		Reference:        lead.Reference,
		SessionID:        lead.SessionID,
		CustomerName:     lead.CustomerName,
		CustomerEmail:    lead.CustomerEmail,
		CustomerPhone:    lead.CustomerPhone,
		AgentName:        lead.AgentName,
		ModelSlug:        lead.ModelSlug,
		ModelName:        lead.ModelName,
		TotalIncVatPence: lead.TotalIncVatPence,
		Status:           lead.Status,
		ShareURL:         s.shareURL(lead.Reference),
		FollowUpSentAt:   lead.FollowUpSentAt,
		CreatedAt:        lead.CreatedAt,
		UpdatedAt:        lead.UpdatedAt,
	}
}
