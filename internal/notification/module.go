// Package notification reacts to domain events with emails and sales-activity
// logging. Publishing modules stay decoupled from email providers and
// templates; they raise events and this module decides what goes out.
package notification

import (
	"context"
	"fmt"

	"horsebox_backend/internal/events"
	leadsservice "horsebox_backend/internal/leads/service"
	platevents "horsebox_backend/platform/events"
	"horsebox_backend/platform/logger"
)

// Module subscribes to lead events. The notifier may be nil when email is
// disabled; events are then logged and skipped.
type Module struct {
	notifier leadsservice.Notifier
	log      *logger.Logger
}

// NewModule creates the notification module.
func NewModule(notifier leadsservice.Notifier, log *logger.Logger) *Module {
	return &Module{
		notifier: notifier,
		log:      log,
	}
}

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus platevents.Bus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), m)
	bus.Subscribe(events.LeadFollowUpSent{}.EventName(), m)
}

// Handle dispatches an event to its handler.
func (m *Module) Handle(ctx context.Context, event platevents.Event) error {
	switch e := event.(type) {
	case events.LeadCreated:
		return m.handleLeadCreated(ctx, e)
	case events.LeadFollowUpSent:
		return m.handleLeadFollowUpSent(ctx, e)
	default:
		return fmt.Errorf("unhandled event type %q", event.EventName())
	}
}

// handleLeadCreated emails the sales inbox about the new lead.
func (m *Module) handleLeadCreated(ctx context.Context, e events.LeadCreated) error {
	if m.notifier == nil {
		m.log.Debug("lead notification skipped, email disabled", "reference", e.Reference)
		return nil
	}

	return m.notifier.SendLeadNotification(ctx, leadsservice.LeadNotification{
		Reference:        e.Reference,
		CustomerName:     e.CustomerName,
		CustomerEmail:    e.CustomerEmail,
		CustomerPhone:    e.CustomerPhone,
		ModelName:        e.ModelName,
		TotalIncVatPence: e.TotalIncVatPence,
		ShareURL:         e.ShareURL,
	})
}

// handleLeadFollowUpSent records the delivery in the sales activity log.
func (m *Module) handleLeadFollowUpSent(_ context.Context, e events.LeadFollowUpSent) error {
	m.log.Info("follow-up email delivered", "reference", e.Reference, "email", e.CustomerEmail)
	return nil
}

// Compile-time check that Module implements events.Handler.
var _ platevents.Handler = (*Module)(nil)
