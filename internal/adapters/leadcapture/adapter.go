// Package leadcapture adapts the leads module to the configurator's
// lead-submission port, keeping the two bounded contexts decoupled.
package leadcapture

import (
	"context"

	"horsebox_backend/internal/configurator/domain"
	configservice "horsebox_backend/internal/configurator/service"
	leadsservice "horsebox_backend/internal/leads/service"
)

// Adapter bridges configurator submissions into the leads service.
type Adapter struct {
	leads *leadsservice.Service
}

// New creates a new lead-capture adapter.
func New(leads *leadsservice.Service) *Adapter {
	return &Adapter{leads: leads}
}

// Compile-time check that Adapter implements the configurator port.
var _ configservice.LeadSubmitter = (*Adapter)(nil)

// Submit stores the snapshot as a lead and returns its receipt.
func (a *Adapter) Submit(ctx context.Context, sessionID string, snap *domain.Snapshot) (configservice.LeadReceipt, error) {
	lead, err := a.leads.CreateFromSnapshot(ctx, sessionID, snap)
	if err != nil {
		return configservice.LeadReceipt{}, err
	}

	return configservice.LeadReceipt{
		Reference: lead.Reference,
		ShareURL:  lead.ShareURL,
	}, nil
}
