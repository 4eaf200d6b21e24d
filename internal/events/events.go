// Package events defines the domain events exchanged between modules.
package events

import (
	"github.com/google/uuid"

	platform "horsebox_backend/platform/events"
)

// LeadCreated is published when a configurator submission becomes a lead.
type LeadCreated struct {
	platform.BaseEvent
	LeadID           uuid.UUID
	Reference        string
	SessionID        string
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	ModelName        string
	TotalIncVatPence int64
	ShareURL         string
}

// EventName returns the event identifier.
func (LeadCreated) EventName() string { return "lead.created" }

// LeadFollowUpSent is published when the scheduled follow-up email goes out.
type LeadFollowUpSent struct {
	platform.BaseEvent
	Reference     string
	CustomerEmail string
}

// EventName returns the event identifier.
func (LeadFollowUpSent) EventName() string { return "lead.followup_sent" }
