package repository

import (
	"context"

	"github.com/google/uuid"
)

// Lead represents a captured configurator submission.
type Lead struct {
	ID               uuid.UUID `db:"id"`
	Reference        string    `db:"reference"`
	SessionID        string    `db:"session_id"`
	CustomerName     string    `db:"customer_name"`
	CustomerEmail    string    `db:"customer_email"`
	CustomerPhone    string    `db:"customer_phone"`
	AgentName        *string   `db:"agent_name"`
	ModelSlug        string    `db:"model_slug"`
	ModelName        string    `db:"model_name"`
	TotalIncVatPence int64     `db:"total_inc_vat_pence"`
	Configuration    []byte    `db:"configuration"`
	Status           string    `db:"status"`
	FollowUpSentAt   *string   `db:"follow_up_sent_at"`
	CreatedAt        string    `db:"created_at"`
	UpdatedAt        string    `db:"updated_at"`
}

// CreateLeadParams contains data for creating a lead.
type CreateLeadParams struct {
	Reference        string
	SessionID        string
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	AgentName        *string
	ModelSlug        string
	ModelName        string
	TotalIncVatPence int64
	Configuration    []byte
}

// ListLeadsParams defines filters for listing leads.
type ListLeadsParams struct {
	Search string
	Status string
	Offset int
	Limit  int
}

// Repository defines lead storage operations.
type Repository interface {
	CreateLead(ctx context.Context, params CreateLeadParams) (Lead, error)
	GetLeadByReference(ctx context.Context, reference string) (Lead, error)
	ListLeads(ctx context.Context, params ListLeadsParams) ([]Lead, int, error)
	NextReferenceSequence(ctx context.Context) (int64, error)
	MarkFollowUpSent(ctx context.Context, reference string) error
}
