package transport

import (
	"github.com/google/uuid"

	"horsebox_backend/internal/configurator/domain"
)

type LeadResponse struct {
	ID               uuid.UUID `json:"id"`
	Reference        string    `json:"reference"`
	SessionID        string    `json:"sessionId"`
	CustomerName     string    `json:"customerName"`
	CustomerEmail    string    `json:"customerEmail"`
	CustomerPhone    string    `json:"customerPhone"`
	AgentName        *string   `json:"agentName,omitempty"`
	ModelSlug        string    `json:"modelSlug"`
	ModelName        string    `json:"modelName"`
	TotalIncVatPence int64     `json:"totalIncVatPence"`
	Status           string    `json:"status"`
	ShareURL         string    `json:"shareUrl"`
	FollowUpSentAt   *string   `json:"followUpSentAt,omitempty"`
	CreatedAt        string    `json:"createdAt"`
	UpdatedAt        string    `json:"updatedAt"`
}

type LeadListResponse struct {
	Items      []LeadResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

type ListLeadsRequest struct {
	Search   string `form:"search" validate:"max=100"`
	Status   string `form:"status" validate:"omitempty,oneof=new contacted closed"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// SharedConfigurationResponse is the public share-link view of a submitted
// configuration.
type SharedConfigurationResponse struct {
	Reference     string           `json:"reference"`
	ModelName     string           `json:"modelName"`
	Configuration *domain.Snapshot `json:"configuration"`
	CreatedAt     string           `json:"createdAt"`
}
