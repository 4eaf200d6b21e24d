package transport

import "horsebox_backend/internal/configurator/domain"

// Requests

type SetModelRequest struct {
	ModelSlug string `json:"modelSlug" validate:"omitempty,max=100"`
}

type SetChassisCostRequest struct {
	ChassisCostPence int64 `json:"chassisCostPence" validate:"min=0"`
}

type SetDepositRequest struct {
	DepositPence int64 `json:"depositPence" validate:"min=0"`
}

type SetColorRequest struct {
	Color string `json:"color" validate:"max=100"`
}

type UpdateCustomerRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=320"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,phone,max=50"`
	AgentName *string `json:"agentName,omitempty" validate:"omitempty,max=200"`
}

type SetPackageRequest struct {
	Enabled bool   `json:"enabled"`
	Variant string `json:"variant" validate:"omitempty,max=50"`
}

type AddOptionRequest struct {
	OptionSlug string `json:"optionSlug" validate:"required,min=1,max=100"`
	Quantity   *int   `json:"quantity,omitempty"`
}

type UpdateOptionQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Responses

type SessionResponse struct {
	SessionID     string                `json:"sessionId"`
	Configuration *domain.Configuration `json:"configuration"`
}

type SummaryResponse struct {
	SessionID string           `json:"sessionId"`
	Summary   *domain.Snapshot `json:"summary"`
}

type SubmitResponse struct {
	Reference string `json:"reference"`
	ShareURL  string `json:"shareUrl"`
}
