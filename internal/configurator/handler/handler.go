package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"horsebox_backend/internal/configurator/service"
	"horsebox_backend/internal/configurator/transport"
	"horsebox_backend/platform/httpkit"
	"horsebox_backend/platform/validator"
)

// Handler handles HTTP requests for configurator sessions.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidSessionID = "invalid session id"
)

// New creates a new configurator handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// CreateSession starts a new session.
// POST /api/v1/configurator/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	result, err := h.svc.CreateSession(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// GetSession returns the session state.
// GET /api/v1/configurator/sessions/:id
func (h *Handler) GetSession(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetSession(c.Request.Context(), sessionID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SetModel selects the model.
// PUT /api/v1/configurator/sessions/:id/model
func (h *Handler) SetModel(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req transport.SetModelRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.SetModel(c.Request.Context(), sessionID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SetChassisCost sets the chassis cost.
// PUT /api/v1/configurator/sessions/:id/chassis-cost
func (h *Handler) SetChassisCost(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req transport.SetChassisCostRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.SetChassisCost(c.Request.Context(), sessionID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SetDeposit sets the deposit.
// PUT /api/v1/configurator/sessions/:id/deposit
func (h *Handler) SetDeposit(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req transport.SetDepositRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.SetDeposit(c.Request.Context(), sessionID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SetColor sets the exterior color.
// PUT /api/v1/configurator/sessions/:id/color
func (h *Handler) SetColor(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req transport.SetColorRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.SetColor(c.Request.Context(), sessionID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateCustomer merges customer contact fields.
// PATCH /api/v1/configurator/sessions/:id/customer
func (h *Handler) UpdateCustomer(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req transport.UpdateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.UpdateCustomer(c.Request.Context(), sessionID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SetPackage enables or disables the Pioneer Package.
// PUT /api/v1/configurator/sessions/:id/package
func (h *Handler) SetPackage(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req transport.SetPackageRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.SetPackage(c.Request.Context(), sessionID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AddOption adds an option to the session.
// POST /api/v1/configurator/sessions/:id/options
func (h *Handler) AddOption(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req transport.AddOptionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.AddOption(c.Request.Context(), sessionID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateOptionQuantity updates a selected option's quantity.
// PUT /api/v1/configurator/sessions/:id/options/:slug
func (h *Handler) UpdateOptionQuantity(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req transport.UpdateOptionQuantityRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.svc.UpdateOptionQuantity(c.Request.Context(), sessionID, c.Param("slug"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// RemoveOption removes an option from the session.
// DELETE /api/v1/configurator/sessions/:id/options/:slug
func (h *Handler) RemoveOption(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.svc.RemoveOption(c.Request.Context(), sessionID, c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Advance moves the session forward one step.
// POST /api/v1/configurator/sessions/:id/advance
func (h *Handler) Advance(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.svc.Advance(c.Request.Context(), sessionID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Back moves the session back one step.
// POST /api/v1/configurator/sessions/:id/back
func (h *Handler) Back(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.svc.Back(c.Request.Context(), sessionID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ResetSession restores the session to its initial state.
// POST /api/v1/configurator/sessions/:id/reset
func (h *Handler) ResetSession(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.svc.ResetSession(c.Request.Context(), sessionID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Summary returns the submission view of the session.
// GET /api/v1/configurator/sessions/:id/summary
func (h *Handler) Summary(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.svc.Summary(c.Request.Context(), sessionID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Submit turns the session into a sales lead.
// POST /api/v1/configurator/sessions/:id/submit
func (h *Handler) Submit(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), sessionID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

func (h *Handler) sessionID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSessionID, nil)
		return "", false
	}
	return id.String(), true
}

func (h *Handler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return false
	}
	return true
}
