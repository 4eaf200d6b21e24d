package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"horsebox_backend/internal/leads/service"
	"horsebox_backend/internal/leads/transport"
	"horsebox_backend/platform/httpkit"
	"horsebox_backend/platform/validator"
)

// Handler handles HTTP requests for leads and share links.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new leads handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListLeads retrieves leads.
// GET /api/v1/leads
func (h *Handler) ListLeads(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ListLeads(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetLeadByReference retrieves a lead by reference.
// GET /api/v1/leads/:reference
func (h *Handler) GetLeadByReference(c *gin.Context) {
	result, err := h.svc.GetLeadByReference(c.Request.Context(), c.Param("reference"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SharedConfiguration returns the public share view of a submitted build.
// GET /api/v1/share/:reference
func (h *Handler) SharedConfiguration(c *gin.Context) {
	result, err := h.svc.SharedConfiguration(c.Request.Context(), c.Param("reference"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ShareQR returns a PNG QR code pointing at the share link.
// GET /api/v1/share/:reference/qr
func (h *Handler) ShareQR(c *gin.Context) {
	png, err := h.svc.ShareQR(c.Request.Context(), c.Param("reference"))
	if httpkit.HandleError(c, err) {
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
