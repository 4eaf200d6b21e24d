package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"horsebox_backend/internal/catalog/service"
	"horsebox_backend/internal/catalog/transport"
	"horsebox_backend/platform/httpkit"
	"horsebox_backend/platform/validator"
)

// Handler handles HTTP requests for catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListModels retrieves the model range.
// GET /api/v1/catalog/models
func (h *Handler) ListModels(c *gin.Context) {
	result, err := h.svc.ListModels(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetModelBySlug retrieves a model by slug.
// GET /api/v1/catalog/models/:slug
func (h *Handler) GetModelBySlug(c *gin.Context) {
	result, err := h.svc.GetModelBySlug(c.Request.Context(), c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListModelOptions retrieves the options available on a model.
// GET /api/v1/catalog/models/:slug/options
func (h *Handler) ListModelOptions(c *gin.Context) {
	var req transport.ListOptionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ListOptionsForModel(c.Request.Context(), c.Param("slug"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
