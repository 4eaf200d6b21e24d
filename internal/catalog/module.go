// Package catalog provides the catalog bounded context module.
package catalog

import (
	"horsebox_backend/internal/catalog/handler"
	"horsebox_backend/internal/catalog/repository"
	"horsebox_backend/internal/catalog/service"
	apphttp "horsebox_backend/internal/http"
	"horsebox_backend/platform/logger"
	"horsebox_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/catalog/models", m.handler.ListModels)
	ctx.V1.GET("/catalog/models/:slug", m.handler.GetModelBySlug)
	ctx.V1.GET("/catalog/models/:slug/options", m.handler.ListModelOptions)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
