// Package configurator provides the configurator bounded context module: the
// step flow, pricing, payment schedule and session persistence behind the
// build-your-horsebox experience.
package configurator

import (
	"horsebox_backend/internal/configurator/domain"
	"horsebox_backend/internal/configurator/handler"
	"horsebox_backend/internal/configurator/service"
	apphttp "horsebox_backend/internal/http"
	"horsebox_backend/platform/config"
	"horsebox_backend/platform/logger"
	"horsebox_backend/platform/validator"
)

// Module is the configurator bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the configurator module. Catalog and lead
// capture are injected as ports so the module wires against interfaces.
func NewModule(sessions service.SessionStore, catalog service.CatalogReader, leads service.LeadSubmitter, pkg *domain.PackageDefinition, cfg config.ConfiguratorConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(sessions, catalog, leads, pkg, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "configurator"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts configurator routes on the provided router context.
// Session creation and submission carry the stricter rate limit.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	sessions := ctx.V1.Group("/configurator/sessions")

	sessions.POST("", ctx.SubmitRateLimiter.RateLimit(), m.handler.CreateSession)
	sessions.GET("/:id", m.handler.GetSession)
	sessions.PUT("/:id/model", m.handler.SetModel)
	sessions.PUT("/:id/chassis-cost", m.handler.SetChassisCost)
	sessions.PUT("/:id/deposit", m.handler.SetDeposit)
	sessions.PUT("/:id/color", m.handler.SetColor)
	sessions.PATCH("/:id/customer", m.handler.UpdateCustomer)
	sessions.PUT("/:id/package", m.handler.SetPackage)
	sessions.POST("/:id/options", m.handler.AddOption)
	sessions.PUT("/:id/options/:slug", m.handler.UpdateOptionQuantity)
	sessions.DELETE("/:id/options/:slug", m.handler.RemoveOption)
	sessions.POST("/:id/advance", m.handler.Advance)
	sessions.POST("/:id/back", m.handler.Back)
	sessions.POST("/:id/reset", m.handler.ResetSession)
	sessions.GET("/:id/summary", m.handler.Summary)
	sessions.POST("/:id/submit", ctx.SubmitRateLimiter.RateLimit(), m.handler.Submit)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
