// Package leads provides the lead-capture bounded context module.
package leads

import (
	apphttp "horsebox_backend/internal/http"
	"horsebox_backend/internal/leads/handler"
	"horsebox_backend/internal/leads/repository"
	"horsebox_backend/internal/leads/service"
	"horsebox_backend/platform/config"
	"horsebox_backend/platform/events"
	"horsebox_backend/platform/logger"
	"horsebox_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, notifier service.Notifier, scheduler service.FollowUpScheduler, cfg *config.Config, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, notifier, scheduler, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts lead and share routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/leads", m.handler.ListLeads)
	ctx.V1.GET("/leads/:reference", m.handler.GetLeadByReference)

	ctx.V1.GET("/share/:reference", m.handler.SharedConfiguration)
	ctx.V1.GET("/share/:reference/qr", m.handler.ShareQR)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
