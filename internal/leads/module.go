// Package leads bundles lead intake and administration.
package leads

import (
	"pago_backend/internal/http"
	"pago_backend/internal/leads/handler"
	"pago_backend/internal/leads/repository"
	"pago_backend/internal/leads/service"
	"pago_backend/platform/events"
	"pago_backend/platform/logger"
	"pago_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module wires the leads feature.
type Module struct {
	public *handler.PublicHandler
	admin  *handler.AdminHandler
}

// NewModule builds the leads module with its repository and service.
func NewModule(pool *pgxpool.Pool, bus events.Bus, validate *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	return &Module{
		public: handler.NewPublicHandler(svc, validate, log),
		admin:  handler.NewAdminHandler(svc, validate),
	}
}

// Name implements http.Module.
func (m *Module) Name() string { return "leads" }

// RegisterRoutes implements http.Module.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	ctx.V1.POST("/leads", ctx.Strict, m.public.Submit)

	admin := ctx.Admin.Group("/leads")
	admin.GET("", m.admin.List)
	admin.GET("/export.csv", m.admin.ExportCSV)
	admin.GET("/:id", m.admin.Get)
	admin.PATCH("/:id/status", m.admin.UpdateStatus)
	admin.DELETE("/:id", m.admin.Delete)
}
