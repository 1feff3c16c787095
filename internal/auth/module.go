package auth

import (
	"pago_backend/internal/http"
	"pago_backend/platform/config"
	"pago_backend/platform/httpkit"
	"pago_backend/platform/logger"
	"pago_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module wires admin authentication.
type Module struct {
	handler *Handler
	cfg     *config.Config
}

// NewModule builds the auth module.
func NewModule(pool *pgxpool.Pool, cfg *config.Config, validate *validator.Validator, log *logger.Logger) *Module {
	repo := NewRepository(pool)
	svc := NewService(repo, cfg, log)
	return &Module{handler: NewHandler(svc, cfg, validate), cfg: cfg}
}

// Name implements http.Module.
func (m *Module) Name() string { return "auth" }

// RegisterRoutes implements http.Module.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	ctx.Auth.POST("/login", m.handler.Login)
	ctx.Auth.POST("/refresh", m.handler.Refresh)
	ctx.Auth.POST("/logout", m.handler.Logout)
	ctx.Auth.GET("/me", httpkit.AuthRequired(m.cfg.JWTAccessSecret), m.handler.Me)
}
