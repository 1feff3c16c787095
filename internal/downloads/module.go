package downloads

import (
	"pago_backend/internal/http"
	"pago_backend/internal/storage"
	"pago_backend/platform/config"
	"pago_backend/platform/logger"
	"pago_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module wires the downloads feature.
type Module struct {
	handler *Handler
}

// NewModule builds the downloads module. store may be nil when MinIO
// is not configured.
func NewModule(pool *pgxpool.Pool, store *storage.Client, cfg *config.Config, validate *validator.Validator, log *logger.Logger) *Module {
	repo := NewRepository(pool)
	svc := NewService(repo, store, cfg.DownloadsBucket, cfg.AppBaseURL, log)
	return &Module{handler: NewHandler(svc, validate)}
}

// Name implements http.Module.
func (m *Module) Name() string { return "downloads" }

// RegisterRoutes implements http.Module.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	ctx.V1.GET("/downloads", m.handler.ListPublished)
	ctx.V1.GET("/downloads/:id/qr", m.handler.QR)

	admin := ctx.Admin.Group("/downloads")
	admin.GET("", m.handler.ListAll)
	admin.POST("/presign", ctx.Strict, m.handler.Presign)
	admin.POST("", ctx.Strict, m.handler.Confirm)
	admin.POST("/upload", ctx.Strict, m.handler.DirectUpload)
	admin.PATCH("/:id", ctx.Strict, m.handler.Update)
	admin.DELETE("/:id", ctx.Strict, m.handler.Delete)
}
