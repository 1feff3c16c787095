package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"pago_backend/platform/config"
	"pago_backend/platform/httpkit"
	"pago_backend/platform/logger"
	"pago_backend/platform/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRouter builds the engine with the defensive pipeline applied in
// order: recovery, request log, CORS, security headers, body limit,
// input sanitizer, then the general rate limit tier on /api.
func NewRouter(cfg *config.Config, log *logger.Logger, limiter *ratelimit.Limiter, pool *pgxpool.Pool, modules []Module) *gin.Engine {
	if strings.EqualFold(cfg.Env, "production") {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestLogger(log))
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(httpkit.SecurityHeaders(httpkit.SecurityHeadersConfig{
		AssetOrigins: cfg.AssetOrigins,
		Production:   strings.EqualFold(cfg.Env, "production"),
	}))
	engine.Use(httpkit.BodySizeLimit(cfg.MaxBodyBytes, cfg.MaxFileSize))
	engine.Use(httpkit.SanitizeInput())

	engine.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.Use(limiter.General(cfg.RateLimitGeneral))

	v1 := api.Group("/v1")

	authGroup := v1.Group("/auth")
	authGroup.Use(limiter.Auth(cfg.RateLimitAuth))

	admin := v1.Group("/admin")
	admin.Use(httpkit.AuthRequired(cfg.JWTAccessSecret))

	ctx := &RouterContext{
		Engine:  engine,
		V1:      v1,
		Admin:   admin,
		Auth:    authGroup,
		Strict:  limiter.Strict(cfg.RateLimitStrict),
		Limiter: limiter,
		Config:  cfg,
	}

	for _, module := range modules {
		module.RegisterRoutes(ctx)
		log.Debug("module registered", "module", module.Name())
	}

	return engine
}
