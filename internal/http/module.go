// Package http wires modules into a single gin engine.
package http

import (
	"pago_backend/platform/config"
	"pago_backend/platform/ratelimit"

	"github.com/gin-gonic/gin"
)

// Module is implemented by every feature module that exposes routes.
type Module interface {
	// Name identifies the module in logs.
	Name() string
	// RegisterRoutes attaches the module's routes to the router.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext carries the route groups and shared middleware a
// module needs to register itself.
type RouterContext struct {
	Engine *gin.Engine
	// V1 is the public /api/v1 group (general tier).
	V1 *gin.RouterGroup
	// Admin is the /api/v1/admin group behind bearer auth.
	Admin *gin.RouterGroup
	// Auth is the /api/v1/auth group (auth tier).
	Auth *gin.RouterGroup
	// Strict applies the strict rate limit tier to a route.
	Strict gin.HandlerFunc
	// Limiter is available for modules with bespoke tier needs.
	Limiter *ratelimit.Limiter
	Config  *config.Config
}
