package ratelimit

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pago_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// Limiter builds tier middlewares over a shared store and window.
type Limiter struct {
	store  Store
	window time.Duration
	log    *logger.Logger
}

// NewLimiter creates a Limiter.
func NewLimiter(store Store, window time.Duration, log *logger.Logger) *Limiter {
	return &Limiter{store: store, window: window, log: log}
}

// Tier returns middleware enforcing the given request budget. Store
// failures let the request through: availability over strictness.
func (l *Limiter) Tier(tier string, limit int, code string) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := ClientIP(c)
		key := fmt.Sprintf("ratelimit:%s:%s", tier, clientIP)

		count, ttl, err := l.store.Increment(c.Request.Context(), key, l.window)
		if err != nil {
			l.log.Warn("rate limit store error, allowing request", "tier", tier, "error", err)
			c.Next()
			return
		}

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		reset := time.Now().Add(ttl).Unix()

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset, 10))

		if count > int64(limit) {
			l.log.RateLimitExceeded(tier, clientIP, c.Request.URL.Path)
			c.Header("Retry-After", strconv.FormatInt(int64(ttl.Seconds())+1, 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "muitas requisições, tente novamente mais tarde",
				"code":  code,
			})
			return
		}

		c.Next()
	}
}

// General limits all API traffic.
func (l *Limiter) General(limit int) gin.HandlerFunc {
	return l.Tier(TierGeneral, limit, CodeGeneral)
}

// Strict limits abuse-sensitive endpoints (lead intake, chat, upload).
func (l *Limiter) Strict(limit int) gin.HandlerFunc {
	return l.Tier(TierStrict, limit, CodeStrict)
}

// Auth limits credential endpoints.
func (l *Limiter) Auth(limit int) gin.HandlerFunc {
	return l.Tier(TierAuth, limit, CodeAuth)
}

// ClientIP resolves the caller address, trusting proxy headers in the
// order a load balancer sets them.
func ClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		// First address is the originating client.
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.ClientIP()
}
