package httpkit

import (
	"net/http"
	"strings"
	"time"

	"pago_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	ContextAdminIDKey    = "admin_id"
	ContextAdminEmailKey = "admin_email"
)

// RequestLogger logs every request after it completes.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.HTTPRequest(
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
		)
	}
}

// AuthRequired validates the bearer token and stores the admin
// identity on the context. Only access tokens are accepted here,
// refresh tokens travel in the cookie and never reach this check.
func AuthRequired(accessSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(c)
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(accessSecret), nil
		})
		if err != nil || !token.Valid {
			unauthorized(c)
			return
		}

		if tokenType, _ := claims["type"].(string); tokenType != "access" {
			unauthorized(c)
			return
		}

		adminID, _ := claims["sub"].(string)
		if adminID == "" {
			unauthorized(c)
			return
		}

		c.Set(ContextAdminIDKey, adminID)
		if email, ok := claims["email"].(string); ok {
			c.Set(ContextAdminEmailKey, email)
		}
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "não autorizado",
	})
}

// AdminID returns the authenticated admin id from the context.
func AdminID(c *gin.Context) string {
	return c.GetString(ContextAdminIDKey)
}
