package httpkit

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BodySizeLimit rejects mutating requests whose body exceeds the
// limit: jsonMax for regular payloads, uploadMax for multipart file
// uploads. The Content-Length header is checked up front for an early
// 413, and the body reader is wrapped so chunked requests are cut off
// at the same ceiling. GET, HEAD and OPTIONS pass through untouched.
func BodySizeLimit(jsonMax, uploadMax int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		limit := jsonMax
		if strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			limit = uploadMax
		}

		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "corpo da requisição excede o limite permitido",
				"code":  "BODY_TOO_LARGE",
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
