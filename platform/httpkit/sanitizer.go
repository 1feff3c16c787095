package httpkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"pago_backend/platform/sanitize"

	"github.com/gin-gonic/gin"
)

// SanitizeInput cleans every string the request carries before any
// handler binds it: route params, query values and JSON body leaves.
// Bodies that are not valid JSON pass through untouched and fail in
// binding instead.
func SanitizeInput() gin.HandlerFunc {
	return func(c *gin.Context) {
		for i, param := range c.Params {
			c.Params[i].Value = sanitize.String(param.Value)
		}

		query := c.Request.URL.Query()
		changed := false
		for key, values := range query {
			for i, value := range values {
				cleaned := sanitize.String(value)
				if cleaned != value {
					values[i] = cleaned
					changed = true
				}
			}
			query[key] = values
		}
		if changed {
			c.Request.URL.RawQuery = query.Encode()
		}

		if hasJSONBody(c) {
			raw, err := io.ReadAll(c.Request.Body)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
					"error": "corpo da requisição excede o limite permitido",
					"code":  "BODY_TOO_LARGE",
				})
				return
			}

			var decoded any
			if json.Unmarshal(raw, &decoded) == nil {
				if cleaned, err := json.Marshal(sanitize.Value(decoded)); err == nil {
					raw = cleaned
				}
			}

			c.Request.Body = io.NopCloser(bytes.NewReader(raw))
			c.Request.ContentLength = int64(len(raw))
		}

		c.Next()
	}
}

func hasJSONBody(c *gin.Context) bool {
	switch c.Request.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return false
	}
	return strings.Contains(c.GetHeader("Content-Type"), "application/json")
}
