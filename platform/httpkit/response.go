// Package httpkit provides HTTP response helpers and middleware shared
// by every module.
package httpkit

import (
	"net/http"

	"pago_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

// OK writes a 200 response with the given payload.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// NoContent writes a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes an error response with a consistent shape.
func Error(c *gin.Context, status int, message string, details interface{}) {
	body := gin.H{"error": message}
	if details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}

// HandleError maps a domain error to an HTTP response. Returns true
// when err was non-nil and a response has been written.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if appErr, ok := err.(*apperr.Error); ok {
		body := gin.H{"error": appErr.Message}
		if appErr.Code != "" {
			body["code"] = appErr.Code
		}
		if appErr.Details != nil {
			body["details"] = appErr.Details
		}
		c.JSON(appErr.HTTPStatus(), body)
		return true
	}

	Error(c, http.StatusInternalServerError, "erro interno", nil)
	return true
}
