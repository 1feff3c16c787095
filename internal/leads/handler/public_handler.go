// Package handler exposes the leads HTTP endpoints.
package handler

import (
	"net/http"

	"pago_backend/internal/leads/domain"
	"pago_backend/internal/leads/service"
	"pago_backend/internal/leads/transport"
	"pago_backend/platform/httpkit"
	"pago_backend/platform/logger"
	"pago_backend/platform/ratelimit"
	"pago_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Success copy shared by accepted and discarded submissions. The two
// outcomes must be indistinguishable from outside.
const submitSuccessMessage = "inscrição recebida, entraremos em contato em breve"

// PublicHandler serves the unauthenticated lead intake.
type PublicHandler struct {
	service  *service.Service
	validate *validator.Validator
	log      *logger.Logger
}

// NewPublicHandler creates a PublicHandler.
func NewPublicHandler(svc *service.Service, validate *validator.Validator, log *logger.Logger) *PublicHandler {
	return &PublicHandler{service: svc, validate: validate, log: log}
}

// Submit handles POST /api/v1/leads.
func (h *PublicHandler) Submit(c *gin.Context) {
	var req transport.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "requisição inválida", nil)
		return
	}

	if violation := validator.FirstViolation(h.validate.Struct(req)); violation != nil {
		httpkit.Error(c, http.StatusBadRequest, violation.Reason, violation)
		return
	}

	if req.Source == "" {
		req.Source = "site"
	}

	outcome, err := h.service.Submit(c.Request.Context(), service.SubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
		Website: req.Website,
		Source:  req.Source,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	if outcome == domain.OutcomeSilentlyDiscarded {
		h.log.BotDetected(ratelimit.ClientIP(c), c.Request.URL.Path)
	}

	httpkit.OK(c, transport.SubmitResponse{
		Success: true,
		Message: submitSuccessMessage,
	})
}
