package auth

import (
	"net/http"

	"pago_backend/platform/config"
	"pago_backend/platform/httpkit"
	"pago_backend/platform/ratelimit"
	"pago_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler serves the /auth endpoints.
type Handler struct {
	service  *Service
	cfg      config.AuthServiceConfig
	validate *validator.Validator
}

// NewHandler creates a Handler.
func NewHandler(service *Service, cfg config.AuthServiceConfig, validate *validator.Validator) *Handler {
	return &Handler{service: service, cfg: cfg, validate: validate}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type adminResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "requisição inválida", nil)
		return
	}
	if violation := validator.FirstViolation(h.validate.Struct(req)); violation != nil {
		httpkit.Error(c, http.StatusBadRequest, violation.Reason, violation)
		return
	}

	admin, pair, err := h.service.Login(c.Request.Context(), req.Email, req.Password, ratelimit.ClientIP(c))
	if httpkit.HandleError(c, err) {
		return
	}

	h.setRefreshCookie(c, pair)
	httpkit.OK(c, gin.H{
		"accessToken": pair.AccessToken,
		"admin":       adminResponse{ID: admin.ID, Email: admin.Email, DisplayName: admin.DisplayName},
	})
}

// Refresh handles POST /api/v1/auth/refresh.
func (h *Handler) Refresh(c *gin.Context) {
	cookie, err := c.Cookie(h.cfg.GetRefreshCookieName())
	if err != nil || cookie == "" {
		httpkit.Error(c, http.StatusUnauthorized, "sessão expirada", nil)
		return
	}

	admin, pair, svcErr := h.service.Refresh(c.Request.Context(), cookie, ratelimit.ClientIP(c))
	if httpkit.HandleError(c, svcErr) {
		return
	}

	h.setRefreshCookie(c, pair)
	httpkit.OK(c, gin.H{
		"accessToken": pair.AccessToken,
		"admin":       adminResponse{ID: admin.ID, Email: admin.Email, DisplayName: admin.DisplayName},
	})
}

// Logout handles POST /api/v1/auth/logout.
func (h *Handler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(h.cfg.GetRefreshCookieName()); err == nil && cookie != "" {
		h.service.Logout(c.Request.Context(), cookie, ratelimit.ClientIP(c))
	}
	h.clearRefreshCookie(c)
	httpkit.OK(c, gin.H{"success": true})
}

// Me handles GET /api/v1/auth/me.
func (h *Handler) Me(c *gin.Context) {
	adminID, err := uuid.Parse(httpkit.AdminID(c))
	if err != nil {
		httpkit.Error(c, http.StatusUnauthorized, "não autorizado", nil)
		return
	}

	admin, svcErr := h.service.Profile(c.Request.Context(), adminID)
	if httpkit.HandleError(c, svcErr) {
		return
	}
	httpkit.OK(c, adminResponse{ID: admin.ID, Email: admin.Email, DisplayName: admin.DisplayName})
}

func (h *Handler) setRefreshCookie(c *gin.Context, pair *TokenPair) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		h.cfg.GetRefreshCookieName(),
		pair.RefreshToken,
		int(h.cfg.GetRefreshTokenTTL().Seconds()),
		"/api/v1/auth",
		"",
		h.cfg.GetRefreshCookieSecure(),
		true,
	)
}

func (h *Handler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.GetRefreshCookieName(), "", -1, "/api/v1/auth", "", h.cfg.GetRefreshCookieSecure(), true)
}
