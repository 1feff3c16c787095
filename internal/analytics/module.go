package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	nethttp "net/http"

	"pago_backend/internal/http"
	"pago_backend/platform/httpkit"
	"pago_backend/platform/logger"
	"pago_backend/platform/ratelimit"
	"pago_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Module wires the analytics feature.
type Module struct {
	repo     *Repository
	validate *validator.Validator
	log      *logger.Logger
}

// NewModule builds the analytics module.
func NewModule(pool *pgxpool.Pool, validate *validator.Validator, log *logger.Logger) *Module {
	return &Module{repo: NewRepository(pool), validate: validate, log: log}
}

// Name implements http.Module.
func (m *Module) Name() string { return "analytics" }

// RegisterRoutes implements http.Module.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	ctx.V1.POST("/events/page-view", m.recordPageView)
	ctx.Admin.GET("/analytics/summary", m.summary)
}

type pageViewRequest struct {
	Path     string `json:"path" validate:"required,max=512"`
	Referrer string `json:"referrer" validate:"omitempty,max=1024"`
	Locale   string `json:"locale" validate:"omitempty,max=16"`
}

// recordPageView handles the public beacon. Client addresses are
// stored only as a hash, the dashboard needs uniqueness, not identity.
func (m *Module) recordPageView(c *gin.Context) {
	var req pageViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, nethttp.StatusBadRequest, "requisição inválida", nil)
		return
	}
	if violation := validator.FirstViolation(m.validate.Struct(req)); violation != nil {
		httpkit.Error(c, nethttp.StatusBadRequest, violation.Reason, violation)
		return
	}

	digest := sha256.Sum256([]byte(ratelimit.ClientIP(c)))
	view := PageView{
		Path:     req.Path,
		Referrer: req.Referrer,
		Locale:   req.Locale,
		IPHash:   hex.EncodeToString(digest[:]),
	}

	if err := m.repo.RecordPageView(c.Request.Context(), view); err != nil {
		// A lost beacon is not worth a client-visible failure.
		m.log.DatabaseError("analytics.record_page_view", err)
	}
	httpkit.OK(c, gin.H{"recorded": true})
}

func (m *Module) summary(c *gin.Context) {
	summary, err := m.repo.Summarize(c.Request.Context())
	if err != nil {
		m.log.DatabaseError("analytics.summary", err)
		httpkit.Error(c, nethttp.StatusInternalServerError, "não foi possível carregar o resumo", nil)
		return
	}
	httpkit.OK(c, summary)
}
