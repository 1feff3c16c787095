package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"pago_backend/internal/leads/domain"
	"pago_backend/internal/leads/service"
	"pago_backend/internal/leads/transport"
	"pago_backend/platform/httpkit"
	"pago_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler serves the back-office lead endpoints.
type AdminHandler struct {
	service  *service.Service
	validate *validator.Validator
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc *service.Service, validate *validator.Validator) *AdminHandler {
	return &AdminHandler{service: svc, validate: validate}
}

// List handles GET /api/v1/admin/leads.
func (h *AdminHandler) List(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "intervalo de datas inválido", nil)
		return
	}

	filter := domain.ListFilter{
		Status:   c.Query("status"),
		Source:   c.Query("source"),
		Search:   c.Query("search"),
		DateFrom: from,
		DateTo:   to,
		Page:     parseIntQuery(c, "page", 1),
		PageSize: parseIntQuery(c, "pageSize", 20),
	}
	filter.Normalize()

	leads, total, err := h.service.List(c.Request.Context(), filter)
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.LeadResponse, 0, len(leads))
	for i := range leads {
		items = append(items, transport.FromLead(&leads[i]))
	}

	httpkit.OK(c, transport.ListResponse{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
}

// Get handles GET /api/v1/admin/leads/:id.
func (h *AdminHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	lead, err := h.service.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromLead(lead))
}

// UpdateStatus handles PATCH /api/v1/admin/leads/:id/status.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "requisição inválida", nil)
		return
	}
	if violation := validator.FirstViolation(h.validate.Struct(req)); violation != nil {
		httpkit.Error(c, http.StatusBadRequest, violation.Reason, violation)
		return
	}

	lead, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromLead(lead))
}

// Delete handles DELETE /api/v1/admin/leads/:id.
func (h *AdminHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.service.Delete(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// ExportCSV handles GET /api/v1/admin/leads/export.csv, streaming the
// file instead of buffering it.
func (h *AdminHandler) ExportCSV(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "intervalo de datas inválido", nil)
		return
	}

	leads, err := h.service.Export(c.Request.Context(), from, to)
	if httpkit.HandleError(c, err) {
		return
	}

	filename := fmt.Sprintf("leads-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write([]string{"id", "name", "email", "phone", "message", "source", "status", "created_at"})
	for i := range leads {
		lead := &leads[i]
		_ = writer.Write([]string{
			lead.ID.String(),
			lead.Name,
			lead.Email,
			lead.Phone,
			lead.Message,
			lead.Source,
			lead.Status,
			lead.CreatedAt.Format(time.RFC3339),
		})
	}
	writer.Flush()
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "id inválido", nil)
		return uuid.Nil, false
	}
	return id, true
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// parseDateRange reads optional from/to query params, accepting plain
// dates or RFC 3339 timestamps. A plain "to" date covers its whole day.
func parseDateRange(c *gin.Context) (*time.Time, *time.Time, error) {
	parse := func(raw string, endOfDay bool) (*time.Time, error) {
		if raw == "" {
			return nil, nil
		}
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return &t, nil
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, err
		}
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t, nil
	}

	from, err := parse(c.Query("from"), false)
	if err != nil {
		return nil, nil, err
	}
	to, err := parse(c.Query("to"), true)
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
