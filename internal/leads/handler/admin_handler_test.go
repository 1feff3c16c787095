package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pago_backend/internal/leads/domain"
	"pago_backend/internal/leads/service"
	"pago_backend/platform/events"
	"pago_backend/platform/logger"
	"pago_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newAdminRouter(t *testing.T) (*gin.Engine, *fakeStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newFakeStore()
	svc := service.New(store, events.NewBus(), logger.New("test"))
	h := NewAdminHandler(svc, validator.New())

	r := gin.New()
	admin := r.Group("/api/v1/admin/leads")
	admin.GET("", h.List)
	admin.GET("/export.csv", h.ExportCSV)
	admin.GET("/:id", h.Get)
	admin.PATCH("/:id/status", h.UpdateStatus)
	admin.DELETE("/:id", h.Delete)
	return r, store
}

func seedLead(t *testing.T, store *fakeStore) *domain.Lead {
	t.Helper()
	lead, err := store.Create(context.Background(),
		domain.NewSubmission("Maria Silva", "maria@example.com", "", "olá", "site"))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return lead
}

func TestAdminUpdateStatus(t *testing.T) {
	r, store := newAdminRouter(t)
	lead := seedLead(t, store)

	req := httptest.NewRequest(http.MethodPatch,
		"/api/v1/admin/leads/"+lead.ID.String()+"/status",
		strings.NewReader(`{"status":"contacted"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if store.leads[lead.ID].Status != domain.StatusContacted {
		t.Fatalf("lead status = %q", store.leads[lead.ID].Status)
	}
}

func TestAdminUpdateStatusRejectsUnknown(t *testing.T) {
	r, store := newAdminRouter(t)
	lead := seedLead(t, store)

	req := httptest.NewRequest(http.MethodPatch,
		"/api/v1/admin/leads/"+lead.ID.String()+"/status",
		strings.NewReader(`{"status":"vip"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestAdminGetUnknownLead(t *testing.T) {
	r, _ := newAdminRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/leads/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestAdminDelete(t *testing.T) {
	r, store := newAdminRouter(t)
	lead := seedLead(t, store)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/leads/"+lead.ID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if _, ok := store.leads[lead.ID]; ok {
		t.Fatal("lead still present after delete")
	}
}

func TestAdminExportCSV(t *testing.T) {
	r, store := newAdminRouter(t)
	seedLead(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/leads/export.csv", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q", ct)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "id,name,email,phone,message,source,status,created_at") {
		t.Fatalf("missing csv header: %s", body)
	}
	if !strings.Contains(body, "maria@example.com") {
		t.Fatalf("missing lead row: %s", body)
	}
}

func TestAdminListPagination(t *testing.T) {
	r, store := newAdminRouter(t)
	seedLead(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/leads?page=0&pageSize=1000", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"page":1`) {
		t.Fatalf("page not clamped to 1: %s", body)
	}
	if !strings.Contains(body, `"pageSize":100`) {
		t.Fatalf("pageSize not clamped to 100: %s", body)
	}
}
