package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pago_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func notFoundErr() error {
	return apperr.NotFound("lead não encontrado")
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders(SecurityHeadersConfig{
		AssetOrigins: []string{"https://cdn.example.com"},
		Production:   true,
	}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	checks := map[string]string{
		"X-Frame-Options":           "DENY",
		"X-Content-Type-Options":    "nosniff",
		"X-XSS-Protection":          "1; mode=block",
		"Referrer-Policy":           "strict-origin-when-cross-origin",
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	}
	for header, want := range checks {
		if got := w.Header().Get(header); got != want {
			t.Fatalf("%s = %q, want %q", header, got, want)
		}
	}

	csp := w.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "default-src 'self' https://cdn.example.com") {
		t.Fatalf("csp missing asset origin: %s", csp)
	}
	if !strings.Contains(csp, "frame-ancestors 'none'") {
		t.Fatalf("csp missing frame-ancestors: %s", csp)
	}
}

func TestSecurityHeadersNoHSTSOutsideProduction(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders(SecurityHeadersConfig{}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Header().Get("Strict-Transport-Security") != "" {
		t.Fatal("HSTS must not be set outside production")
	}
}

func TestBodySizeLimitRejectsOversized(t *testing.T) {
	r := gin.New()
	r.Use(BodySizeLimit(64, 1024))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	big := strings.NewReader(strings.Repeat("a", 128))
	req := httptest.NewRequest(http.MethodPost, "/", big)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", w.Code)
	}
	if !strings.Contains(w.Body.String(), "BODY_TOO_LARGE") {
		t.Fatalf("missing code in body: %s", w.Body.String())
	}
}

func TestBodySizeLimitSkipsGET(t *testing.T) {
	r := gin.New()
	r.Use(BodySizeLimit(1, 1024))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestBodySizeLimitAllowsSmallBody(t *testing.T) {
	r := gin.New()
	r.Use(BodySizeLimit(1024, 4096))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"ok":true}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestSanitizeInputCleansJSONBody(t *testing.T) {
	r := gin.New()
	r.Use(SanitizeInput())

	var got map[string]any
	r.POST("/", func(c *gin.Context) {
		if err := c.ShouldBindJSON(&got); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	body := `{"name":"<script>alert(1)</script>Maria","count":3}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got["name"] != "Maria" {
		t.Fatalf("name = %q, want Maria", got["name"])
	}
	if got["count"] != float64(3) {
		t.Fatalf("count = %v, want 3", got["count"])
	}
}

func TestSanitizeInputCleansQueryAndParams(t *testing.T) {
	r := gin.New()
	r.Use(SanitizeInput())

	var gotQuery, gotParam string
	r.GET("/items/:id", func(c *gin.Context) {
		gotQuery = c.Query("q")
		gotParam = c.Param("id")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/items/abc?q=%3Cscript%3Ex%3C%2Fscript%3Eterm", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if gotQuery != "term" {
		t.Fatalf("query = %q, want term", gotQuery)
	}
	if gotParam != "abc" {
		t.Fatalf("param = %q, want abc", gotParam)
	}
}

func TestSanitizeInputLeavesInvalidJSONForBinding(t *testing.T) {
	r := gin.New()
	r.Use(SanitizeInput())
	r.POST("/", func(c *gin.Context) {
		var v map[string]any
		if err := c.ShouldBindJSON(&v); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHandleErrorMapsAppErrors(t *testing.T) {
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		HandleError(c, notFoundErr())
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "lead não encontrado" {
		t.Fatalf("error = %v", body["error"])
	}
}
