package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pago_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

func newTierRouter(t *testing.T, limit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	limiter := NewLimiter(newTestMemoryStore(), 15*time.Minute, logger.New("test"))
	r := gin.New()
	r.POST("/leads", limiter.Strict(limit), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func doPost(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/leads", nil)
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStrictTierAllowsTwentyThenRejects(t *testing.T) {
	r := newTierRouter(t, 20)

	for i := 1; i <= 20; i++ {
		w := doPost(r, "203.0.113.7")
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}

	w := doPost(r, "203.0.113.7")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("21st request: status = %d, want 429", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, CodeStrict) {
		t.Fatalf("21st request body missing code %q: %s", CodeStrict, body)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After header")
	}
	if w.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Fatalf("remaining = %q, want 0", w.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestTierHeadersOnSuccess(t *testing.T) {
	r := newTierRouter(t, 20)

	w := doPost(r, "203.0.113.8")
	if w.Header().Get("X-RateLimit-Limit") != "20" {
		t.Fatalf("limit header = %q", w.Header().Get("X-RateLimit-Limit"))
	}
	if w.Header().Get("X-RateLimit-Remaining") != "19" {
		t.Fatalf("remaining header = %q", w.Header().Get("X-RateLimit-Remaining"))
	}
	if w.Header().Get("X-RateLimit-Reset") == "" {
		t.Fatal("missing reset header")
	}
}

func TestTierIsolatesClients(t *testing.T) {
	r := newTierRouter(t, 1)

	if w := doPost(r, "198.51.100.1"); w.Code != http.StatusOK {
		t.Fatalf("first client: %d", w.Code)
	}
	if w := doPost(r, "198.51.100.1"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("first client second request: %d", w.Code)
	}
	if w := doPost(r, "198.51.100.2"); w.Code != http.StatusOK {
		t.Fatalf("second client blocked: %d", w.Code)
	}
}
