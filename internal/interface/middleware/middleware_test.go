package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Renanf68/nlw2-server/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeCounter struct {
	counts map[string]int
	err    error
}

func (f *fakeCounter) Incr(_ context.Context, key string, window time.Duration) (int, time.Duration, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	if f.counts == nil {
		f.counts = map[string]int{}
	}
	f.counts[key]++
	return f.counts[key], window, nil
}

func serve(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "203.0.113.7:5555"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	counter := &fakeCounter{}
	r := gin.New()
	r.Use(RealIP())
	r.POST("/api/classes", RateLimit(counter, 2, time.Minute, KeyByIPAndPath(), nil), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	for i := 0; i < 2; i++ {
		if w := serve(r, http.MethodPost, "/api/classes", nil); w.Code != http.StatusCreated {
			t.Fatalf("request %d: expected 201, got %d", i, w.Code)
		}
	}
	w := serve(r, http.MethodPost, "/api/classes", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") != "60" || w.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("unexpected headers %v", w.Header())
	}
	if _, ok := counter.counts["rl:path:/api/classes:ip:203.0.113.7"]; !ok {
		t.Errorf("unexpected keys %v", counter.counts)
	}

	// Another client has its own budget.
	if w := serve(r, http.MethodPost, "/api/classes", map[string]string{"X-Forwarded-For": "198.51.100.1"}); w.Code != http.StatusCreated {
		t.Errorf("expected separate budget per IP, got %d", w.Code)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	r := gin.New()
	r.POST("/x", RateLimit(&fakeCounter{err: errors.New("redis down")}, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	for i := 0; i < 3; i++ {
		if w := serve(r, http.MethodPost, "/x", nil); w.Code != http.StatusOK {
			t.Fatalf("expected fail-open, got %d", w.Code)
		}
	}
}

func TestPrivateOnly(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/debug", PrivateOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })

	if w := serve(r, http.MethodGet, "/debug", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected public client to be rejected, got %d", w.Code)
	}
	if w := serve(r, http.MethodGet, "/debug", map[string]string{"X-Forwarded-For": "10.0.0.3, 203.0.113.7"}); w.Code != http.StatusOK {
		t.Errorf("expected private client to pass, got %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := serve(r, http.MethodGet, "/", map[string]string{RequestIDHeader: "abc-123"})
	if w.Body.String() != "abc-123" || w.Header().Get(RequestIDHeader) != "abc-123" {
		t.Errorf("expected caller id to be kept, got body=%q header=%q", w.Body, w.Header().Get(RequestIDHeader))
	}

	w = serve(r, http.MethodGet, "/", map[string]string{RequestIDHeader: strings.Repeat("x", 65)})
	if got := w.Body.String(); len(got) != 36 {
		t.Errorf("expected generated uuid for oversized id, got %q", got)
	}
}

func TestAccessLog(t *testing.T) {
	r := gin.New()
	r.Use(AccessLog(helpers.NewNopLogger()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusTeapot) })
	if w := serve(r, http.MethodGet, "/", nil); w.Code != http.StatusTeapot {
		t.Errorf("expected handler status to pass through, got %d", w.Code)
	}
}
