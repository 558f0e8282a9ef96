package middleware

import (
  "net/http"
  "net/http/httptest"
  "testing"
  "time"
  "github.com/gin-gonic/gin"
  "go.uber.org/zap"
  "github.com/centenniallife/wellness-backend/internal/logger"
)

func testLogger() *logger.Logger {
  return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func newLimitedRouter(limit int, window time.Duration) (*gin.Engine, *RateLimiter) {
  gin.SetMode(gin.TestMode)
  rl := NewRateLimiter(testLogger(), limit, window, nil)
  router := gin.New()
  router.Use(rl.Limit())
  router.GET("/ping", func(c *gin.Context) {
    c.String(http.StatusOK, "pong")
  })
  return router, rl
}

func doRequest(router *gin.Engine, ip string) *httptest.ResponseRecorder {
  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodGet, "/ping", nil)
  req.RemoteAddr = ip + ":12345"
  router.ServeHTTP(w, req)
  return w
}

func TestRateLimiterAllowsUnderLimit(t *testing.T) {
  router, rl := newLimitedRouter(3, time.Minute)
  defer rl.Stop()

  for i := 0; i < 3; i++ {
    w := doRequest(router, "10.0.0.1")
    if w.Code != http.StatusOK {
      t.Fatalf("request %d: status = %d, want 200", i+1, w.Code)
    }
  }

  w := doRequest(router, "10.0.0.1")
  if w.Code != http.StatusTooManyRequests {
    t.Fatalf("request over limit: status = %d, want 429", w.Code)
  }
  if w.Header().Get("Retry-After") == "" {
    t.Fatalf("429 response missing Retry-After header")
  }
}

func TestRateLimiterHeaders(t *testing.T) {
  router, rl := newLimitedRouter(5, time.Minute)
  defer rl.Stop()

  w := doRequest(router, "10.0.0.2")
  if got := w.Header().Get("X-RateLimit-Limit"); got != "5" {
    t.Fatalf("X-RateLimit-Limit = %q, want 5", got)
  }
  if got := w.Header().Get("X-RateLimit-Remaining"); got != "4" {
    t.Fatalf("X-RateLimit-Remaining = %q, want 4", got)
  }
  if w.Header().Get("X-RateLimit-Reset") == "" {
    t.Fatalf("X-RateLimit-Reset header missing")
  }
}

func TestRateLimiterIsolatesClients(t *testing.T) {
  router, rl := newLimitedRouter(1, time.Minute)
  defer rl.Stop()

  if w := doRequest(router, "10.0.0.3"); w.Code != http.StatusOK {
    t.Fatalf("first client first request: status = %d", w.Code)
  }
  if w := doRequest(router, "10.0.0.3"); w.Code != http.StatusTooManyRequests {
    t.Fatalf("first client second request: status = %d, want 429", w.Code)
  }
  if w := doRequest(router, "10.0.0.4"); w.Code != http.StatusOK {
    t.Fatalf("second client should have its own window: status = %d", w.Code)
  }
}

func TestRateLimiterWindowResets(t *testing.T) {
  router, rl := newLimitedRouter(1, 30*time.Millisecond)
  defer rl.Stop()

  if w := doRequest(router, "10.0.0.5"); w.Code != http.StatusOK {
    t.Fatalf("first request: status = %d", w.Code)
  }
  if w := doRequest(router, "10.0.0.5"); w.Code != http.StatusTooManyRequests {
    t.Fatalf("second request: status = %d, want 429", w.Code)
  }

  time.Sleep(50 * time.Millisecond)

  if w := doRequest(router, "10.0.0.5"); w.Code != http.StatusOK {
    t.Fatalf("request after window reset: status = %d, want 200", w.Code)
  }
}
