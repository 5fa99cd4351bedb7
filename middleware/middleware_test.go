package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusCodeToRange(t *testing.T) {
	cases := map[int]string{
		200: "2xx",
		204: "2xx",
		302: "3xx",
		400: "4xx",
		429: "4xx",
		500: "5xx",
		503: "5xx",
		100: "unknown",
	}
	for code, want := range cases {
		assert.Equal(t, want, statusCodeToRange(code), "status %d", code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"code":401,"message":"Unauthorized"}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-User-ID", "user-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-42", w.Body.String())
}

func TestRateLimitMiddleware_BlocksAfterBurst(t *testing.T) {
	r := gin.New()
	r.POST("/checkout", RateLimitMiddleware(1, 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/checkout", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_SweepsIdleEntries(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Second), 1, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.GetLimiter("10.0.0.1")
	rl.GetLimiter("10.0.0.2")
	assert.Equal(t, 2, rl.size())

	now = now.Add(2 * time.Minute)
	rl.GetLimiter("10.0.0.2")
	assert.Equal(t, 1, rl.size())
}

func TestRateLimiter_SweepsOncePerTTL(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Second), 1, time.Minute)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	rl.now = func() time.Time { return now }

	rl.GetLimiter("10.0.0.1")
	now = start.Add(50 * time.Second)
	rl.GetLimiter("10.0.0.2")

	// 10.0.0.1 is idle past ttl, but the last sweep was under a ttl ago.
	now = start.Add(59 * time.Second)
	rl.mu.Lock()
	rl.ips["10.0.0.1"].lastSeen = start.Add(-2 * time.Minute)
	rl.mu.Unlock()
	rl.GetLimiter("10.0.0.3")
	assert.Equal(t, 3, rl.size())

	now = start.Add(61 * time.Second)
	rl.GetLimiter("10.0.0.3")
	assert.Equal(t, 2, rl.size())
}

func TestRequestTimeout_SetsDeadline(t *testing.T) {
	r := gin.New()
	var hasDeadline bool
	r.GET("/slow", RequestTimeout(time.Second), func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.True(t, hasDeadline)
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}
