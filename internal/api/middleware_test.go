package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestTimingMiddlewareHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	TimingMiddleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Process-Time"))
}

func TestRateLimitMiddlewareRejectsOverBudget(t *testing.T) {
	// Burst is half the window budget, so a 20-request window admits 10
	// back-to-back reads before the bucket runs dry.
	handler := RateLimitMiddleware(20, time.Minute)(okHandler())

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/areas", nil)
		req.RemoteAddr = "198.51.100.7:4321"
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/areas", nil)
	req.RemoteAddr = "198.51.100.7:4321"
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// A different address still has its own full bucket.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/areas", nil)
	req.RemoteAddr = "203.0.113.9:4321"
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitMiddlewareChargesWritesMore(t *testing.T) {
	handler := RateLimitMiddleware(20, time.Minute)(okHandler())

	// Each write costs 5 of the 10-token burst: two pass, the third 429s.
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/areas", nil)
		req.RemoteAddr = "192.0.2.4:9999"
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "write %d", i+1)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/areas", nil)
	req.RemoteAddr = "192.0.2.4:9999"
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRequestCost(t *testing.T) {
	assert.Equal(t, 1, requestCost(http.MethodGet))
	assert.Equal(t, 1, requestCost(http.MethodHead))
	assert.Equal(t, writeCost, requestCost(http.MethodPost))
	assert.Equal(t, writeCost, requestCost(http.MethodPut))
	assert.Equal(t, writeCost, requestCost(http.MethodPatch))
	assert.Equal(t, writeCost, requestCost(http.MethodDelete))
}

func TestIPLimiterSweepsIdleClients(t *testing.T) {
	l := newIPLimiter(100, time.Minute)
	require.True(t, l.allow("192.0.2.1", 1))
	require.True(t, l.allow("192.0.2.2", 1))

	// Age one client past the idle TTL and make the next call eligible
	// to sweep.
	l.mu.Lock()
	l.clients["192.0.2.1"].lastSeen = time.Now().Add(-limiterIdleTTL - time.Minute)
	l.lastSweep = time.Now().Add(-2 * limiterSweepEvery)
	l.mu.Unlock()

	require.True(t, l.allow("192.0.2.3", 1))

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.clients, "192.0.2.1")
	assert.Contains(t, l.clients, "192.0.2.2")
	assert.Contains(t, l.clients, "192.0.2.3")
}
