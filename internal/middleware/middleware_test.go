package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evacsim/pkg/config"
	"evacsim/pkg/logger"
	"evacsim/pkg/ratelimit"
)

func TestMain(m *testing.M) {
	logger.Init("error")
	os.Exit(m.Run())
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// ============================================================
// REQUEST ID
// ============================================================

func TestRequestID_Generated(t *testing.T) {
	var captured string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/simulate", nil))

	require.NotEmpty(t, captured)
	assert.Equal(t, captured, rec.Header().Get(HeaderRequestID))
}

func TestRequestID_Propagated(t *testing.T) {
	var captured string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/simulate", nil)
	req.Header.Set(HeaderRequestID, "client-supplied-id")

	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "client-supplied-id", captured)
}

func TestGetRequestID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetRequestID(req.Context()))
}

// ============================================================
// LOGGING
// ============================================================

func TestLogging_PassesThrough(t *testing.T) {
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/simulate", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestStatusWriter_DefaultsToOK(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec}

	_, err := sw.Write([]byte("payload"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, sw.status)
}

// ============================================================
// METRICS
// ============================================================

func TestMetrics_PassesThrough(t *testing.T) {
	handler := Metrics(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/simulate", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

// ============================================================
// CORS
// ============================================================

func corsConfig() config.CORSConfig {
	return config.CORSConfig{
		Enabled:          true,
		AllowedOrigins:   []string{"https://map.example.com"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           3600,
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	handler := CORS(corsConfig())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/simulate", nil)
	req.Header.Set("Origin", "https://map.example.com")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://map.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	handler := CORS(corsConfig())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/simulate", nil)
	req.Header.Set("Origin", "https://evil.example.com")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	handler := CORS(corsConfig())(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/simulate", nil)
	req.Header.Set("Origin", "https://map.example.com")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
}

// ============================================================
// RATE LIMIT
// ============================================================

func newTestLimiter(t *testing.T, requests int) ratelimit.Limiter {
	t.Helper()

	limiter := ratelimit.NewMemoryLimiter(&ratelimit.Config{
		Requests:        requests,
		Window:          time.Minute,
		Strategy:        "sliding_window",
		CleanupInterval: time.Minute,
	})
	t.Cleanup(func() { _ = limiter.Close() })

	return limiter
}

func TestRateLimit_AllowsWithinLimit(t *testing.T) {
	handler := RateLimit(newTestLimiter(t, 5))(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/simulate", nil)
	req.RemoteAddr = "10.1.2.3:40000"

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	handler := RateLimit(newTestLimiter(t, 2))(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/simulate", nil)
	req.RemoteAddr = "10.1.2.3:40000"

	handler.ServeHTTP(httptest.NewRecorder(), req)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
}

func TestRateLimit_SeparateClients(t *testing.T) {
	handler := RateLimit(newTestLimiter(t, 1))(okHandler())

	first := httptest.NewRequest(http.MethodGet, "/api/simulate", nil)
	first.RemoteAddr = "10.0.0.1:1111"
	second := httptest.NewRequest(http.MethodGet, "/api/simulate", nil)
	second.RemoteAddr = "10.0.0.2:2222"

	handler.ServeHTTP(httptest.NewRecorder(), first)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_ExemptPaths(t *testing.T) {
	handler := RateLimit(newTestLimiter(t, 1))(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.1.2.3:40000"

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimit_NilLimiterPassesThrough(t *testing.T) {
	handler := RateLimit(nil)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/simulate", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS_WildcardOrigin(t *testing.T) {
	cfg := corsConfig()
	cfg.AllowedOrigins = []string{"*"}

	handler := CORS(cfg)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/simulate", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
