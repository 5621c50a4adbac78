package observability

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/agent-admin/internal/config"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics("agent-admin")

	m.RecordRequest("/api/users", "GET", 200, 15*time.Millisecond)
	m.RecordRequest("/api/users", "GET", 200, 5*time.Millisecond)
	m.RecordError("/api/users", "POST", "USERNAME_EXISTS")
	m.ObserveLogin("success")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/users", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("POST", "/api/users", "USERNAME_EXISTS")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.logins.WithLabelValues("success")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.ObserveLogin("error")
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics("agent-admin")
	m.ObserveLogin("inactive")

	app := fiber.New()
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), `auth_logins_total{outcome="inactive",service="agent-admin"} 1`)
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(RequestIDFromContext(c))
	})

	t.Run("generates", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
		assert.Equal(t, resp.Header.Get(RequestIDHeader), string(body))
	})

	t.Run("propagates", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
	})
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := NewMetrics("agent-admin")

	app := fiber.New()
	app.Use(RequestID(), RequestLogger(zap.New(core), metrics))
	app.Get("/api/teams", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/broken", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusServiceUnavailable) })

	_, err := app.Test(httptest.NewRequest("GET", "/api/teams", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/broken", nil))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues("GET", "/api/teams", "200")))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "DEBUG"}, true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	logger, err = NewLogger(config.LoggerConfig{Level: "nonsense"}, false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}
