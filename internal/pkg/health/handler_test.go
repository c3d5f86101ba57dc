package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPingHandler(t *testing.T) {
	t.Run("Default ping handler", func(t *testing.T) {
		t.Setenv("VERSION", "")
		t.Setenv("GIT_COMMIT", "")
		t.Setenv("BUILD_TIME", "")

		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/ping", nil), rec)

		require.NoError(t, NewPingHandler("tracking-service")(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		var response BuildInfo
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "tracking-service", response.ServiceName)
		assert.Equal(t, "development", response.Version)
		assert.Equal(t, runtime.Version(), response.GoVersion)
		assert.NotEmpty(t, response.Hostname)
		assert.False(t, response.ServerTime.IsZero())
	})

	t.Run("Ping handler with environment variables", func(t *testing.T) {
		t.Setenv("VERSION", "2.0.0")
		t.Setenv("GIT_COMMIT", "def456")
		t.Setenv("BUILD_TIME", "2026-06-01T12:00:00Z")

		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/ping", nil), rec)

		require.NoError(t, NewPingHandler("tracking-service")(c))

		var response BuildInfo
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "2.0.0", response.Version)
		assert.Equal(t, "def456", response.GitCommit)
		assert.Equal(t, "2026-06-01T12:00:00Z", response.BuildTime)
	})
}

func TestRegisterHealthEndpoints(t *testing.T) {
	tests := []struct {
		name           string
		checkers       map[string]HealthChecker
		path           string
		expectedStatus int
	}{
		{name: "Health", path: "/health", expectedStatus: http.StatusOK},
		{name: "Healthz", path: "/healthz", expectedStatus: http.StatusOK},
		{
			name:           "Ready with healthy dependencies",
			checkers:       map[string]HealthChecker{"redis": CheckerFunc(func(context.Context) error { return nil })},
			path:           "/ready",
			expectedStatus: http.StatusOK,
		},
		{
			name: "Ready with failing dependency",
			checkers: map[string]HealthChecker{
				"redis":    CheckerFunc(func(context.Context) error { return nil }),
				"postgres": CheckerFunc(func(context.Context) error { return errors.New("connection refused") }),
			},
			path:           "/ready",
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewHealthService()
			for name, checker := range tt.checkers {
				service.AddChecker(name, checker)
			}

			e := echo.New()
			RegisterHealthEndpoints(e, "tracking-service", service)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestCheckAllHealth(t *testing.T) {
	service := NewHealthService()
	service.AddChecker("postgres", CheckerFunc(func(context.Context) error { return errors.New("down") }))
	service.AddChecker("nats", NewNATSHealthChecker(nil))
	service.AddChecker("redis", NewRedisHealthChecker(nil))

	response := service.CheckAllHealth(context.Background())

	assert.Equal(t, "unhealthy", response.Status)
	assert.Equal(t, DependencyInfo{Status: "unhealthy", Error: "down"}, response.Dependencies["postgres"])
	assert.Equal(t, "healthy", response.Dependencies["nats"].Status)
	assert.Equal(t, "healthy", response.Dependencies["redis"].Status)
}
