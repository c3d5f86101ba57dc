package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger() (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &ZapLogger{Logger: zap.New(core)}, logs
}

func TestZapEchoMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		handler   echo.HandlerFunc
		upgrade   bool
		wantCode  int
		wantLog   string
		wantLevel string
	}{
		{
			name:      "ok request",
			handler:   func(c echo.Context) error { return c.String(http.StatusOK, "OK") },
			wantCode:  http.StatusOK,
			wantLog:   "Request processed",
			wantLevel: "info",
		},
		{
			name:      "handler error is written by echo",
			handler:   func(c echo.Context) error { return echo.NewHTTPError(http.StatusNotFound, "missing") },
			wantCode:  http.StatusNotFound,
			wantLog:   "Client error",
			wantLevel: "warn",
		},
		{
			name:      "rejected websocket handshake",
			handler:   func(c echo.Context) error { return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token") },
			upgrade:   true,
			wantCode:  http.StatusUnauthorized,
			wantLog:   "Client error",
			wantLevel: "warn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zl, logs := observedLogger()
			e := echo.New()
			e.Use(ZapEchoMiddleware(zl))
			e.GET("/ws", tt.handler)

			req := httptest.NewRequest(http.MethodGet, "/ws?token=secret", nil)
			if tt.upgrade {
				req.Header.Set(echo.HeaderUpgrade, "websocket")
				req.Header.Set(echo.HeaderConnection, "Upgrade")
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			entries := logs.FilterMessage(tt.wantLog).All()
			if assert.Len(t, entries, 1) {
				assert.Equal(t, tt.wantLevel, entries[0].Level.String())
				assert.Equal(t, "/ws", entries[0].ContextMap()["path"])
			}
		})
	}
}
