package newrelic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestNewApplication_Disabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  models.NewRelicConfig
	}{
		{name: "disabled", cfg: models.NewRelicConfig{Enabled: false, LicenseKey: "key"}},
		{name: "no license key", cfg: models.NewRelicConfig{Enabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, NewApplication(&models.Config{NewRelic: tt.cfg}))
		})
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := &models.Config{
		App:      models.AppConfig{Environment: "staging"},
		NewRelic: models.NewRelicConfig{LicenseKey: "key", ForwardLogs: true},
		Tracking: models.TrackingConfig{NodeID: "node-a"},
	}

	var nrCfg newrelic.Config
	for _, opt := range configOptions(cfg) {
		opt(&nrCfg)
	}

	assert.Equal(t, defaultAppName, nrCfg.AppName)
	assert.Equal(t, "key", nrCfg.License)
	assert.True(t, nrCfg.DistributedTracer.Enabled)
	assert.True(t, nrCfg.ApplicationLogging.Forwarding.Enabled)
	assert.False(t, nrCfg.ApplicationLogging.LocalDecorating.Enabled)
	assert.Equal(t, map[string]string{"environment": "staging", "node": "node-a"}, nrCfg.Labels)

	cfg.NewRelic.AppName = "tracking-eu"
	assert.Equal(t, "tracking-eu", appName(cfg))
}

func TestEchoMiddleware_NilApplicationPassesThrough(t *testing.T) {
	e := echo.New()
	e.Use(EchoMiddleware(nil))
	e.GET("/ping", func(c echo.Context) error {
		assert.Nil(t, FromEchoContext(c))
		return c.String(http.StatusOK, "pong")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWithSegment_NoTransaction(t *testing.T) {
	want := errors.New("boom")

	err := WithSegment(context.Background(), "segment", func() error { return want })

	assert.ErrorIs(t, err, want)
}

func TestBackgroundTransaction_NilApplication(t *testing.T) {
	ctx := context.Background()

	got, end := BackgroundTransaction(ctx, nil, "job")

	assert.Equal(t, ctx, got)
	assert.NotPanics(t, func() { end(errors.New("x")) })
}
