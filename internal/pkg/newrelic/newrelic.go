package newrelic

import (
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/models"
)

const defaultAppName = "carpool-tracking"

// NewApplication starts the APM agent of a tracking node. Returns nil when
// APM is off; the service then runs untraced.
func NewApplication(configs *models.Config) *newrelic.Application {
	if !configs.NewRelic.Enabled || configs.NewRelic.LicenseKey == "" {
		logger.Info("APM disabled for tracking node",
			logger.String("node_id", configs.Tracking.NodeID))
		return nil
	}

	nrApp, err := newrelic.NewApplication(configOptions(configs)...)
	if err != nil {
		logger.Warn("APM agent failed to start, tracking runs untraced",
			logger.String("node_id", configs.Tracking.NodeID),
			logger.Err(err))
		return nil
	}

	logger.Info("APM agent started",
		logger.String("app_name", appName(configs)),
		logger.String("node_id", configs.Tracking.NodeID),
		logger.Bool("forward_logs", configs.NewRelic.ForwardLogs))
	return nrApp
}

// configOptions labels every transaction with the environment and node so
// traces of a ride group can be followed across relaying nodes
func configOptions(configs *models.Config) []newrelic.ConfigOption {
	return []newrelic.ConfigOption{
		newrelic.ConfigAppName(appName(configs)),
		newrelic.ConfigLicense(configs.NewRelic.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
		newrelic.ConfigAppLogForwardingEnabled(configs.NewRelic.ForwardLogs),
		newrelic.ConfigAppLogDecoratingEnabled(configs.NewRelic.LogsEnabled),
		func(c *newrelic.Config) {
			c.Labels = map[string]string{
				"environment": configs.App.Environment,
				"node":        configs.Tracking.NodeID,
			}
		},
	}
}

func appName(configs *models.Config) string {
	if configs.NewRelic.AppName != "" {
		return configs.NewRelic.AppName
	}
	return defaultAppName
}
