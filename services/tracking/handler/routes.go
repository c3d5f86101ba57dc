package handler

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/middleware"
	"github.com/piresc/carpool/internal/pkg/models"
	natspkg "github.com/piresc/carpool/internal/pkg/nats"
	wspkg "github.com/piresc/carpool/internal/pkg/websocket"
	"github.com/piresc/carpool/services/tracking"
	httpHandler "github.com/piresc/carpool/services/tracking/handler/http"
	natsHandler "github.com/piresc/carpool/services/tracking/handler/nats"
	wsHandler "github.com/piresc/carpool/services/tracking/handler/websocket"
)

const (
	restRateLimit  = 120
	restRatePeriod = time.Minute
)

// Handler combines all handlers for the tracking service
type Handler struct {
	cfg          *models.Config
	trackingWS   *wsHandler.TrackingHandler
	trackingHTTP *httpHandler.TrackingHandler
	relayNATS    *natsHandler.RelayHandler
}

// NewHandler creates a new combined handler
func NewHandler(
	cfg *models.Config,
	manager *wspkg.Manager,
	registry tracking.SessionRegistry,
	trackingUC tracking.TrackingUC,
	trackGW tracking.TrackingGW,
	natsClient *natspkg.Client,
	audit *logger.AuditLogger,
) *Handler {
	return &Handler{
		cfg:          cfg,
		trackingWS:   wsHandler.NewTrackingHandler(cfg, manager, registry, trackingUC, trackGW, audit),
		trackingHTTP: httpHandler.NewTrackingHandler(cfg, registry, trackingUC),
		relayNATS:    natsHandler.NewRelayHandler(cfg, registry, manager, natsClient),
	}
}

// RegisterRoutes registers all HTTP routes. The websocket endpoint
// authenticates during the handshake; REST routes use the JWT middleware and
// are rate limited per user when redisClient is set.
func (h *Handler) RegisterRoutes(e *echo.Echo, redisClient *redis.Client) {
	e.GET("/ws", h.trackingWS.HandleWebSocket)

	api := e.Group("/api/v1", middleware.JWTAuthMiddleware(h.cfg.JWT))
	if redisClient != nil {
		api.Use(middleware.UserRateLimiter(restRateLimit, restRatePeriod, redisClient))
	}
	h.trackingHTTP.RegisterRoutes(api)
}

// InitNATSConsumers initializes all NATS consumers
func (h *Handler) InitNATSConsumers() error {
	if !h.cfg.Tracking.RelayEnabled {
		logger.Info("Location relay disabled, skipping NATS consumers")
		return nil
	}
	return h.relayNATS.InitNATSConsumers()
}

// Close stops consuming and waits for in-flight join verifications
func (h *Handler) Close() {
	h.relayNATS.Close()
	h.trackingWS.Wait()
}
