package nats

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/piresc/carpool/internal/pkg/constants"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/models"
	natspkg "github.com/piresc/carpool/internal/pkg/nats"
	"github.com/piresc/carpool/internal/utils"
	"github.com/piresc/carpool/services/tracking"
)

// Broadcaster queues an event to local connections
type Broadcaster interface {
	Broadcast(connIDs []string, event string, data interface{}) int
}

// RelayHandler delivers driver positions published by other tracking nodes to
// the watchers connected to this node
type RelayHandler struct {
	nodeID      string
	registry    tracking.SessionRegistry
	broadcaster Broadcaster
	natsClient  *natspkg.Client
	subs        []*nats.Subscription
}

// NewRelayHandler creates a new location relay NATS handler
func NewRelayHandler(cfg *models.Config, registry tracking.SessionRegistry, broadcaster Broadcaster, client *natspkg.Client) *RelayHandler {
	return &RelayHandler{
		nodeID:      cfg.Tracking.NodeID,
		registry:    registry,
		broadcaster: broadcaster,
		natsClient:  client,
		subs:        make([]*nats.Subscription, 0),
	}
}

// InitNATSConsumers subscribes to relayed locations
func (h *RelayHandler) InitNATSConsumers() error {
	sub, err := h.natsClient.Subscribe(constants.SubjectLocationRelay, func(msg *nats.Msg) {
		if err := h.handleLocationRelay(msg.Data); err != nil {
			logger.Error("Error handling location relay", logger.Err(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to location relay: %w", err)
	}
	h.subs = append(h.subs, sub)
	return nil
}

// Close unsubscribes every consumer
func (h *RelayHandler) Close() {
	for _, sub := range h.subs {
		if err := sub.Unsubscribe(); err != nil {
			logger.Warn("Failed to unsubscribe", logger.String("subject", sub.Subject), logger.Err(err))
		}
	}
	h.subs = h.subs[:0]
}

// handleLocationRelay fans out a remote position. Messages from this node are
// skipped since local watchers already got them.
func (h *RelayHandler) handleLocationRelay(data []byte) error {
	var relay models.LocationRelay
	if err := json.Unmarshal(data, &relay); err != nil {
		return fmt.Errorf("failed to unmarshal location relay: %w", err)
	}
	if relay.NodeID == h.nodeID {
		return nil
	}
	if relay.RideGroupID <= 0 {
		return tracking.ErrInvalidRideGroup
	}
	if err := utils.ValidateCoordinate(relay.Location); err != nil {
		return fmt.Errorf("%w: %v", tracking.ErrInvalidCoordinate, err)
	}

	subscribers := h.registry.Subscribers(relay.RideGroupID)
	if len(subscribers) == 0 {
		return nil
	}
	delivered := h.broadcaster.Broadcast(subscribers, constants.EventLocationUpdate, relay.Location)
	logger.Debug("Relayed location delivered",
		logger.RideGroup(relay.RideGroupID),
		logger.String("origin", relay.NodeID),
		logger.Int("delivered", delivered))
	return nil
}
