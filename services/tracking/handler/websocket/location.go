package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/piresc/carpool/internal/pkg/constants"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/models"
	wspkg "github.com/piresc/carpool/internal/pkg/websocket"
	"github.com/piresc/carpool/internal/utils"
	"github.com/piresc/carpool/services/tracking"
)

// decodeLocation validates the payload of driver_location_update
func (h *TrackingHandler) decodeLocation(data json.RawMessage) (models.Coordinate, error) {
	var payload models.LocationPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: lat and lng must be numbers", tracking.ErrInvalidPayload)
	}
	if err := h.validate.Struct(payload); err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: lat and lng are required and must be in range", tracking.ErrInvalidCoordinate)
	}

	coord := models.Coordinate{Lat: *payload.Lat, Lng: *payload.Lng}
	if err := utils.ValidateCoordinate(coord); err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: %v", tracking.ErrInvalidCoordinate, err)
	}
	return coord, nil
}

// handleLocationUpdate records the driver position, fans it out to watchers,
// then runs checkpoint detection. It only replies on error.
func (h *TrackingHandler) handleLocationUpdate(conn *wspkg.Conn, state *connState, msg models.WSMessage) {
	coord, err := h.decodeLocation(msg.Data)
	if err != nil {
		code := constants.ErrorInvalidLocation
		if errors.Is(err, tracking.ErrInvalidPayload) {
			code = constants.ErrorInvalidFormat
		}
		_ = h.manager.SendCategorizedError(conn, msg.ID, err, code, constants.ErrorSeverityClient)
		return
	}

	rideGroupID := state.drivingGroup()
	if rideGroupID == 0 {
		h.audit.Denied(constants.EventDriverLocationUpdate, conn.Account.ID, conn.Account.Role, 0, "no active ride session")
		_ = h.manager.SendCategorizedError(conn, msg.ID, tracking.ErrNotAuthorized, constants.ErrorUnauthorized, constants.ErrorSeveritySecurity)
		return
	}

	subscribers, err := h.registry.RecordLocation(rideGroupID, conn.ID, coord)
	if err != nil {
		if errors.Is(err, tracking.ErrSessionNotFound) {
			_ = h.manager.SendCategorizedError(conn, msg.ID, err, constants.ErrorSessionNotFound, constants.ErrorSeverityClient)
			return
		}
		h.audit.Denied(constants.EventDriverLocationUpdate, conn.Account.ID, conn.Account.Role, rideGroupID, "not bound driver")
		_ = h.manager.SendCategorizedError(conn, msg.ID, err, constants.ErrorUnauthorized, constants.ErrorSeveritySecurity)
		return
	}

	// fan-out first so watchers are not held up by detection
	h.manager.Broadcast(subscribers, constants.EventLocationUpdate, coord)

	at := models.Now()
	ctx, cancel := context.WithTimeout(context.Background(), h.ackTimeout)
	defer cancel()

	if h.cfg.RelayEnabled {
		relay := models.LocationRelay{
			NodeID:      h.cfg.NodeID,
			RideGroupID: rideGroupID,
			Location:    coord,
			RecordedAt:  at,
		}
		if err := h.trackGW.PublishLocationRelay(ctx, relay); err != nil {
			logger.Warn("Failed to relay location", logger.RideGroup(rideGroupID), logger.Err(err))
		}
	}

	arrival, err := h.trackingUC.ProcessLocation(ctx, rideGroupID, coord, at)
	if err != nil {
		logger.Error("Checkpoint detection failed",
			logger.Conn(conn.ID),
			logger.RideGroup(rideGroupID),
			logger.Err(err))
		return
	}
	if arrival == nil {
		return
	}

	h.manager.Broadcast(subscribers, constants.EventCheckpointReached, models.CheckpointReachedEvent{
		RideGroupID: rideGroupID,
		Kind:        arrival.Checkpoint.Kind,
		Order:       arrival.Checkpoint.Order,
		Completed:   arrival.Completed,
	})
	if arrival.Completed {
		h.manager.Broadcast(subscribers, constants.EventRideCompleted, models.RideCompletedEvent{
			RideGroupID:    rideGroupID,
			RideInstanceID: arrival.RideInstanceID,
			CompletedAt:    arrival.ArrivedAt,
		})
	}
}
