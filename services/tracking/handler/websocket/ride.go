package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/piresc/carpool/internal/pkg/constants"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/models"
	wspkg "github.com/piresc/carpool/internal/pkg/websocket"
	"github.com/piresc/carpool/services/tracking"
)

// parseRideGroupID reads the positive integer payload of join and watch requests
func (h *TrackingHandler) parseRideGroupID(data json.RawMessage) (int64, error) {
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return 0, tracking.ErrInvalidRideGroup
	}
	if err := h.validate.Var(id, "gt=0"); err != nil {
		return 0, tracking.ErrInvalidRideGroup
	}
	return id, nil
}

// failureReason renders err as the reason of an ERR: ack
func failureReason(err error) string {
	switch {
	case tracking.IsValidation(err), tracking.IsConflict(err):
		return err.Error()
	case errors.Is(err, tracking.ErrNotAuthorized):
		return tracking.ErrNotAuthorized.Error()
	case errors.Is(err, tracking.ErrJoinTimeout), errors.Is(err, context.DeadlineExceeded):
		return tracking.ErrJoinTimeout.Error()
	case errors.Is(err, tracking.ErrNoActiveRide):
		return tracking.ErrNoActiveRide.Error()
	case errors.Is(err, tracking.ErrSessionNotFound):
		return tracking.ErrSessionNotFound.Error()
	case errors.Is(err, tracking.ErrShuttingDown):
		return tracking.ErrShuttingDown.Error()
	default:
		return "internal error"
	}
}

func errorAck(err error) *reply {
	return ackReply(constants.AckError + failureReason(err))
}

// handleDriverJoin claims the driver slot of a group. Ownership verification
// runs in the background; the request is acked once it resolves.
func (h *TrackingHandler) handleDriverJoin(conn *wspkg.Conn, state *connState, msg models.WSMessage) *reply {
	rideGroupID, err := h.parseRideGroupID(msg.Data)
	if err != nil {
		return errorAck(err)
	}
	if !conn.Account.IsDriver() {
		h.audit.Denied(constants.EventDriverJoinRide, conn.Account.ID, conn.Account.Role, rideGroupID, "role")
		return errorAck(tracking.ErrNotAuthorized)
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	switch {
	case state.phase == phaseJoinPending:
		return errorAck(tracking.ErrJoinInProgress)
	case state.phase == phaseActive && state.driverGroup != rideGroupID:
		return errorAck(tracking.ErrAlreadyJoined)
	}

	if !h.beginJoin() {
		return errorAck(tracking.ErrShuttingDown)
	}
	if err := h.registry.BeginDriverJoin(rideGroupID, conn.ID); err != nil {
		h.joins.Done()
		logger.Debug("Driver join rejected",
			logger.Conn(conn.ID),
			logger.RideGroup(rideGroupID),
			logger.Err(err))
		return errorAck(err)
	}
	state.phase = phaseJoinPending
	state.pendingGroup = rideGroupID

	go h.verifyDriverJoin(conn, state, rideGroupID, msg.ID)
	return nil
}

// verifyDriverJoin checks ownership and primes checkpoint tracking within the
// ack timeout, then confirms or aborts the claim and sends exactly one ack
func (h *TrackingHandler) verifyDriverJoin(conn *wspkg.Conn, state *connState, rideGroupID int64, requestID string) {
	defer h.joins.Done()

	ctx, cancel := context.WithTimeout(context.Background(), h.ackTimeout)
	defer cancel()

	result := make(chan error, 1)
	go func() {
		err := h.trackingUC.AuthorizeDriver(ctx, conn.Account, rideGroupID)
		if err == nil {
			err = h.trackingUC.Prime(ctx, rideGroupID)
		}
		result <- err
	}()

	var err error
	select {
	case err = <-result:
	case <-ctx.Done():
		err = tracking.ErrJoinTimeout
	}

	state.mu.Lock()
	if err == nil && !h.registry.ConfirmDriverJoin(rideGroupID, conn.ID) {
		// claim released by a disconnect in the meantime
		err = tracking.ErrSessionNotFound
	}
	if err == nil {
		state.phase = phaseActive
		state.driverGroup = rideGroupID
	} else {
		h.registry.AbortDriverJoin(rideGroupID, conn.ID)
		state.phase = phaseAuthenticated
	}
	state.pendingGroup = 0
	state.mu.Unlock()

	if err != nil {
		if errors.Is(err, tracking.ErrNotAuthorized) {
			h.audit.Denied(constants.EventDriverJoinRide, conn.Account.ID, conn.Account.Role, rideGroupID, "not assigned driver")
		}
		logger.Warn("Driver join failed",
			logger.Conn(conn.ID),
			logger.String("user_id", conn.Account.ID),
			logger.RideGroup(rideGroupID),
			logger.Err(err))
		h.send(conn, requestID, errorAck(err))
		return
	}

	h.audit.Granted(constants.EventDriverJoinRide, conn.Account.ID, conn.Account.Role, rideGroupID)
	logger.Info("Driver joined ride group",
		logger.Conn(conn.ID),
		logger.String("user_id", conn.Account.ID),
		logger.RideGroup(rideGroupID))
	h.send(conn, requestID, ackReply(constants.AckJoined))
}

// handleParentWatch subscribes the connection to a group. A late watcher is
// sent the last known location as a second ack.
func (h *TrackingHandler) handleParentWatch(conn *wspkg.Conn, state *connState, msg models.WSMessage) *reply {
	rideGroupID, err := h.parseRideGroupID(msg.Data)
	if err != nil {
		return errorAck(err)
	}
	if !conn.Account.CanWatch() {
		h.audit.Denied(constants.EventParentWatchRide, conn.Account.ID, conn.Account.Role, rideGroupID, "role")
		return errorAck(tracking.ErrNotAuthorized)
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.ackTimeout)
	defer cancel()

	if err := h.trackingUC.AuthorizeWatcher(ctx, conn.Account, rideGroupID); err != nil {
		if errors.Is(err, tracking.ErrNotAuthorized) {
			h.audit.Denied(constants.EventParentWatchRide, conn.Account.ID, conn.Account.Role, rideGroupID, "not a member")
		} else {
			logger.Error("Watch authorization failed",
				logger.Conn(conn.ID),
				logger.RideGroup(rideGroupID),
				logger.Err(err))
		}
		return errorAck(err)
	}

	h.registry.AddSubscriber(rideGroupID, conn.ID)
	h.audit.Granted(constants.EventParentWatchRide, conn.Account.ID, conn.Account.Role, rideGroupID)
	h.send(conn, msg.ID, ackReply(constants.AckWatching))

	loc, ok := h.lastLocation(ctx, rideGroupID)
	if !ok {
		return nil
	}
	raw, err := json.Marshal(loc)
	if err != nil {
		logger.Error("Failed to encode last location", logger.RideGroup(rideGroupID), logger.Err(err))
		return nil
	}
	return ackReply(constants.AckLocation + string(raw))
}

// lastLocation reads the local session. The shared cache is only consulted
// for a group relayed from another node: a driver claimed here owns the
// position, and one that has not reported yet has none.
func (h *TrackingHandler) lastLocation(ctx context.Context, rideGroupID int64) (models.Coordinate, bool) {
	if loc, ok := h.registry.LastKnownLocation(rideGroupID); ok {
		return loc, true
	}
	if !h.cfg.RelayEnabled || h.drivenHere(rideGroupID) {
		return models.Coordinate{}, false
	}

	cached, err := h.trackingUC.CachedLocation(ctx, rideGroupID)
	if err != nil {
		logger.Warn("Location cache unavailable", logger.RideGroup(rideGroupID), logger.Err(err))
		return models.Coordinate{}, false
	}
	if cached == nil {
		return models.Coordinate{}, false
	}
	return cached.Location, true
}

// drivenHere reports a driver claim on this node, pending or bound
func (h *TrackingHandler) drivenHere(rideGroupID int64) bool {
	snap, ok := h.registry.Snapshot(rideGroupID)
	return ok && snap.JoinState != models.JoinStateEmpty
}
