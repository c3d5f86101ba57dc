package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/constants"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/models"
	wspkg "github.com/piresc/carpool/internal/pkg/websocket"
	"github.com/piresc/carpool/services/tracking"
)

const defaultAckTimeout = 5 * time.Second

// TrackingHandler runs the live tracking protocol on websocket connections
type TrackingHandler struct {
	cfg        models.TrackingConfig
	manager    *wspkg.Manager
	registry   tracking.SessionRegistry
	trackingUC tracking.TrackingUC
	trackGW    tracking.TrackingGW
	audit      *logger.AuditLogger
	validate   *validator.Validate
	ackTimeout time.Duration

	// joins tracks in-flight driver join verifications; none start once closing
	joinMu  sync.Mutex
	closing bool
	joins   sync.WaitGroup
}

// NewTrackingHandler creates a new websocket tracking handler
func NewTrackingHandler(
	cfg *models.Config,
	manager *wspkg.Manager,
	registry tracking.SessionRegistry,
	trackingUC tracking.TrackingUC,
	trackGW tracking.TrackingGW,
	audit *logger.AuditLogger,
) *TrackingHandler {
	ackTimeout := cfg.Tracking.AckTimeout
	if ackTimeout <= 0 {
		ackTimeout = defaultAckTimeout
	}
	return &TrackingHandler{
		cfg:        cfg.Tracking,
		manager:    manager,
		registry:   registry,
		trackingUC: trackingUC,
		trackGW:    trackGW,
		audit:      audit,
		validate:   validator.New(),
		ackTimeout: ackTimeout,
	}
}

// HandleWebSocket authenticates and upgrades the request, then serves it
func (h *TrackingHandler) HandleWebSocket(c echo.Context) error {
	return h.manager.HandleConnection(c, h.serve)
}

// Wait refuses new driver joins and blocks until pending verifications have acked
func (h *TrackingHandler) Wait() {
	h.joinMu.Lock()
	h.closing = true
	h.joinMu.Unlock()

	h.joins.Wait()
}

// beginJoin registers a join verification unless the handler is closing
func (h *TrackingHandler) beginJoin() bool {
	h.joinMu.Lock()
	defer h.joinMu.Unlock()
	if h.closing {
		return false
	}
	h.joins.Add(1)
	return true
}

// serve is the read loop of one connection. Events are handled in arrival
// order, which keeps location updates of a ride group ordered.
func (h *TrackingHandler) serve(conn *wspkg.Conn) {
	state := newConnState()
	defer h.disconnect(conn)

	for {
		data, err := conn.ReadFrame()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Websocket read failed", logger.Conn(conn.ID), logger.Err(err))
			}
			return
		}
		h.handleMessage(conn, state, data)
	}
}

// reply is the single response of a handled request
type reply struct {
	event string
	data  interface{}
}

func ackReply(ack string) *reply {
	return &reply{event: constants.EventAck, data: models.WSAck(ack)}
}

func errorReply(code string, message string) *reply {
	return &reply{event: constants.EventError, data: models.WSErrorMessage{Code: code, Message: message}}
}

func (h *TrackingHandler) send(conn *wspkg.Conn, requestID string, r *reply) {
	if r == nil {
		return
	}
	if err := conn.Reply(r.event, requestID, r.data); err != nil {
		logger.Warn("Failed to send reply",
			logger.Conn(conn.ID),
			logger.String("event", r.event),
			logger.Err(err))
	}
}

// handleMessage dispatches one inbound frame to its event handler
func (h *TrackingHandler) handleMessage(conn *wspkg.Conn, state *connState, data []byte) {
	var msg models.WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.send(conn, "", errorReply(constants.ErrorInvalidFormat, "Invalid message format"))
		return
	}

	var r *reply
	switch msg.Event {
	case constants.EventDriverJoinRide:
		r = h.handleDriverJoin(conn, state, msg)
	case constants.EventParentWatchRide:
		r = h.handleParentWatch(conn, state, msg)
	case constants.EventDriverLocationUpdate:
		h.handleLocationUpdate(conn, state, msg)
	case constants.EventPing:
		r = &reply{event: constants.EventPong}
	default:
		r = errorReply(constants.ErrorInvalidFormat, "Unknown event type: "+msg.Event)
	}
	h.send(conn, msg.ID, r)
}

// disconnect releases every session role of conn and tells watchers of
// groups it was driving
func (h *TrackingHandler) disconnect(conn *wspkg.Conn) {
	for _, dep := range h.registry.RemoveConnection(conn.ID) {
		if !dep.WasDriver {
			continue
		}
		h.manager.Broadcast(dep.Subscribers, constants.EventDriverLeft, models.DriverLeftEvent{
			RideGroupID: dep.RideGroupID,
		})
		h.trackingUC.DriverLeft(dep.RideGroupID)
		logger.Info("Driver left ride group",
			logger.Conn(conn.ID),
			logger.RideGroup(dep.RideGroupID),
			logger.Int("watchers", len(dep.Subscribers)))
	}
}
