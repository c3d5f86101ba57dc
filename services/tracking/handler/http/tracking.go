package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/middleware"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/internal/utils"
	"github.com/piresc/carpool/services/tracking"
)

// TrackingHandler serves read-only views of live ride sessions
type TrackingHandler struct {
	registry     tracking.SessionRegistry
	trackingUC   tracking.TrackingUC
	timeout      time.Duration
	relayEnabled bool
}

// NewTrackingHandler creates a new tracking HTTP handler
func NewTrackingHandler(cfg *models.Config, registry tracking.SessionRegistry, trackingUC tracking.TrackingUC) *TrackingHandler {
	timeout := cfg.Tracking.AckTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &TrackingHandler{
		registry:     registry,
		trackingUC:   trackingUC,
		timeout:      timeout,
		relayEnabled: cfg.Tracking.RelayEnabled,
	}
}

// RegisterRoutes registers the tracking routes on a group that already
// carries authentication
func (h *TrackingHandler) RegisterRoutes(g *echo.Group) {
	groups := g.Group("/tracking/groups")
	groups.GET("/:id/location", h.GetLocation)
	groups.GET("/:id/progress", h.GetProgress)
	groups.GET("/:id/session", h.GetSession)
}

// LocationResponse is the last known position of a ride group
type LocationResponse struct {
	RideGroupID int64             `json:"ride_group_id"`
	Location    models.Coordinate `json:"location"`
	Source      string            `json:"source"`
	RecordedAt  *time.Time        `json:"recorded_at,omitempty"`
}

// GetLocation returns the last driver position from this node. With relay on,
// a group not driven here is answered from the shared cache.
func (h *TrackingHandler) GetLocation(c echo.Context) error {
	id, err := h.authorize(c)
	if err != nil {
		return writeError(c, err)
	}

	if coord, found := h.registry.LastKnownLocation(id); found {
		return utils.SuccessResponse(c, http.StatusOK, "Location retrieved successfully", LocationResponse{
			RideGroupID: id,
			Location:    coord,
			Source:      "live",
		})
	}
	if !h.relayEnabled || h.drivenHere(id) {
		return utils.NotFoundResponse(c, "No location recorded for ride group")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()
	cached, err := h.trackingUC.CachedLocation(ctx, id)
	if err != nil {
		logger.Error("Failed to read cached location", logger.RideGroup(id), logger.Err(err))
		return utils.ServiceUnavailableResponse(c, "Location store unavailable")
	}
	if cached == nil {
		return utils.NotFoundResponse(c, "No location recorded for ride group")
	}
	recordedAt := cached.RecordedAt
	return utils.SuccessResponse(c, http.StatusOK, "Location retrieved successfully", LocationResponse{
		RideGroupID: id,
		Location:    cached.Location,
		Source:      "cache",
		RecordedAt:  &recordedAt,
	})
}

func (h *TrackingHandler) drivenHere(rideGroupID int64) bool {
	snap, ok := h.registry.Snapshot(rideGroupID)
	return ok && snap.JoinState != models.JoinStateEmpty
}

// GetProgress returns the checkpoint pointer of a tracked ride group
func (h *TrackingHandler) GetProgress(c echo.Context) error {
	id, err := h.authorize(c)
	if err != nil {
		return writeError(c, err)
	}

	progress, found := h.trackingUC.Progress(id)
	if !found {
		return utils.NotFoundResponse(c, "Ride group is not being tracked")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Progress retrieved successfully", progress)
}

// GetSession returns a snapshot of the live session
func (h *TrackingHandler) GetSession(c echo.Context) error {
	id, err := h.authorize(c)
	if err != nil {
		return writeError(c, err)
	}

	snapshot, found := h.registry.Snapshot(id)
	if !found {
		return utils.NotFoundResponse(c, "No live session for ride group")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Session retrieved successfully", snapshot)
}

// errMissingAccount is returned when the route is reached without authentication
var errMissingAccount = errors.New("missing account")

// authorize parses the ride group id and applies the same access rule as the
// websocket gateway
func (h *TrackingHandler) authorize(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, tracking.ErrInvalidRideGroup
	}

	account, ok := middleware.AccountFromContext(c)
	if !ok {
		return 0, errMissingAccount
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()
	if account.IsDriver() {
		err = h.trackingUC.AuthorizeDriver(ctx, account, id)
	} else {
		err = h.trackingUC.AuthorizeWatcher(ctx, account, id)
	}
	if err != nil && !errors.Is(err, tracking.ErrNotAuthorized) {
		logger.Error("Failed to authorize tracking request",
			logger.RideGroup(id),
			logger.String("user_id", account.ID),
			logger.Err(err))
	}
	return id, err
}

func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, tracking.ErrInvalidRideGroup):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, errMissingAccount):
		return utils.UnauthorizedResponse(c, "")
	case errors.Is(err, tracking.ErrNotAuthorized):
		return utils.ForbiddenResponse(c, "Not allowed to view this ride group")
	case errors.Is(err, tracking.ErrDependency), errors.Is(err, context.DeadlineExceeded):
		return utils.ServiceUnavailableResponse(c, "Authorization unavailable")
	default:
		return utils.InternalServerErrorResponse(c, "")
	}
}
