package tracking

import (
	"context"
	"time"

	"github.com/piresc/carpool/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/carpool/services/tracking TrackingUC

// TrackingUC defines the checkpoint detection and ride state business logic
type TrackingUC interface {
	// AuthorizeDriver checks the account is the assigned driver of the group
	AuthorizeDriver(ctx context.Context, account models.Account, rideGroupID int64) error
	// AuthorizeWatcher checks the account may watch the group
	AuthorizeWatcher(ctx context.Context, account models.Account, rideGroupID int64) error

	// Prime loads and caches the checkpoint sequence and active ride instance
	Prime(ctx context.Context, rideGroupID int64) error
	// ProcessLocation evaluates the pending checkpoint against a driver position
	ProcessLocation(ctx context.Context, rideGroupID int64, coord models.Coordinate, at time.Time) (*models.CheckpointArrival, error)
	// Progress reports the checkpoint pointer of a tracked group
	Progress(rideGroupID int64) (models.RideProgress, bool)
	// DriverLeft releases tracking state of a completed ride
	DriverLeft(rideGroupID int64)

	// CachedLocation returns the last position persisted for the active ride, nil when none
	CachedLocation(ctx context.Context, rideGroupID int64) (*models.CachedLocation, error)

	// Close drains pending side effects
	Close()
}
