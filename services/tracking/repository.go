package tracking

import (
	"context"
	"time"

	"github.com/piresc/carpool/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/carpool/services/tracking RideRepo,LocationCache

// RideRepo defines ride group definition, authorization and history storage
type RideRepo interface {
	// Authorization
	IsAssignedDriver(ctx context.Context, driverID string, rideGroupID int64) (bool, error)
	IsAuthorizedWatcher(ctx context.Context, parentID string, rideGroupID int64) (bool, error)

	// Ride group definition
	GetCheckpoints(ctx context.Context, rideGroupID int64) ([]models.Checkpoint, error)
	GetActiveRideInstance(ctx context.Context, rideGroupID int64) (int64, error)

	// Ride history
	RecordCheckpointArrival(ctx context.Context, arrival models.CheckpointArrival) error
	MarkRideInstanceComplete(ctx context.Context, rideInstanceID int64, completedAt time.Time) error
}

// LocationCache stores the last known position of each ride group
type LocationCache interface {
	StoreLocation(ctx context.Context, location models.CachedLocation) error
	GetLastLocation(ctx context.Context, rideGroupID int64) (*models.CachedLocation, error)
	DeleteLocation(ctx context.Context, rideGroupID int64) error
}
