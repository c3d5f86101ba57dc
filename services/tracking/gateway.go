package tracking

import (
	"context"

	"github.com/piresc/carpool/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/carpool/services/tracking TrackingGW

// TrackingGW defines the interface for tracking event publishing
type TrackingGW interface {
	PublishCheckpointArrived(ctx context.Context, arrival models.CheckpointArrival) error
	PublishRideCompleted(ctx context.Context, event models.RideCompletedEvent) error
	PublishLocationRelay(ctx context.Context, relay models.LocationRelay) error
}
