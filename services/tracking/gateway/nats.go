package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/piresc/carpool/internal/pkg/constants"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/models"
	natspkg "github.com/piresc/carpool/internal/pkg/nats"
	nr "github.com/piresc/carpool/internal/pkg/newrelic"
	"github.com/piresc/carpool/services/tracking"
)

// trackingGW publishes tracking events to NATS
type trackingGW struct {
	natsClient *natspkg.Client
}

// NewTrackingGW creates a new NATS gateway instance
func NewTrackingGW(client *natspkg.Client) tracking.TrackingGW {
	return &trackingGW{
		natsClient: client,
	}
}

// PublishCheckpointArrived publishes a checkpoint arrival for downstream consumers
func (g *trackingGW) PublishCheckpointArrived(ctx context.Context, arrival models.CheckpointArrival) error {
	logger.Debug("Publishing checkpoint arrival",
		logger.RideGroup(arrival.RideGroupID),
		logger.Int64("checkpoint_id", arrival.Checkpoint.ID))
	return g.publish(ctx, constants.SubjectCheckpointArrived, arrival)
}

// PublishRideCompleted publishes the completion of a ride instance
func (g *trackingGW) PublishRideCompleted(ctx context.Context, event models.RideCompletedEvent) error {
	logger.Debug("Publishing ride completed",
		logger.RideGroup(event.RideGroupID),
		logger.Int64("ride_instance_id", event.RideInstanceID))
	return g.publish(ctx, constants.SubjectRideCompleted, event)
}

// PublishLocationRelay shares a driver position with the other tracking nodes
func (g *trackingGW) PublishLocationRelay(ctx context.Context, relay models.LocationRelay) error {
	return g.publish(ctx, constants.SubjectLocationRelay, relay)
}

func (g *trackingGW) publish(ctx context.Context, subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", subject, err)
	}
	return nr.WithSegment(ctx, "NATS/"+subject, func() error {
		return g.natsClient.Publish(subject, data)
	})
}
