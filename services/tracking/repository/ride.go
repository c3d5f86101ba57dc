package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/models"
	nr "github.com/piresc/carpool/internal/pkg/newrelic"
	"github.com/piresc/carpool/services/tracking"
)

const rideInstanceActive = "active"

type RideRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

var _ tracking.RideRepo = (*RideRepo)(nil)

func NewRideRepository(
	cfg *models.Config,
	db *sqlx.DB,
) *RideRepo {
	logger.Debug("Initializing ride repository")
	return &RideRepo{
		cfg: cfg,
		db:  db,
	}
}

// IsAssignedDriver reports whether driverID drives the ride group
func (r *RideRepo) IsAssignedDriver(ctx context.Context, driverID string, rideGroupID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM ride_groups
			WHERE id = $1 AND driver_id = $2
		)
	`

	var assigned bool
	err := nr.WithSegment(ctx, "RideRepo.IsAssignedDriver", func() error {
		return r.db.GetContext(ctx, &assigned, query, rideGroupID, driverID)
	})
	if err != nil {
		return false, fmt.Errorf("failed to check driver assignment: %w", err)
	}
	return assigned, nil
}

// IsAuthorizedWatcher reports whether parentID is a member of the ride group
func (r *RideRepo) IsAuthorizedWatcher(ctx context.Context, parentID string, rideGroupID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM ride_group_members
			WHERE ride_group_id = $1 AND parent_id = $2
		)
	`

	var member bool
	err := nr.WithSegment(ctx, "RideRepo.IsAuthorizedWatcher", func() error {
		return r.db.GetContext(ctx, &member, query, rideGroupID, parentID)
	})
	if err != nil {
		return false, fmt.Errorf("failed to check group membership: %w", err)
	}
	return member, nil
}

// GetCheckpoints returns the checkpoints of a ride group in travel order
func (r *RideRepo) GetCheckpoints(ctx context.Context, rideGroupID int64) ([]models.Checkpoint, error) {
	query := `
		SELECT id, ride_group_id, kind, seq, latitude, longitude
		FROM ride_group_checkpoints
		WHERE ride_group_id = $1
		ORDER BY seq ASC
	`

	var checkpoints []models.Checkpoint
	err := nr.WithSegment(ctx, "RideRepo.GetCheckpoints", func() error {
		return r.db.SelectContext(ctx, &checkpoints, query, rideGroupID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get checkpoints: %w", err)
	}

	for _, cp := range checkpoints {
		if !cp.Kind.Valid() {
			logger.Warn("Checkpoint with unknown kind",
				logger.RideGroup(rideGroupID),
				logger.Int64("checkpoint_id", cp.ID),
				logger.String("kind", string(cp.Kind)))
		}
	}
	return checkpoints, nil
}

// GetActiveRideInstance returns the id of the running ride instance of a group
func (r *RideRepo) GetActiveRideInstance(ctx context.Context, rideGroupID int64) (int64, error) {
	query := `
		SELECT id FROM ride_instances
		WHERE ride_group_id = $1 AND status = $2
		ORDER BY id DESC
		LIMIT 1
	`

	var instanceID int64
	err := nr.WithSegment(ctx, "RideRepo.GetActiveRideInstance", func() error {
		return r.db.GetContext(ctx, &instanceID, query, rideGroupID, rideInstanceActive)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("ride group %d: %w", rideGroupID, tracking.ErrNoActiveRide)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get active ride instance: %w", err)
	}
	return instanceID, nil
}

// RecordCheckpointArrival appends an arrival to the ride history.
// Repeated inserts of the same checkpoint for an instance are ignored.
func (r *RideRepo) RecordCheckpointArrival(ctx context.Context, arrival models.CheckpointArrival) error {
	query := `
		INSERT INTO ride_history (
			ride_instance_id, ride_group_id, checkpoint_id, kind,
			latitude, longitude, geohash, arrived_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (ride_instance_id, checkpoint_id) DO NOTHING
	`

	return nr.WithSegment(ctx, "RideRepo.RecordCheckpointArrival", func() error {
		_, err := r.db.ExecContext(ctx, query,
			arrival.RideInstanceID,
			arrival.RideGroupID,
			arrival.Checkpoint.ID,
			arrival.Checkpoint.Kind,
			arrival.Location.Lat,
			arrival.Location.Lng,
			arrival.Geohash,
			arrival.ArrivedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to record checkpoint arrival: %w", err)
		}
		return nil
	})
}

// MarkRideInstanceComplete closes an active ride instance
func (r *RideRepo) MarkRideInstanceComplete(ctx context.Context, rideInstanceID int64, completedAt time.Time) error {
	query := `
		UPDATE ride_instances
		SET status = 'completed', completed_at = $2
		WHERE id = $1 AND status = 'active'
	`

	var result sql.Result
	err := nr.WithSegment(ctx, "RideRepo.MarkRideInstanceComplete", func() error {
		var execErr error
		result, execErr = r.db.ExecContext(ctx, query, rideInstanceID, completedAt)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("failed to complete ride instance: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		// already completed by an earlier attempt
		logger.Debug("Ride instance not active", logger.Int64("ride_instance_id", rideInstanceID))
	}
	return nil
}
