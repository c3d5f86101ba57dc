package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/internal/utils"
	"github.com/piresc/carpool/services/tracking"
)

// rideProgress is the checkpoint pointer of one ride group.
// next only ever grows; checkpoints is fixed once primed.
type rideProgress struct {
	mu             sync.Mutex
	rideInstanceID int64
	checkpoints    []models.Checkpoint
	next           int
}

func (p *rideProgress) complete() bool {
	return p.next >= len(p.checkpoints)
}

// AuthorizeDriver checks the account is the assigned driver of the group
func (uc *TrackingUC) AuthorizeDriver(ctx context.Context, account models.Account, rideGroupID int64) error {
	if !account.IsDriver() {
		return tracking.ErrNotAuthorized
	}

	var assigned bool
	err := uc.db.Execute(ctx, func(ctx context.Context) (err error) {
		assigned, err = uc.rideRepo.IsAssignedDriver(ctx, account.ID, rideGroupID)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: check driver assignment: %w", tracking.ErrDependency, err)
	}
	if !assigned {
		return tracking.ErrNotAuthorized
	}
	return nil
}

// AuthorizeWatcher checks the account may watch the group. Admins watch any group.
func (uc *TrackingUC) AuthorizeWatcher(ctx context.Context, account models.Account, rideGroupID int64) error {
	switch account.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleParent:
	default:
		return tracking.ErrNotAuthorized
	}

	var member bool
	err := uc.db.Execute(ctx, func(ctx context.Context) (err error) {
		member, err = uc.rideRepo.IsAuthorizedWatcher(ctx, account.ID, rideGroupID)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: check watcher membership: %w", tracking.ErrDependency, err)
	}
	if !member {
		return tracking.ErrNotAuthorized
	}
	return nil
}

// Prime loads the ordered checkpoints and active ride instance of a group.
// A primed group is not loaded again.
func (uc *TrackingUC) Prime(ctx context.Context, rideGroupID int64) error {
	if uc.lookup(rideGroupID) != nil {
		return nil
	}
	_, err := uc.load(ctx, rideGroupID)
	return err
}

func (uc *TrackingUC) lookup(rideGroupID int64) *rideProgress {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.progress[rideGroupID]
}

func (uc *TrackingUC) load(ctx context.Context, rideGroupID int64) (*rideProgress, error) {
	var checkpoints []models.Checkpoint
	err := uc.db.Execute(ctx, func(ctx context.Context) (err error) {
		checkpoints, err = uc.rideRepo.GetCheckpoints(ctx, rideGroupID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: load checkpoints: %w", tracking.ErrDependency, err)
	}
	var instanceID int64
	err = uc.db.Execute(ctx, func(ctx context.Context) (err error) {
		instanceID, err = uc.rideRepo.GetActiveRideInstance(ctx, rideGroupID)
		return err
	})
	if err != nil {
		if errors.Is(err, tracking.ErrNoActiveRide) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: load ride instance: %w", tracking.ErrDependency, err)
	}

	ordered := make([]models.Checkpoint, len(checkpoints))
	copy(ordered, checkpoints)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	uc.mu.Lock()
	if p, ok := uc.progress[rideGroupID]; ok {
		uc.mu.Unlock()
		return p, nil
	}
	p := &rideProgress{rideInstanceID: instanceID, checkpoints: ordered}
	uc.progress[rideGroupID] = p
	uc.mu.Unlock()

	logger.Info("Ride group primed",
		logger.RideGroup(rideGroupID),
		logger.Int64("ride_instance_id", instanceID),
		logger.Int("checkpoints", len(ordered)))

	// nothing to reach: the instance is finished as soon as it is tracked
	if len(ordered) == 0 {
		logger.Warn("Ride group has no checkpoints, completing ride instance",
			logger.RideGroup(rideGroupID),
			logger.Int64("ride_instance_id", instanceID))
		uc.enqueueCompletion(models.RideCompletedEvent{
			RideGroupID:    rideGroupID,
			RideInstanceID: instanceID,
			CompletedAt:    time.Now().UTC(),
		})
	}
	return p, nil
}

// ProcessLocation evaluates the pending checkpoint against a driver position.
// It returns the arrival when the pending checkpoint is reached, nil otherwise.
func (uc *TrackingUC) ProcessLocation(ctx context.Context, rideGroupID int64, coord models.Coordinate, at time.Time) (*models.CheckpointArrival, error) {
	p := uc.lookup(rideGroupID)
	if p == nil {
		var err error
		if p, err = uc.load(ctx, rideGroupID); err != nil {
			return nil, err
		}
	}

	arrival, instanceID, finished := uc.advance(p, rideGroupID, coord, at)

	// updates of one group come from its single bound driver, so effects
	// are queued in arrival order without holding the pointer lock
	if !finished {
		cached := models.CachedLocation{
			RideGroupID:    rideGroupID,
			RideInstanceID: instanceID,
			Location:       coord,
			RecordedAt:     at,
		}
		uc.enqueueLocation(job{
			name:        "StoreLocation",
			rideGroupID: rideGroupID,
			run: func(ctx context.Context) error {
				return uc.cache.StoreLocation(ctx, cached)
			},
		})
	}
	if arrival != nil {
		uc.enqueueArrival(*arrival)
	}
	return arrival, nil
}

// advance moves the pointer of p when coord reaches its pending checkpoint.
// finished reports a ride that was already complete before this update.
func (uc *TrackingUC) advance(p *rideProgress, rideGroupID int64, coord models.Coordinate, at time.Time) (*models.CheckpointArrival, int64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.complete() {
		return nil, p.rideInstanceID, true
	}
	cp := p.checkpoints[p.next]
	if !utils.IsWithinThreshold(coord, cp.Coordinate(), uc.threshold) {
		return nil, p.rideInstanceID, false
	}
	p.next++

	arrival := &models.CheckpointArrival{
		RideGroupID:    rideGroupID,
		RideInstanceID: p.rideInstanceID,
		Checkpoint:     cp,
		Location:       coord,
		Geohash:        utils.EncodeCell(coord, utils.DefaultCellPrecision),
		ArrivedAt:      at,
		Completed:      p.complete(),
	}

	logger.Info("Checkpoint reached",
		logger.RideGroup(rideGroupID),
		logger.String("kind", string(cp.Kind)),
		logger.Int("order", cp.Order),
		logger.Float64("distance_meters", utils.DistanceMeters(coord, cp.Coordinate())),
		logger.Bool("completed", arrival.Completed))
	return arrival, p.rideInstanceID, false
}

func (uc *TrackingUC) enqueueArrival(arrival models.CheckpointArrival) {
	uc.enqueue(job{
		name:        "RecordCheckpointArrival",
		rideGroupID: arrival.RideGroupID,
		run: func(ctx context.Context) error {
			return uc.rideRepo.RecordCheckpointArrival(ctx, arrival)
		},
	})
	uc.enqueue(job{
		name:        "PublishCheckpointArrived",
		rideGroupID: arrival.RideGroupID,
		run: func(ctx context.Context) error {
			return uc.trackGW.PublishCheckpointArrived(ctx, arrival)
		},
	})
	if !arrival.Completed {
		return
	}
	uc.enqueueCompletion(models.RideCompletedEvent{
		RideGroupID:    arrival.RideGroupID,
		RideInstanceID: arrival.RideInstanceID,
		CompletedAt:    arrival.ArrivedAt,
	})
}

// enqueueCompletion closes the ride instance, announces it and drops the
// cached position so the next ride of the group starts without one
func (uc *TrackingUC) enqueueCompletion(event models.RideCompletedEvent) {
	uc.enqueue(job{
		name:        "MarkRideInstanceComplete",
		rideGroupID: event.RideGroupID,
		run: func(ctx context.Context) error {
			return uc.rideRepo.MarkRideInstanceComplete(ctx, event.RideInstanceID, event.CompletedAt)
		},
	})
	uc.enqueue(job{
		name:        "PublishRideCompleted",
		rideGroupID: event.RideGroupID,
		run: func(ctx context.Context) error {
			return uc.trackGW.PublishRideCompleted(ctx, event)
		},
	})
	uc.enqueue(job{
		name:        "DeleteLocation",
		rideGroupID: event.RideGroupID,
		run: func(ctx context.Context) error {
			return uc.cache.DeleteLocation(ctx, event.RideGroupID)
		},
	})
}

// Progress reports the checkpoint pointer of a tracked group
func (uc *TrackingUC) Progress(rideGroupID int64) (models.RideProgress, bool) {
	p := uc.lookup(rideGroupID)
	if p == nil {
		return models.RideProgress{}, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	progress := models.RideProgress{
		RideGroupID:    rideGroupID,
		RideInstanceID: p.rideInstanceID,
		NextIndex:      p.next,
		Total:          len(p.checkpoints),
		Complete:       p.complete(),
	}
	if !progress.Complete {
		next := p.checkpoints[p.next]
		progress.Next = &next
	}
	return progress, true
}

// DriverLeft releases the progress of a completed ride. An unfinished ride
// keeps its pointer for the next driver join.
func (uc *TrackingUC) DriverLeft(rideGroupID int64) {
	p := uc.lookup(rideGroupID)
	if p == nil {
		return
	}

	p.mu.Lock()
	done := p.complete()
	p.mu.Unlock()
	if !done {
		return
	}

	uc.mu.Lock()
	if uc.progress[rideGroupID] == p {
		delete(uc.progress, rideGroupID)
	}
	uc.mu.Unlock()
	logger.Debug("Released completed ride group", logger.RideGroup(rideGroupID))
}

// CachedLocation returns the last position persisted for the active ride of
// a group. Positions left over from an earlier ride instance read as none.
func (uc *TrackingUC) CachedLocation(ctx context.Context, rideGroupID int64) (*models.CachedLocation, error) {
	loc, err := uc.cache.GetLastLocation(ctx, rideGroupID)
	if err != nil {
		return nil, fmt.Errorf("%w: read cached location: %w", tracking.ErrDependency, err)
	}
	if loc == nil {
		return nil, nil
	}

	instanceID, err := uc.activeInstance(ctx, rideGroupID)
	if errors.Is(err, tracking.ErrNoActiveRide) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if loc.RideInstanceID != instanceID {
		logger.Debug("Ignoring cached location of another ride instance",
			logger.RideGroup(rideGroupID),
			logger.Int64("cached_instance_id", loc.RideInstanceID),
			logger.Int64("ride_instance_id", instanceID))
		return nil, nil
	}
	return loc, nil
}

// activeInstance answers from the local pointer when the group is tracked
// here and from the ride store otherwise
func (uc *TrackingUC) activeInstance(ctx context.Context, rideGroupID int64) (int64, error) {
	if p := uc.lookup(rideGroupID); p != nil {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.complete() {
			return 0, tracking.ErrNoActiveRide
		}
		return p.rideInstanceID, nil
	}

	var instanceID int64
	err := uc.db.Execute(ctx, func(ctx context.Context) (err error) {
		instanceID, err = uc.rideRepo.GetActiveRideInstance(ctx, rideGroupID)
		return err
	})
	if err != nil {
		if errors.Is(err, tracking.ErrNoActiveRide) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: load ride instance: %w", tracking.ErrDependency, err)
	}
	return instanceID, nil
}
