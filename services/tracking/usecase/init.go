package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/carpool/internal/pkg/circuitbreaker"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/internal/pkg/retry"
	"github.com/piresc/carpool/internal/utils"
	"github.com/piresc/carpool/services/tracking"
)

const (
	defaultWorkers    = 8
	sideEffectTimeout = 10 * time.Second
)

// TrackingUC implements the tracking use case interface
type TrackingUC struct {
	rideRepo  tracking.RideRepo
	cache     tracking.LocationCache
	trackGW   tracking.TrackingGW
	retrier   *retry.Retrier
	db        *circuitbreaker.CircuitBreaker
	nrApp     *newrelic.Application
	threshold float64

	mu       sync.Mutex
	progress map[int64]*rideProgress

	shards    []*shard
	closeOnce sync.Once
	wg        sync.WaitGroup
}

var _ tracking.TrackingUC = (*TrackingUC)(nil)

// NewTrackingUC creates a new tracking use case and starts its side effect workers
func NewTrackingUC(
	cfg *models.Config,
	rideRepo tracking.RideRepo,
	cache tracking.LocationCache,
	trackGW tracking.TrackingGW,
	retrier *retry.Retrier,
	nrApp *newrelic.Application,
) *TrackingUC {
	threshold := cfg.Tracking.ThresholdMeters
	if threshold <= 0 {
		threshold = utils.DefaultThresholdMeters
	}
	workers := cfg.Tracking.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if retrier == nil {
		retrier = retry.NewWithDefaults(nil)
	}

	uc := &TrackingUC{
		rideRepo:  rideRepo,
		cache:     cache,
		trackGW:   trackGW,
		retrier:   retrier,
		db:        newStoreBreaker(),
		nrApp:     nrApp,
		threshold: threshold,
		progress:  make(map[int64]*rideProgress),
		shards:    make([]*shard, workers),
	}
	for i := range uc.shards {
		uc.shards[i] = newShard()
		uc.wg.Add(1)
		go uc.worker(uc.shards[i])
	}
	return uc
}

// newStoreBreaker guards the ride store reads on the join and watch path.
// Answers the store gives on purpose are not failures.
func newStoreBreaker() *circuitbreaker.CircuitBreaker {
	cfg := circuitbreaker.DefaultConfig("ride-store")
	cfg.IsFailure = func(err error) bool {
		return err != nil &&
			!errors.Is(err, tracking.ErrNoActiveRide) &&
			!errors.Is(err, context.Canceled)
	}
	return circuitbreaker.New(cfg)
}
