package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/piresc/carpool/internal/pkg/logger"
	nr "github.com/piresc/carpool/internal/pkg/newrelic"
	"github.com/piresc/carpool/services/tracking"
)

// job is one storage or broker side effect of a location update
type job struct {
	name        string
	rideGroupID int64
	run         func(ctx context.Context) error
}

// pending holds the queued side effects of one ride group. Only the latest
// location write is kept; every other effect runs in enqueue order.
type pending struct {
	location *job
	effects  []job
}

// shard is the queue of one worker. Pushing never blocks the caller: effects
// wait in per-group lists and groups are served round robin.
type shard struct {
	mu     sync.Mutex
	groups map[int64]*pending
	ready  []int64
	wake   chan struct{}
	closed bool
}

func newShard() *shard {
	return &shard{
		groups: make(map[int64]*pending),
		wake:   make(chan struct{}, 1),
	}
}

// push queues j; a location write replaces the one still waiting for the group
func (s *shard) push(j job, latestWins bool) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	p, ok := s.groups[j.rideGroupID]
	if !ok {
		p = &pending{}
		s.groups[j.rideGroupID] = p
		s.ready = append(s.ready, j.rideGroupID)
	}
	if latestWins {
		p.location = &j
	} else {
		p.effects = append(p.effects, j)
	}
	s.mu.Unlock()

	s.signal()
	return true
}

func (s *shard) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// next takes everything queued for the oldest ready group. It blocks until
// work arrives and returns false once the shard is closed and empty.
func (s *shard) next() ([]job, bool) {
	for {
		s.mu.Lock()
		if len(s.ready) > 0 {
			id := s.ready[0]
			s.ready = s.ready[1:]
			p := s.groups[id]
			delete(s.groups, id)
			s.mu.Unlock()

			batch := make([]job, 0, len(p.effects)+1)
			if p.location != nil {
				batch = append(batch, *p.location)
			}
			return append(batch, p.effects...), true
		}
		closed := s.closed
		s.mu.Unlock()

		if closed {
			return nil, false
		}
		<-s.wake
	}
}

func (s *shard) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.signal()
}

func (uc *TrackingUC) shardOf(rideGroupID int64) *shard {
	return uc.shards[uint64(rideGroupID)%uint64(len(uc.shards))]
}

// enqueue hands j to the worker owning its ride group. Jobs of one group run
// in enqueue order.
func (uc *TrackingUC) enqueue(j job) {
	uc.submit(j, false)
}

// enqueueLocation queues a location write that a newer write may supersede
func (uc *TrackingUC) enqueueLocation(j job) {
	uc.submit(j, true)
}

func (uc *TrackingUC) submit(j job, latestWins bool) {
	if !uc.shardOf(j.rideGroupID).push(j, latestWins) {
		logger.Warn("Dropping side effect after close",
			logger.String("operation", j.name),
			logger.RideGroup(j.rideGroupID))
	}
}

func (uc *TrackingUC) worker(s *shard) {
	defer uc.wg.Done()
	for {
		batch, ok := s.next()
		if !ok {
			return
		}
		for _, j := range batch {
			uc.execute(j)
		}
	}
}

// execute runs j with retries; failures are logged and never reach the caller
func (uc *TrackingUC) execute(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	ctx, end := nr.BackgroundTransaction(ctx, uc.nrApp, "tracking/"+j.name)
	err := uc.retrier.Execute(ctx, j.name, j.run)
	end(err)

	if err != nil {
		logger.Error("Tracking side effect failed",
			logger.String("operation", j.name),
			logger.RideGroup(j.rideGroupID),
			logger.Err(fmt.Errorf("%w: %w", tracking.ErrDependency, err)))
	}
}

// Close stops accepting side effects and waits for queued ones to finish
func (uc *TrackingUC) Close() {
	uc.closeOnce.Do(func() {
		for _, s := range uc.shards {
			s.close()
		}
	})
	uc.wg.Wait()
}
