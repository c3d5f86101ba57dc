package registry

import (
	"sort"
	"sync"

	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/services/tracking"
)

// session is the live state of one ride group, guarded by its own mutex
type session struct {
	mu          sync.Mutex
	rideGroupID int64
	state       models.JoinState
	pendingConn string
	driverConn  string
	subscribers map[string]struct{}
	last        *models.Coordinate
	// removed is set once the session left the registry map; holders of a
	// stale pointer must look the session up again
	removed bool
}

func (s *session) subscriberList() []string {
	list := make([]string, 0, len(s.subscribers))
	for id := range s.subscribers {
		list = append(list, id)
	}
	sort.Strings(list)
	return list
}

func (s *session) idle() bool {
	return s.state == models.JoinStateEmpty && len(s.subscribers) == 0
}

// holds reports whether connID still has any role in the session
func (s *session) holds(connID string) bool {
	if s.driverConn == connID || s.pendingConn == connID {
		return true
	}
	_, ok := s.subscribers[connID]
	return ok
}

// MemoryRegistry is the in-process SessionRegistry.
// Lock order: session.mu, then MemoryRegistry.mu or connMu. connMu is a leaf.
type MemoryRegistry struct {
	mu       sync.RWMutex
	sessions map[int64]*session

	connMu sync.Mutex
	conns  map[string]map[int64]struct{}
}

// NewMemoryRegistry creates an empty registry
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		sessions: make(map[int64]*session),
		conns:    make(map[string]map[int64]struct{}),
	}
}

var _ tracking.SessionRegistry = (*MemoryRegistry)(nil)

func (r *MemoryRegistry) lookup(rideGroupID int64) *session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[rideGroupID]
}

func (r *MemoryRegistry) getOrCreate(rideGroupID int64) *session {
	if s := r.lookup(rideGroupID); s != nil {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[rideGroupID]; ok {
		return s
	}
	s := &session{
		rideGroupID: rideGroupID,
		subscribers: make(map[string]struct{}),
	}
	r.sessions[rideGroupID] = s
	return s
}

// lockSession returns the live session locked, or nil when absent and create is false
func (r *MemoryRegistry) lockSession(rideGroupID int64, create bool) *session {
	for {
		var s *session
		if create {
			s = r.getOrCreate(rideGroupID)
		} else {
			s = r.lookup(rideGroupID)
		}
		if s == nil {
			return nil
		}

		s.mu.Lock()
		if !s.removed {
			return s
		}
		s.mu.Unlock()
	}
}

// release unlocks s, destroying it first when nothing is left in it
func (r *MemoryRegistry) release(s *session) {
	if s.idle() {
		s.removed = true
		r.mu.Lock()
		if r.sessions[s.rideGroupID] == s {
			delete(r.sessions, s.rideGroupID)
		}
		r.mu.Unlock()
	}
	s.mu.Unlock()
}

func (r *MemoryRegistry) trackConn(connID string, rideGroupID int64) {
	r.connMu.Lock()
	defer r.connMu.Unlock()
	groups, ok := r.conns[connID]
	if !ok {
		groups = make(map[int64]struct{})
		r.conns[connID] = groups
	}
	groups[rideGroupID] = struct{}{}
}

func (r *MemoryRegistry) untrackConn(connID string, rideGroupID int64) {
	r.connMu.Lock()
	defer r.connMu.Unlock()
	groups, ok := r.conns[connID]
	if !ok {
		return
	}
	delete(groups, rideGroupID)
	if len(groups) == 0 {
		delete(r.conns, connID)
	}
}

// BeginDriverJoin claims the driver slot of a session for connID
func (r *MemoryRegistry) BeginDriverJoin(rideGroupID int64, connID string) error {
	s := r.lockSession(rideGroupID, true)
	defer r.release(s)

	switch s.state {
	case models.JoinStateDriverJoining:
		return tracking.ErrJoinInProgress
	case models.JoinStateDriverActive:
		if s.driverConn == connID {
			return tracking.ErrAlreadyJoined
		}
		return tracking.ErrDriverActive
	}

	s.state = models.JoinStateDriverJoining
	s.pendingConn = connID
	r.trackConn(connID, rideGroupID)
	return nil
}

// ConfirmDriverJoin binds the pending claim of connID as the active driver
func (r *MemoryRegistry) ConfirmDriverJoin(rideGroupID int64, connID string) bool {
	s := r.lockSession(rideGroupID, false)
	if s == nil {
		return false
	}
	defer r.release(s)

	if s.state != models.JoinStateDriverJoining || s.pendingConn != connID {
		return false
	}
	s.state = models.JoinStateDriverActive
	s.driverConn = connID
	s.pendingConn = ""
	return true
}

// AbortDriverJoin drops the pending claim of connID
func (r *MemoryRegistry) AbortDriverJoin(rideGroupID int64, connID string) {
	s := r.lockSession(rideGroupID, false)
	if s == nil {
		return
	}
	defer r.release(s)

	if s.state != models.JoinStateDriverJoining || s.pendingConn != connID {
		return
	}
	s.state = models.JoinStateEmpty
	s.pendingConn = ""
	if !s.holds(connID) {
		r.untrackConn(connID, rideGroupID)
	}
}

// AddSubscriber adds connID to the watchers of a session
func (r *MemoryRegistry) AddSubscriber(rideGroupID int64, connID string) {
	s := r.lockSession(rideGroupID, true)
	defer r.release(s)

	s.subscribers[connID] = struct{}{}
	r.trackConn(connID, rideGroupID)
}

// RemoveConnection removes connID from every session it holds a role in.
// Unknown and repeated ids are a no-op.
func (r *MemoryRegistry) RemoveConnection(connID string) []models.Departure {
	r.connMu.Lock()
	groups := r.conns[connID]
	delete(r.conns, connID)
	r.connMu.Unlock()

	ids := make([]int64, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	departures := make([]models.Departure, 0, len(ids))
	for _, id := range ids {
		s := r.lockSession(id, false)
		if s == nil {
			continue
		}
		if !s.holds(connID) {
			r.release(s)
			continue
		}

		dep := models.Departure{RideGroupID: id}
		if s.driverConn == connID {
			dep.WasDriver = true
			s.driverConn = ""
			s.state = models.JoinStateEmpty
		}
		if s.pendingConn == connID {
			s.pendingConn = ""
			s.state = models.JoinStateEmpty
		}
		delete(s.subscribers, connID)
		dep.Subscribers = s.subscriberList()
		r.release(s)

		departures = append(departures, dep)
	}
	return departures
}

// RecordLocation replaces the last known location of a session. Only the
// active driver connection may publish.
func (r *MemoryRegistry) RecordLocation(rideGroupID int64, connID string, coord models.Coordinate) ([]string, error) {
	s := r.lockSession(rideGroupID, false)
	if s == nil {
		return nil, tracking.ErrSessionNotFound
	}
	defer r.release(s)

	if s.state != models.JoinStateDriverActive || s.driverConn != connID {
		return nil, tracking.ErrNotAuthorized
	}
	loc := coord
	s.last = &loc
	return s.subscriberList(), nil
}

// LastKnownLocation returns the last driver position of a session
func (r *MemoryRegistry) LastKnownLocation(rideGroupID int64) (models.Coordinate, bool) {
	s := r.lookup(rideGroupID)
	if s == nil {
		return models.Coordinate{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return models.Coordinate{}, false
	}
	return *s.last, true
}

// Subscribers returns a copy of the watchers of a session
func (r *MemoryRegistry) Subscribers(rideGroupID int64) []string {
	s := r.lookup(rideGroupID)
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscriberList()
}

// Snapshot returns a read-only view of a session
func (r *MemoryRegistry) Snapshot(rideGroupID int64) (models.SessionSnapshot, bool) {
	s := r.lookup(rideGroupID)
	if s == nil {
		return models.SessionSnapshot{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.removed {
		return models.SessionSnapshot{}, false
	}

	snap := models.SessionSnapshot{
		RideGroupID:        s.rideGroupID,
		JoinState:          s.state,
		DriverConnectionID: s.driverConn,
		Subscribers:        s.subscriberList(),
	}
	if s.last != nil {
		loc := *s.last
		snap.LastKnownLocation = &loc
	}
	return snap, true
}

// Len returns the number of live sessions
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
