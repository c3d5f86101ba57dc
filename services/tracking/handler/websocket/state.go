package websocket

import "sync"

// phase is the driver side state of one connection
type phase int

const (
	phaseAuthenticated phase = iota
	phaseJoinPending
	phaseActive
)

// connState is the per-connection protocol state. The read loop and the join
// verification goroutine both touch it.
type connState struct {
	mu           sync.Mutex
	phase        phase
	pendingGroup int64
	driverGroup  int64
}

func newConnState() *connState {
	return &connState{phase: phaseAuthenticated}
}

// drivingGroup returns the group this connection publishes for, 0 when none
func (s *connState) drivingGroup() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != phaseActive {
		return 0
	}
	return s.driverGroup
}
