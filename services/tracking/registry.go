package tracking

import "github.com/piresc/carpool/internal/pkg/models"

//go:generate mockgen -destination=mocks/mock_registry.go -package=mocks github.com/piresc/carpool/services/tracking SessionRegistry

// SessionRegistry holds the live state of every ride session on this node.
// All operations on one ride group are atomic with respect to each other;
// operations on different ride groups never block each other.
type SessionRegistry interface {
	// BeginDriverJoin claims the driver slot of a session for connID,
	// creating the session when absent
	BeginDriverJoin(rideGroupID int64, connID string) error
	// ConfirmDriverJoin binds a pending claim; false for stale confirmations
	ConfirmDriverJoin(rideGroupID int64, connID string) bool
	// AbortDriverJoin releases a pending claim held by connID
	AbortDriverJoin(rideGroupID int64, connID string)
	// AddSubscriber adds connID to the watchers of a session, idempotent
	AddSubscriber(rideGroupID int64, connID string)
	// RemoveConnection removes connID from every session it belongs to
	RemoveConnection(connID string) []models.Departure
	// RecordLocation stores the driver position and returns the watchers to notify
	RecordLocation(rideGroupID int64, connID string, coord models.Coordinate) ([]string, error)
	// LastKnownLocation returns the last driver position of a session
	LastKnownLocation(rideGroupID int64) (models.Coordinate, bool)
	// Subscribers returns a copy of the watchers of a session
	Subscribers(rideGroupID int64) []string
	// Snapshot returns a read-only view of a session
	Snapshot(rideGroupID int64) (models.SessionSnapshot, bool)
}
