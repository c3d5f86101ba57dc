package models

import (
	"time"
)

// CheckpointKind identifies the purpose of a checkpoint
type CheckpointKind string

const (
	CheckpointPickup  CheckpointKind = "pickup"
	CheckpointDropoff CheckpointKind = "dropoff"
	CheckpointSchool  CheckpointKind = "school"
	CheckpointGarage  CheckpointKind = "garage"
)

// Valid reports whether the kind is one of the known kinds
func (k CheckpointKind) Valid() bool {
	switch k {
	case CheckpointPickup, CheckpointDropoff, CheckpointSchool, CheckpointGarage:
		return true
	}
	return false
}

// Checkpoint is a point of interest a ride group passes through in order
type Checkpoint struct {
	ID          int64          `json:"id" db:"id"`
	RideGroupID int64          `json:"ride_group_id" db:"ride_group_id"`
	Kind        CheckpointKind `json:"kind" db:"kind"`
	Order       int            `json:"order" db:"seq"`
	Lat         float64        `json:"lat" db:"latitude"`
	Lng         float64        `json:"lng" db:"longitude"`
}

// Coordinate returns the checkpoint position
func (c Checkpoint) Coordinate() Coordinate {
	return Coordinate{Lat: c.Lat, Lng: c.Lng}
}

// JoinState is the driver side state of a ride session
type JoinState int

const (
	JoinStateEmpty JoinState = iota
	JoinStateDriverJoining
	JoinStateDriverActive
)

func (s JoinState) String() string {
	switch s {
	case JoinStateEmpty:
		return "EMPTY"
	case JoinStateDriverJoining:
		return "DRIVER_JOINING"
	case JoinStateDriverActive:
		return "DRIVER_ACTIVE"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the state name in JSON
func (s JoinState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SessionSnapshot is a read-only copy of one ride session
type SessionSnapshot struct {
	RideGroupID        int64       `json:"ride_group_id"`
	JoinState          JoinState   `json:"join_state"`
	DriverConnectionID string      `json:"driver_connection_id,omitempty"`
	Subscribers        []string    `json:"subscribers"`
	LastKnownLocation  *Coordinate `json:"last_known_location,omitempty"`
}

// Departure describes a session a removed connection belonged to
type Departure struct {
	RideGroupID int64
	WasDriver   bool
	Subscribers []string
}

// CheckpointArrival is the ride history record of reaching a checkpoint
type CheckpointArrival struct {
	RideGroupID    int64      `json:"ride_group_id"`
	RideInstanceID int64      `json:"ride_instance_id"`
	Checkpoint     Checkpoint `json:"checkpoint"`
	Location       Coordinate `json:"location"`
	Geohash        string     `json:"geohash"`
	ArrivedAt      time.Time  `json:"arrived_at"`
	Completed      bool       `json:"completed"`
}

// RideCompletedEvent is published when the final checkpoint is passed
type RideCompletedEvent struct {
	RideGroupID    int64     `json:"ride_group_id"`
	RideInstanceID int64     `json:"ride_instance_id"`
	CompletedAt    time.Time `json:"completed_at"`
}

// RideProgress reports checkpoint progression of a ride group
type RideProgress struct {
	RideGroupID    int64       `json:"ride_group_id"`
	RideInstanceID int64       `json:"ride_instance_id"`
	NextIndex      int         `json:"next_index"`
	Total          int         `json:"total"`
	Complete       bool        `json:"complete"`
	Next           *Checkpoint `json:"next,omitempty"`
}
