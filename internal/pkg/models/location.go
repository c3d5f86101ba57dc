package models

import "time"

// Coordinate is a point on the earth expressed in degrees
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LocationPayload is the inbound body of driver_location_update.
// Fields are pointers so a missing value can be told apart from zero.
type LocationPayload struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lng *float64 `json:"lng" validate:"required,longitude"`
}

// CachedLocation is the last known position persisted for a ride group,
// stamped with the ride instance it was recorded in
type CachedLocation struct {
	RideGroupID    int64      `json:"ride_group_id"`
	RideInstanceID int64      `json:"ride_instance_id"`
	Location       Coordinate `json:"location"`
	RecordedAt     time.Time  `json:"recorded_at"`
}

// LocationRelay carries a driver position between tracking nodes
type LocationRelay struct {
	NodeID      string     `json:"node_id"`
	RideGroupID int64      `json:"ride_group_id"`
	Location    Coordinate `json:"location"`
	RecordedAt  time.Time  `json:"recorded_at"`
}
