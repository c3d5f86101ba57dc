package constants

// NATS Subjects
const (
	SubjectCheckpointArrived = "tracking.checkpoint.arrived"
	SubjectRideCompleted     = "tracking.ride.completed"
	SubjectLocationRelay     = "tracking.location.relay"
)
