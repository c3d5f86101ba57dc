package constants

// WebSocket event types
const (
	// Common events
	EventError = "error"
	EventAck   = "ack"
	EventPing  = "ping"
	EventPong  = "pong"

	// Driver events
	EventDriverJoinRide       = "driver_join_ride"
	EventDriverLocationUpdate = "driver_location_update"

	// Parent events
	EventParentWatchRide = "parent_watch_ride"

	// Pushed to watchers
	EventLocationUpdate    = "location_update"
	EventDriverLeft        = "driver_left"
	EventCheckpointReached = "checkpoint_reached"
	EventRideCompleted     = "ride_completed"
)

// Ack markers
const (
	AckOK       = "OK:"
	AckError    = "ERR:"
	AckLocation = "LOCATION:"

	AckJoined   = AckOK + "joined"
	AckWatching = AckOK + "watching"
)

// WebSocket error codes
const (
	ErrorInvalidFormat   = "invalid_format"
	ErrorUnauthorized    = "unauthorized"
	ErrorInvalidLocation = "invalid_location"
	ErrorSessionNotFound = "session_not_found"
)

// ErrorSeverity decides how much of an error is shown to the client
type ErrorSeverity int

const (
	ErrorSeverityClient   ErrorSeverity = iota // validation and input issues
	ErrorSeverityServer                        // internal failures
	ErrorSeveritySecurity                      // authorization failures
)
