package tracking

import "errors"

// Validation errors: malformed payloads, never mutate state
var (
	ErrInvalidRideGroup  = errors.New("invalid ride group id")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidPayload    = errors.New("invalid payload")
)

// ErrNotAuthorized is returned when the caller is not the bound driver or an
// authorized watcher
var ErrNotAuthorized = errors.New("not authorized")

// Conflict errors: the driver slot of a session is taken or being taken
var (
	ErrJoinInProgress = errors.New("join already in progress")
	ErrDriverActive   = errors.New("driver already active")
	ErrAlreadyJoined  = errors.New("already joined")
)

// ErrDependency wraps failures of the database, cache or broker
var ErrDependency = errors.New("dependency failure")

// ErrSessionNotFound is returned for operations on a session with no registry entry
var ErrSessionNotFound = errors.New("session not found")

// ErrNoActiveRide is returned when a ride group has no active ride instance to track
var ErrNoActiveRide = errors.New("no active ride")

// ErrShuttingDown is returned for driver joins that arrive during shutdown
var ErrShuttingDown = errors.New("shutting down")

// ErrJoinTimeout is returned when join verification does not finish in time
var ErrJoinTimeout = errors.New("timeout")

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidRideGroup) ||
		errors.Is(err, ErrInvalidCoordinate) ||
		errors.Is(err, ErrInvalidPayload)
}

// IsConflict reports whether err is a ConflictError
func IsConflict(err error) bool {
	return errors.Is(err, ErrJoinInProgress) ||
		errors.Is(err, ErrDriverActive) ||
		errors.Is(err, ErrAlreadyJoined)
}
