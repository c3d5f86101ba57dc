package constants

// Redis key formats
const (
	KeyRideGroupLocation = "tracking:group:%d:location" // Format: tracking:group:{ride_group_id}:location
)

// Redis hash fields
const (
	FieldLatitude  = "lat"
	FieldLongitude = "lng"
	FieldTimestamp = "ts"
	FieldInstance  = "ride_instance_id"
)
