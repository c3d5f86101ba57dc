package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/piresc/carpool/internal/pkg/constants"
	"github.com/piresc/carpool/internal/pkg/database"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/piresc/carpool/services/tracking"
)

const (
	// LocationTTL is how long the last position of a ride group stays readable.
	// Long enough to cover a school run and a late watcher.
	LocationTTL = 6 * time.Hour
)

type locationCache struct {
	redisClient *database.RedisClient
}

// NewLocationCache creates a new Redis backed location cache
func NewLocationCache(redisClient *database.RedisClient) tracking.LocationCache {
	return &locationCache{
		redisClient: redisClient,
	}
}

// StoreLocation overwrites the last location of a ride group
func (r *locationCache) StoreLocation(ctx context.Context, location models.CachedLocation) error {
	locationKey := fmt.Sprintf(constants.KeyRideGroupLocation, location.RideGroupID)
	locationData := map[string]interface{}{
		constants.FieldLatitude:  strconv.FormatFloat(location.Location.Lat, 'f', -1, 64),
		constants.FieldLongitude: strconv.FormatFloat(location.Location.Lng, 'f', -1, 64),
		constants.FieldTimestamp: strconv.FormatInt(location.RecordedAt.UnixMilli(), 10),
		constants.FieldInstance:  strconv.FormatInt(location.RideInstanceID, 10),
	}

	if err := r.redisClient.HSetWithTTL(ctx, locationKey, locationData, LocationTTL); err != nil {
		return fmt.Errorf("failed to store location update: %w", err)
	}
	return nil
}

// GetLastLocation gets the last stored location of a ride group, nil when none
func (r *locationCache) GetLastLocation(ctx context.Context, rideGroupID int64) (*models.CachedLocation, error) {
	locationKey := fmt.Sprintf(constants.KeyRideGroupLocation, rideGroupID)

	values, err := r.redisClient.HGetAll(ctx, locationKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get location data: %w", err)
	}
	if len(values) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(values[constants.FieldLatitude], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude format: %w", err)
	}
	lng, err := strconv.ParseFloat(values[constants.FieldLongitude], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude format: %w", err)
	}
	ts, err := strconv.ParseInt(values[constants.FieldTimestamp], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp format: %w", err)
	}

	// entries written before instances were stamped read as instance 0
	var instanceID int64
	if raw, ok := values[constants.FieldInstance]; ok {
		if instanceID, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid ride instance format: %w", err)
		}
	}

	return &models.CachedLocation{
		RideGroupID:    rideGroupID,
		RideInstanceID: instanceID,
		Location:       models.Coordinate{Lat: lat, Lng: lng},
		RecordedAt:     time.UnixMilli(ts).UTC(),
	}, nil
}

// DeleteLocation drops the last location of a ride group
func (r *locationCache) DeleteLocation(ctx context.Context, rideGroupID int64) error {
	locationKey := fmt.Sprintf(constants.KeyRideGroupLocation, rideGroupID)
	if err := r.redisClient.Delete(ctx, locationKey); err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	return nil
}
