package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/piresc/carpool/internal/pkg/constants"
	"github.com/piresc/carpool/internal/pkg/database"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMiniredis creates a new miniredis server and returns a Redis client connected to it
func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return mr, client
}

func TestStoreLocation(t *testing.T) {
	// Arrange
	mr, client := setupMiniredis(t)
	defer mr.Close()
	cache := NewLocationCache(&database.RedisClient{Client: client})

	at := time.Date(2026, 1, 5, 7, 30, 0, 123000000, time.UTC)
	location := models.CachedLocation{
		RideGroupID:    7,
		RideInstanceID: 501,
		Location:       models.Coordinate{Lat: 30.0444, Lng: 31.2357},
		RecordedAt:     at,
	}

	// Act
	err := cache.StoreLocation(context.Background(), location)

	// Assert
	require.NoError(t, err)
	key := fmt.Sprintf(constants.KeyRideGroupLocation, 7)
	assert.Equal(t, "30.0444", mr.HGet(key, constants.FieldLatitude))
	assert.Equal(t, "31.2357", mr.HGet(key, constants.FieldLongitude))
	assert.Equal(t, fmt.Sprint(at.UnixMilli()), mr.HGet(key, constants.FieldTimestamp))
	assert.Equal(t, "501", mr.HGet(key, constants.FieldInstance))
	assert.Equal(t, LocationTTL, mr.TTL(key))
}

func TestGetLastLocation(t *testing.T) {
	mr, client := setupMiniredis(t)
	defer mr.Close()
	cache := NewLocationCache(&database.RedisClient{Client: client})
	ctx := context.Background()

	at := time.Date(2026, 1, 5, 7, 30, 0, 123000000, time.UTC)
	require.NoError(t, cache.StoreLocation(ctx, models.CachedLocation{
		RideGroupID: 7,
		Location:    models.Coordinate{Lat: 30.0444, Lng: 31.2357},
		RecordedAt:  at,
	}))

	// last write wins
	later := at.Add(time.Second)
	require.NoError(t, cache.StoreLocation(ctx, models.CachedLocation{
		RideGroupID:    7,
		RideInstanceID: 501,
		Location:       models.Coordinate{Lat: 30.045, Lng: 31.236},
		RecordedAt:     later,
	}))

	got, err := cache.GetLastLocation(ctx, 7)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.RideGroupID)
	assert.Equal(t, int64(501), got.RideInstanceID)
	assert.Equal(t, models.Coordinate{Lat: 30.045, Lng: 31.236}, got.Location)
	assert.True(t, later.Equal(got.RecordedAt))
}

func TestGetLastLocation_Missing(t *testing.T) {
	mr, client := setupMiniredis(t)
	defer mr.Close()
	cache := NewLocationCache(&database.RedisClient{Client: client})

	got, err := cache.GetLastLocation(context.Background(), 42)

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetLastLocation_Corrupt(t *testing.T) {
	mr, client := setupMiniredis(t)
	defer mr.Close()
	cache := NewLocationCache(&database.RedisClient{Client: client})

	key := fmt.Sprintf(constants.KeyRideGroupLocation, 7)
	mr.HSet(key, constants.FieldLatitude, "north")

	_, err := cache.GetLastLocation(context.Background(), 7)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid latitude format")
}

func TestStoreLocation_RedisDown(t *testing.T) {
	mr, client := setupMiniredis(t)
	cache := NewLocationCache(&database.RedisClient{Client: client})
	mr.Close()

	err := cache.StoreLocation(context.Background(), models.CachedLocation{RideGroupID: 7})

	assert.Error(t, err)
}

func TestGetLastLocation_Unstamped(t *testing.T) {
	mr, client := setupMiniredis(t)
	defer mr.Close()
	cache := NewLocationCache(&database.RedisClient{Client: client})

	key := fmt.Sprintf(constants.KeyRideGroupLocation, 7)
	mr.HSet(key, constants.FieldLatitude, "30.0444")
	mr.HSet(key, constants.FieldLongitude, "31.2357")
	mr.HSet(key, constants.FieldTimestamp, "1767598200000")

	got, err := cache.GetLastLocation(context.Background(), 7)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Zero(t, got.RideInstanceID)
}

func TestDeleteLocation(t *testing.T) {
	mr, client := setupMiniredis(t)
	defer mr.Close()
	cache := NewLocationCache(&database.RedisClient{Client: client})
	ctx := context.Background()

	require.NoError(t, cache.StoreLocation(ctx, models.CachedLocation{
		RideGroupID:    7,
		RideInstanceID: 501,
		Location:       models.Coordinate{Lat: 30.0444, Lng: 31.2357},
		RecordedAt:     time.Now(),
	}))

	require.NoError(t, cache.DeleteLocation(ctx, 7))

	assert.False(t, mr.Exists(fmt.Sprintf(constants.KeyRideGroupLocation, 7)))
	got, err := cache.GetLastLocation(ctx, 7)
	assert.NoError(t, err)
	assert.Nil(t, got)

	// deleting a missing key is not an error
	assert.NoError(t, cache.DeleteLocation(ctx, 7))
}
