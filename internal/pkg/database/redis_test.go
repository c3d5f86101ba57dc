package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/piresc/carpool/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisClient) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, &RedisClient{Client: client}
}

func TestNewRedisClient_ConnectionError(t *testing.T) {
	config := models.RedisConfig{
		Host:     "127.0.0.1",
		Port:     1,
		PoolSize: 1,
	}

	client, err := NewRedisClient(config)

	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisClient_HSetWithTTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	err := client.HSetWithTTL(ctx, "tracking:group:7:location", map[string]interface{}{
		"lat": "30.0444",
		"lng": "31.2357",
	}, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, "30.0444", mr.HGet("tracking:group:7:location", "lat"))
	assert.Equal(t, time.Hour, mr.TTL("tracking:group:7:location"))

	fields, err := client.HGetAll(ctx, "tracking:group:7:location")
	require.NoError(t, err)
	assert.Equal(t, "31.2357", fields["lng"])
}

func TestRedisClient_HGetAll_Missing(t *testing.T) {
	_, client := setupTestRedis(t)

	fields, err := client.HGetAll(context.Background(), "missing")

	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestRedisClient_Delete(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("k", "v"))

	require.NoError(t, client.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))
	assert.NoError(t, client.Delete(ctx, "k"))
	assert.NoError(t, client.Ping(ctx))
}
