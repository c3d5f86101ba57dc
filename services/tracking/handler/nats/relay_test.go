package nats

import (
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/piresc/carpool/internal/pkg/constants"
	"github.com/piresc/carpool/internal/pkg/models"
	natspkg "github.com/piresc/carpool/internal/pkg/nats"
	"github.com/piresc/carpool/services/tracking"
	"github.com/piresc/carpool/services/tracking/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNatsURL = "nats://127.0.0.1:8372"

func TestMain(m *testing.M) {
	opts := natsserver.DefaultTestOptions
	opts.Port = 8372
	testNatsServer := natsserver.RunServer(&opts)
	code := m.Run()
	testNatsServer.Shutdown()
	os.Exit(code)
}

type broadcast struct {
	connIDs []string
	event   string
	data    interface{}
}

// recordingBroadcaster captures broadcasts instead of writing to sockets
type recordingBroadcaster struct {
	mu    sync.Mutex
	calls []broadcast
	ch    chan broadcast
}

func newRecordingBroadcaster() *recordingBroadcaster {
	return &recordingBroadcaster{ch: make(chan broadcast, 4)}
}

func (b *recordingBroadcaster) Broadcast(connIDs []string, event string, data interface{}) int {
	call := broadcast{connIDs: connIDs, event: event, data: data}
	b.mu.Lock()
	b.calls = append(b.calls, call)
	b.mu.Unlock()
	b.ch <- call
	return len(connIDs)
}

func (b *recordingBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func relayBytes(t *testing.T, relay models.LocationRelay) []byte {
	data, err := json.Marshal(relay)
	require.NoError(t, err)
	return data
}

func TestHandleLocationRelay(t *testing.T) {
	coord := models.Coordinate{Lat: 30.0444, Lng: 31.2357}

	tests := []struct {
		name      string
		data      func(t *testing.T) []byte
		setup     func(reg *mocks.MockSessionRegistry)
		wantErr   error
		broadcast bool
	}{
		{
			name: "remote node delivers to local watchers",
			data: func(t *testing.T) []byte {
				return relayBytes(t, models.LocationRelay{NodeID: "node-b", RideGroupID: 7, Location: coord})
			},
			setup: func(reg *mocks.MockSessionRegistry) {
				reg.EXPECT().Subscribers(int64(7)).Return([]string{"c1", "c2"})
			},
			broadcast: true,
		},
		{
			name: "own node is skipped",
			data: func(t *testing.T) []byte {
				return relayBytes(t, models.LocationRelay{NodeID: "node-a", RideGroupID: 7, Location: coord})
			},
			setup: func(reg *mocks.MockSessionRegistry) {},
		},
		{
			name: "no local watchers",
			data: func(t *testing.T) []byte {
				return relayBytes(t, models.LocationRelay{NodeID: "node-b", RideGroupID: 7, Location: coord})
			},
			setup: func(reg *mocks.MockSessionRegistry) {
				reg.EXPECT().Subscribers(int64(7)).Return(nil)
			},
		},
		{
			name: "bad coordinate",
			data: func(t *testing.T) []byte {
				return relayBytes(t, models.LocationRelay{NodeID: "node-b", RideGroupID: 7, Location: models.Coordinate{Lat: 120}})
			},
			setup:   func(reg *mocks.MockSessionRegistry) {},
			wantErr: tracking.ErrInvalidCoordinate,
		},
		{
			name: "bad group",
			data: func(t *testing.T) []byte {
				return relayBytes(t, models.LocationRelay{NodeID: "node-b", Location: coord})
			},
			setup:   func(reg *mocks.MockSessionRegistry) {},
			wantErr: tracking.ErrInvalidRideGroup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reg := mocks.NewMockSessionRegistry(ctrl)
			tt.setup(reg)
			b := newRecordingBroadcaster()
			cfg := &models.Config{Tracking: models.TrackingConfig{NodeID: "node-a"}}
			h := NewRelayHandler(cfg, reg, b, nil)

			err := h.handleLocationRelay(tt.data(t))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			if !tt.broadcast {
				assert.Equal(t, 0, b.count())
				return
			}
			require.Equal(t, 1, b.count())
			call := <-b.ch
			assert.Equal(t, []string{"c1", "c2"}, call.connIDs)
			assert.Equal(t, constants.EventLocationUpdate, call.event)
			assert.Equal(t, coord, call.data)
		})
	}
}

func TestHandleLocationRelay_Malformed(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewRelayHandler(&models.Config{}, mocks.NewMockSessionRegistry(ctrl), newRecordingBroadcaster(), nil)

	err := h.handleLocationRelay([]byte("{bad"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal location relay")
}

func TestInitNATSConsumers_DeliversRelay(t *testing.T) {
	// Arrange
	client, err := natspkg.NewClient(testNatsURL)
	require.NoError(t, err)
	defer client.Close()

	ctrl := gomock.NewController(t)
	reg := mocks.NewMockSessionRegistry(ctrl)
	reg.EXPECT().Subscribers(int64(7)).Return([]string{"c1"})
	b := newRecordingBroadcaster()
	h := NewRelayHandler(&models.Config{Tracking: models.TrackingConfig{NodeID: "node-a"}}, reg, b, client)

	require.NoError(t, h.InitNATSConsumers())
	defer h.Close()
	require.NoError(t, client.GetConn().Flush())

	// Act
	relay := models.LocationRelay{NodeID: "node-b", RideGroupID: 7, Location: models.Coordinate{Lat: 30.0444, Lng: 31.2357}}
	require.NoError(t, client.Publish(constants.SubjectLocationRelay, relayBytes(t, relay)))

	// Assert
	select {
	case call := <-b.ch:
		assert.Equal(t, []string{"c1"}, call.connIDs)
		assert.Equal(t, relay.Location, call.data)
	case <-time.After(2 * time.Second):
		t.Fatal("relay was not delivered")
	}
}
