package models

import (
	"encoding/json"

	"github.com/golang-jwt/jwt/v4"
)

// WSMessage represents a WebSocket message structure
type WSMessage struct {
	Event string          `json:"event"`
	ID    string          `json:"id,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// WSErrorMessage represents an error message sent over WebSocket
type WSErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WSAck is the data of an ack frame, always a single marker string
type WSAck string

// WebSocketClaims are the JWT claims accepted at handshake
type WebSocketClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// DriverLeftEvent is pushed to watchers when the driver disconnects
type DriverLeftEvent struct {
	RideGroupID int64 `json:"ride_group_id"`
}

// CheckpointReachedEvent is pushed to watchers on a checkpoint arrival
type CheckpointReachedEvent struct {
	RideGroupID int64          `json:"ride_group_id"`
	Kind        CheckpointKind `json:"kind"`
	Order       int            `json:"order"`
	Completed   bool           `json:"completed"`
}
