package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/models"
)

const (
	// writeWait is the time allowed to write a frame to the peer
	writeWait = 10 * time.Second
	// pongWait is the time allowed to read the next pong from the peer
	pongWait = 60 * time.Second
	// pingPeriod must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
	// maxMessageSize bounds inbound frames
	maxMessageSize = 4096
)

// Conn is one authenticated websocket connection. Frames are written by a
// single writer goroutine draining a buffered queue.
type Conn struct {
	ID      string
	Account models.Account

	ws        *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newConn(id string, account models.Account, ws *websocket.Conn, buffer int) *Conn {
	if buffer <= 0 {
		buffer = 64
	}
	return &Conn{
		ID:      id,
		Account: account,
		ws:      ws,
		send:    make(chan []byte, buffer),
		done:    make(chan struct{}),
	}
}

// Close stops the writer and closes the socket. Safe to call repeatedly.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// Enqueue queues a frame without blocking; false when the queue is full or closed
func (c *Conn) Enqueue(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// enqueueWait queues a frame, waiting up to writeWait for room
func (c *Conn) enqueueWait(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	timer := time.NewTimer(writeWait)
	defer timer.Stop()

	select {
	case c.send <- frame:
		return true
	case <-c.done:
		return false
	case <-timer.C:
		return false
	}
}

// Reply queues a frame addressed to the originating connection, waiting for
// queue space so replies are not dropped under load
func (c *Conn) Reply(event, requestID string, data interface{}) error {
	frame, err := EncodeFrame(event, requestID, data)
	if err != nil {
		return fmt.Errorf("error marshaling message data: %w", err)
	}
	if !c.enqueueWait(frame) {
		return fmt.Errorf("connection %s not writable", c.ID)
	}
	return nil
}

// ReadFrame blocks for the next inbound text frame
func (c *Conn) ReadFrame() ([]byte, error) {
	_, data, err := c.ws.ReadMessage()
	return data, err
}

// writePump drains the send queue and keeps the connection alive with pings.
// It owns all writes to the socket.
func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				logger.Debug("Websocket write failed", logger.Conn(c.ID), logger.Err(err))
				c.Close()
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		case <-c.done:
			c.flush()
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			return
		}
	}
}

// flush writes frames still queued when the connection closes
func (c *Conn) flush() {
	for {
		select {
		case frame := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		default:
			return
		}
	}
}

// EncodeFrame builds a models.WSMessage frame
func EncodeFrame(event, requestID string, data interface{}) ([]byte, error) {
	msg := models.WSMessage{Event: event, ID: requestID}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		msg.Data = raw
	}
	return json.Marshal(msg)
}
