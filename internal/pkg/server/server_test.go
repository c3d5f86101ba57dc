package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestNewGracefulServer_DefaultTimeout(t *testing.T) {
	s := NewGracefulServer(echo.New(), ":0", 0)
	assert.Equal(t, defaultShutdownTimeout, s.timeout)

	s = NewGracefulServer(echo.New(), ":0", time.Second)
	assert.Equal(t, time.Second, s.timeout)
}

func TestGracefulServer_Run(t *testing.T) {
	// Arrange
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	addr := freeAddr(t)
	s := NewGracefulServer(e, addr, time.Second)

	var order []string
	s.OnShutdown("websocket", func(context.Context) error {
		order = append(order, "websocket")
		return errors.New("already closed")
	})
	s.OnShutdown("usecase", func(context.Context) error {
		order = append(order, "usecase")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// Act
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/ping")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)
	cancel()

	// Assert
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, []string{"websocket", "usecase"}, order)
}

func TestGracefulServer_RunListenFailure(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	s := NewGracefulServer(e, l.Addr().String(), time.Second)
	cleaned := false
	s.OnShutdown("nats", func(context.Context) error {
		cleaned = true
		return nil
	})

	err = s.Run(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "http server")
	assert.True(t, cleaned)
}
