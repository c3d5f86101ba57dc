package websocket

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/constants"
	jwtpkg "github.com/piresc/carpool/internal/pkg/jwt"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/models"
)

// Manager authenticates, upgrades and tracks WebSocket connections
type Manager struct {
	sync.RWMutex
	conns      map[string]*Conn
	cfg        models.JWTConfig
	upgrader   websocket.Upgrader
	sendBuffer int
}

// NewManager creates a new WebSocket manager
func NewManager(jwtConfig models.JWTConfig, sendBuffer int) *Manager {
	return &Manager{
		conns:      make(map[string]*Conn),
		cfg:        jwtConfig,
		sendBuffer: sendBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection authenticates the request, upgrades it and runs serve on
// the new connection. serve owns the read side; when it returns the
// connection is unregistered and closed.
func (m *Manager) HandleConnection(c echo.Context, serve func(*Conn)) error {
	account, err := m.authenticate(c)
	if err != nil {
		return err
	}

	ws, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader already wrote the HTTP error
		logger.Warn("Websocket upgrade failed", logger.Err(err))
		return nil
	}

	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	conn := newConn(uuid.NewString(), account, ws, m.sendBuffer)
	m.add(conn)
	go conn.writePump()

	logger.Info("Websocket connected",
		logger.Conn(conn.ID),
		logger.String("user_id", account.ID),
		logger.String("role", account.Role))

	defer func() {
		m.remove(conn.ID)
		conn.Close()
		logger.Info("Websocket disconnected", logger.Conn(conn.ID), logger.String("user_id", account.ID))
	}()

	serve(conn)
	return nil
}

// authenticate validates the bearer credential from the Authorization header
// or, for browser clients, the token query parameter
func (m *Manager) authenticate(c echo.Context) (models.Account, error) {
	token := c.QueryParam("token")
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.Account{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}
		token = parts[1]
	}
	if token == "" {
		return models.Account{}, echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
	}

	account, err := jwtpkg.ValidateToken(token, m.cfg.Secret)
	if err != nil {
		logger.Warn("Token validation failed", logger.Err(err), logger.String("client_ip", c.RealIP()))
		return models.Account{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	return account, nil
}

func (m *Manager) add(conn *Conn) {
	m.Lock()
	defer m.Unlock()
	m.conns[conn.ID] = conn
}

func (m *Manager) remove(connID string) {
	m.Lock()
	defer m.Unlock()
	delete(m.conns, connID)
}

// Count returns the number of live connections
func (m *Manager) Count() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.conns)
}

// Broadcast encodes one event and queues it to every listed connection
// without blocking. It returns how many connections accepted the frame.
func (m *Manager) Broadcast(connIDs []string, event string, data interface{}) int {
	if len(connIDs) == 0 {
		return 0
	}
	frame, err := EncodeFrame(event, "", data)
	if err != nil {
		logger.Error("Failed to encode broadcast", logger.String("event", event), logger.Err(err))
		return 0
	}

	delivered := 0
	m.RLock()
	defer m.RUnlock()
	for _, id := range connIDs {
		conn, ok := m.conns[id]
		if !ok {
			continue
		}
		if conn.Enqueue(frame) {
			delivered++
		} else {
			logger.Warn("Dropped frame for slow subscriber", logger.Conn(id), logger.String("event", event))
		}
	}
	return delivered
}

// CloseAll closes every live connection, used on shutdown
func (m *Manager) CloseAll() {
	m.RLock()
	defer m.RUnlock()
	for _, conn := range m.conns {
		conn.Close()
	}
}

// SendErrorMessage sends an error event to a connection
func (m *Manager) SendErrorMessage(conn *Conn, requestID, code, message string) error {
	return conn.Reply(constants.EventError, requestID, models.WSErrorMessage{
		Code:    code,
		Message: message,
	})
}

// SendCategorizedError sends an error message based on severity level
func (m *Manager) SendCategorizedError(conn *Conn, requestID string, err error, code string, severity constants.ErrorSeverity) error {
	fields := []logger.Field{
		logger.Conn(conn.ID),
		logger.String("user_id", conn.Account.ID),
		logger.String("error_code", code),
		logger.String("severity", severityString(severity)),
		logger.Err(err),
	}

	switch severity {
	case constants.ErrorSeverityClient:
		logger.Debug("WebSocket request rejected", fields...)
		return m.SendErrorMessage(conn, requestID, code, err.Error())
	case constants.ErrorSeveritySecurity:
		logger.Warn("Security-related error occurred", fields...)
		return m.SendErrorMessage(conn, requestID, code, "Access denied")
	default:
		logger.Error("WebSocket operation failed", fields...)
		return m.SendErrorMessage(conn, requestID, code, "Operation failed")
	}
}

// severityString returns string representation of error severity
func severityString(severity constants.ErrorSeverity) string {
	switch severity {
	case constants.ErrorSeverityClient:
		return "client"
	case constants.ErrorSeverityServer:
		return "server"
	case constants.ErrorSeveritySecurity:
		return "security"
	default:
		return "unknown"
	}
}
