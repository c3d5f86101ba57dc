package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// AuditLogger writes security relevant events (rejected joins, watches and
// location updates) as JSON lines, separate from the application log
type AuditLogger struct {
	logger *logrus.Logger
	file   *os.File
}

// NewAuditLogger creates an audit logger writing to filePath, or stdout when empty
func NewAuditLogger(filePath string) (*AuditLogger, error) {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "timestamp",
			logrus.FieldKeyMsg:  "message",
		},
	})
	l.SetLevel(logrus.InfoLevel)

	audit := &AuditLogger{logger: l}
	if filePath == "" {
		l.SetOutput(os.Stdout)
		return audit, nil
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log file: %w", err)
	}
	audit.file = file
	l.SetOutput(file)
	return audit, nil
}

// NewAuditLoggerWithWriter creates an audit logger writing to w
func NewAuditLoggerWithWriter(w io.Writer) *AuditLogger {
	a := &AuditLogger{logger: logrus.New()}
	a.logger.SetFormatter(&logrus.JSONFormatter{})
	a.logger.SetOutput(w)
	return a
}

// Denied records a rejected action by a user
func (a *AuditLogger) Denied(action, userID, role string, rideGroupID int64, reason string) {
	if a == nil {
		return
	}
	a.logger.WithFields(logrus.Fields{
		"audit":         true,
		"action":        action,
		"user_id":       userID,
		"role":          role,
		"ride_group_id": rideGroupID,
		"reason":        reason,
	}).Warn("access denied")
}

// Granted records an accepted privileged action
func (a *AuditLogger) Granted(action, userID, role string, rideGroupID int64) {
	if a == nil {
		return
	}
	a.logger.WithFields(logrus.Fields{
		"audit":         true,
		"action":        action,
		"user_id":       userID,
		"role":          role,
		"ride_group_id": rideGroupID,
	}).Info("access granted")
}

// Close closes the underlying audit file
func (a *AuditLogger) Close() error {
	if a == nil || a.file == nil {
		return nil
	}
	return a.file.Close()
}
