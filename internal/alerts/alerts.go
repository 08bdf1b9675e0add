package alerts

import (
	"sync"

	"stockroom/internal/models"
	"stockroom/internal/util"

	"go.uber.org/zap"
)

// Recorder receives alerts as they happen
type Recorder interface {
	Record(a models.Alert)
}

// Log keeps the most recent alerts in memory and mirrors each one to the
// application log. It is the single delivery channel for notifications;
// there is no external messaging.
type Log struct {
	mu      sync.RWMutex
	entries []models.Alert
	limit   int
	logger  *zap.Logger
}

// NewLog creates a Log retaining at most limit alerts
func NewLog(limit int) *Log {
	if limit < 1 {
		limit = 1
	}
	return &Log{limit: limit, logger: util.Named("alerts")}
}

// Record stores the alert, evicting the oldest past the retention limit
func (l *Log) Record(a models.Alert) {
	l.mu.Lock()
	l.entries = append(l.entries, a)
	if len(l.entries) > l.limit {
		l.entries = l.entries[len(l.entries)-l.limit:]
	}
	l.mu.Unlock()

	fields := []zap.Field{
		zap.String("kind", a.Kind),
		zap.String("ref", a.Ref),
	}
	if a.Kind == models.AlertLowStock {
		l.logger.Warn(a.Message, fields...)
		return
	}
	l.logger.Info(a.Message, fields...)
}

// Recent returns up to n alerts, newest first
func (l *Log) Recent(n int) []models.Alert {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n < 0 {
		n = 0
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]models.Alert, 0, n)
	for i := len(l.entries) - 1; i >= len(l.entries)-n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}
