// Package swarm implements the fixed five-stage swarm executor: one
// speculation pass, one planning pass, a bounded-parallel agent
// fan-out, synthesis, and a logging summary.
package swarm

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger is the leveled logging interface the executor writes to.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// DebugLogger provides file-based logging for swarm runs.
// It wraps an append-only log file with thread-safe access.
type DebugLogger struct {
	mu   sync.Mutex
	file *os.File
}

// NewDebugLogger creates a logger writing to the specified path.
// If the path is empty, returns a no-op logger.
// Creates parent directories if they don't exist.
func NewDebugLogger(logPath string) (*DebugLogger, error) {
	if logPath == "" {
		return &DebugLogger{}, nil
	}

	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger := &DebugLogger{file: f}
	logger.log("INFO", "=== Swarm Log Started at %s ===", time.Now().Format(time.RFC3339))
	return logger, nil
}

// NopLogger returns a no-op logger for testing or when logging is disabled.
func NopLogger() *DebugLogger {
	return &DebugLogger{}
}

func (l *DebugLogger) log(level, format string, args ...interface{}) {
	if l == nil || l.file == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(l.file, "[%s] %s %s\n", timestamp, level, msg)
	l.file.Sync()
}

// Infof writes an info-level message.
func (l *DebugLogger) Infof(format string, args ...interface{}) {
	l.log("INFO", format, args...)
}

// Warnf writes a warning-level message.
func (l *DebugLogger) Warnf(format string, args ...interface{}) {
	l.log("WARN", format, args...)
}

// Errorf writes an error-level message.
func (l *DebugLogger) Errorf(format string, args ...interface{}) {
	l.log("ERROR", format, args...)
}

// Debugf writes a debug-level message.
func (l *DebugLogger) Debugf(format string, args ...interface{}) {
	l.log("DEBUG", format, args...)
}

// Close closes the log file. Safe to call on a no-op logger.
func (l *DebugLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.file.Close()
}
