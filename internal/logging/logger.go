// Package logging provides the append-only run log for the harvester.
// Lines are timestamped and leveled (INFO/WARN/ERROR) so operators can
// reconstruct why any repository was kept or rejected.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Level is a log severity.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logger writes leveled, timestamped lines to an append-only file.
// A zero-value or nil Logger is a safe no-op.
type Logger struct {
	mu   sync.Mutex
	file *os.File
}

// New creates a logger appending to the file at logPath.
// If logPath is empty, returns a no-op logger.
// Creates parent directories if they don't exist.
func New(logPath string) (*Logger, error) {
	if logPath == "" {
		return &Logger{}, nil
	}

	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := &Logger{file: f}
	l.log(LevelInfo, "=== Run log started at %s ===", time.Now().Format(time.RFC3339))
	return l, nil
}

// Nop returns a no-op logger for tests or when logging is disabled.
func Nop() *Logger {
	return &Logger{}
}

// Infof writes an INFO line.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warnf writes a WARN line.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Errorf writes an ERROR line.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if l == nil || l.file == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(l.file, "[%s] %s %s\n", timestamp, level, msg)
	l.file.Sync()
}

// Close closes the log file. Safe to call on a nil or no-op logger.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.file.Close()
}
