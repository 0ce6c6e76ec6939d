package log

import (
	"fmt"
	"sync"
	"time"
)

// TestLogger records every log call in memory so tests can assert on what
// was actually logged, rather than only that logging didn't panic.
type TestLogger struct {
	logs []LogEntry
	mu   sync.RWMutex
}

// LogEntry represents a single recorded log call.
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]any
	Time    time.Time
}

func NewTestLogger() *TestLogger {
	return &TestLogger{
		logs: make([]LogEntry, 0),
	}
}

// Debug logs a debug message.
func (tl *TestLogger) Debug(msg string, fields ...Field) {
	tl.addLog("DEBUG", msg, fields)
}

// Info logs an info message.
func (tl *TestLogger) Info(msg string, fields ...Field) {
	tl.addLog("INFO", msg, fields)
}

// Warn logs a warning message.
func (tl *TestLogger) Warn(msg string, fields ...Field) {
	tl.addLog("WARN", msg, fields)
}

// Error logs an error message.
func (tl *TestLogger) Error(msg string, fields ...Field) {
	tl.addLog("ERROR", msg, fields)
}

// addLog adds a log entry, keying each field by its own Key() so assertions
// can inspect recorded values directly instead of just message/level.
func (tl *TestLogger) addLog(level, msg string, fields []Field) {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	fieldMap := make(map[string]any, len(fields))

	for _, field := range fields {
		if field == nil {
			continue
		}

		fieldMap[field.Key()] = field.Value()
	}

	tl.logs = append(tl.logs, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  fieldMap,
		Time:    time.Now(),
	})
}

// GetLogs returns all logged entries.
func (tl *TestLogger) GetLogs() []LogEntry {
	tl.mu.RLock()
	defer tl.mu.RUnlock()

	logs := make([]LogEntry, len(tl.logs))
	copy(logs, tl.logs)

	return logs
}

// GetLogsByLevel returns logs filtered by level.
func (tl *TestLogger) GetLogsByLevel(level string) []LogEntry {
	tl.mu.RLock()
	defer tl.mu.RUnlock()

	var filtered []LogEntry

	for _, entry := range tl.logs {
		if entry.Level == level {
			filtered = append(filtered, entry)
		}
	}

	return filtered
}

// Clear clears all log entries.
func (tl *TestLogger) Clear() {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	tl.logs = nil
}

func (tl *TestLogger) Fatal(msg string, fields ...Field) {
	tl.addLog("FATAL", msg, fields)
}

func (tl *TestLogger) Debugf(template string, args ...any) {
	tl.addLog("DEBUG", fmt.Sprintf(template, args...), nil)
}

func (tl *TestLogger) Infof(template string, args ...any) {
	tl.addLog("INFO", fmt.Sprintf(template, args...), nil)
}

func (tl *TestLogger) Warnf(template string, args ...any) {
	tl.addLog("WARN", fmt.Sprintf(template, args...), nil)
}

func (tl *TestLogger) Errorf(template string, args ...any) {
	tl.addLog("ERROR", fmt.Sprintf(template, args...), nil)
}

func (tl *TestLogger) Fatalf(template string, args ...any) {
	tl.addLog("FATAL", fmt.Sprintf(template, args...), nil)
}

func (tl *TestLogger) With(fields ...Field) Logger {
	return tl
}

func (tl *TestLogger) Named(name string) Logger {
	return tl
}

func (tl *TestLogger) Sugar() SugarLogger {
	return nil
}

func (tl *TestLogger) Sync() error {
	return nil
}

// AssertHasLog reports whether a log at level with the given message was recorded.
func (tl *TestLogger) AssertHasLog(level, message string) bool {
	tl.mu.RLock()
	defer tl.mu.RUnlock()

	for _, entry := range tl.logs {
		if entry.Level == level && entry.Message == message {
			return true
		}
	}

	return false
}

// CountLogs returns the count of logs at a specific level.
func (tl *TestLogger) CountLogs(level string) int {
	tl.mu.RLock()
	defer tl.mu.RUnlock()

	count := 0

	for _, entry := range tl.logs {
		if entry.Level == level {
			count++
		}
	}

	return count
}
