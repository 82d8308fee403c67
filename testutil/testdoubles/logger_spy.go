package testdoubles

import (
	"context"
	"sync"

	"github.com/mediatorkit/dispatch-pipeline-go/dispatch"
)

// SpyLogRecord represents one recorded log call.
type SpyLogRecord struct {
	Level   string
	Message string
	Args    []any
}

// ArgValue returns the value following the given key in the record's
// key-value args, if present.
func (r SpyLogRecord) ArgValue(key string) (any, bool) {
	for i := 0; i+1 < len(r.Args); i += 2 {
		if name, ok := r.Args[i].(string); ok && name == key {
			return r.Args[i+1], true
		}
	}

	return nil, false
}

// LoggerSpy is a Logger implementation that captures logging calls for testing.
type LoggerSpy struct {
	records []SpyLogRecord
	mu      sync.Mutex
}

// NewLoggerSpy creates a new LoggerSpy instance.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{}
}

// Debug implements the Logger interface for testing.
func (s *LoggerSpy) Debug(msg string, args ...any) {
	s.record("debug", msg, args)
}

// Info implements the Logger interface for testing.
func (s *LoggerSpy) Info(msg string, args ...any) {
	s.record("info", msg, args)
}

// Warn implements the Logger interface for testing.
func (s *LoggerSpy) Warn(msg string, args ...any) {
	s.record("warn", msg, args)
}

// Error implements the Logger interface for testing.
func (s *LoggerSpy) Error(msg string, args ...any) {
	s.record("error", msg, args)
}

func (s *LoggerSpy) record(level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyLogRecord{
		Level:   level,
		Message: msg,
		Args:    append([]any(nil), args...),
	})
}

// Records returns a copy of all recorded log calls.
func (s *LoggerSpy) Records() []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyLogRecord(nil), s.records...)
}

// RecordsAtLevel returns a copy of all records logged at the given level.
func (s *LoggerSpy) RecordsAtLevel(level string) []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matching []SpyLogRecord
	for _, record := range s.records {
		if record.Level == level {
			matching = append(matching, record)
		}
	}

	return matching
}

// HasLog checks if a record with the given level and message exists.
func (s *LoggerSpy) HasLog(level, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Level == level && record.Message == message {
			return true
		}
	}

	return false
}

// CountLogs returns the number of records with the given level and message.
func (s *LoggerSpy) CountLogs(level, message string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, record := range s.records {
		if record.Level == level && record.Message == message {
			count++
		}
	}

	return count
}

// Reset clears all recorded log calls.
func (s *LoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = s.records[:0]
}

// Ensure LoggerSpy implements dispatch.Logger.
var _ dispatch.Logger = (*LoggerSpy)(nil)

// ContextualLoggerSpy is a ContextualLogger implementation that captures
// context-aware logging calls for testing.
type ContextualLoggerSpy struct {
	inner LoggerSpy
}

// NewContextualLoggerSpy creates a new ContextualLoggerSpy instance.
func NewContextualLoggerSpy() *ContextualLoggerSpy {
	return &ContextualLoggerSpy{}
}

// DebugContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) DebugContext(_ context.Context, msg string, args ...any) {
	s.inner.Debug(msg, args...)
}

// InfoContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) InfoContext(_ context.Context, msg string, args ...any) {
	s.inner.Info(msg, args...)
}

// WarnContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) WarnContext(_ context.Context, msg string, args ...any) {
	s.inner.Warn(msg, args...)
}

// ErrorContext implements the ContextualLogger interface for testing.
func (s *ContextualLoggerSpy) ErrorContext(_ context.Context, msg string, args ...any) {
	s.inner.Error(msg, args...)
}

// Records returns a copy of all recorded log calls.
func (s *ContextualLoggerSpy) Records() []SpyLogRecord {
	return s.inner.Records()
}

// RecordsAtLevel returns a copy of all records logged at the given level.
func (s *ContextualLoggerSpy) RecordsAtLevel(level string) []SpyLogRecord {
	return s.inner.RecordsAtLevel(level)
}

// HasLog checks if a record with the given level and message exists.
func (s *ContextualLoggerSpy) HasLog(level, message string) bool {
	return s.inner.HasLog(level, message)
}

// CountLogs returns the number of records with the given level and message.
func (s *ContextualLoggerSpy) CountLogs(level, message string) int {
	return s.inner.CountLogs(level, message)
}

// Reset clears all recorded log calls.
func (s *ContextualLoggerSpy) Reset() {
	s.inner.Reset()
}

// Ensure ContextualLoggerSpy implements dispatch.ContextualLogger.
var _ dispatch.ContextualLogger = (*ContextualLoggerSpy)(nil)
