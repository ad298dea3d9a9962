// Package logging provides categorized file-based logging for atomkv.
// Logs are written to <dir>/logs/ with one file per category per day.
// Logging is a no-op until Initialize is called with debug enabled.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// Category represents a log category/subsystem.
type Category string

const (
	CategoryEngine Category = "engine" // sqlite engine operations
	CategoryKV     Category = "kv"     // typed facade operations
	CategoryAtom   Category = "atom"   // persisted atom bridge
	CategoryConfig Category = "config" // config loading
)

// Log levels
const (
	LevelDebug = 0
	LevelInfo  = 1
	LevelWarn  = 2
	LevelError = 3
)

// Logger wraps a standard logger with category and file output.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex
	logsDir   string
	enabled   bool
	logLevel  atomic.Int32
	stateMu   sync.RWMutex
)

func init() {
	logLevel.Store(LevelInfo)
}

// Initialize sets up the logging directory. Should be called once at
// startup; until then every log call is a silent no-op.
func Initialize(dir string, debug bool, level string) error {
	var lvl int32 = LevelInfo
	switch level {
	case "debug":
		lvl = LevelDebug
	case "info":
		lvl = LevelInfo
	case "warn", "warning":
		lvl = LevelWarn
	case "error":
		lvl = LevelError
	}
	logLevel.Store(lvl)

	if !debug {
		stateMu.Lock()
		enabled = false
		stateMu.Unlock()
		return nil
	}
	if dir == "" {
		return fmt.Errorf("log directory required")
	}

	logs := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logs, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	stateMu.Lock()
	enabled = true
	logsDir = logs
	stateMu.Unlock()

	// Banner goes through Get, which takes stateMu itself, so it must be
	// emitted after the lock is released.
	Get(CategoryConfig).Info("=== atomkv logging initialized ===")
	Get(CategoryConfig).Info("Logs directory: %s", logs)
	return nil
}

// IsEnabled reports whether debug logging is active.
func IsEnabled() bool {
	stateMu.RLock()
	defer stateMu.RUnlock()
	return enabled
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger when logging is disabled.
func Get(category Category) *Logger {
	stateMu.RLock()
	active := enabled && logsDir != ""
	dir := logsDir
	stateMu.RUnlock()
	if !active {
		return &Logger{category: category}
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()

	// Double-check after acquiring write lock
	if l, ok := loggers[category]; ok {
		return l
	}

	// Date prefix for easy rotation
	date := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s_%s.log", date, category)
	logPath := filepath.Join(dir, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", logPath, err)
		return &Logger{category: category}
	}

	l := &Logger{
		category: category,
		file:     file,
		logger:   log.New(file, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
	loggers[category] = l
	return l
}

// Debug logs a debug message (only if level <= debug)
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.logger == nil || logLevel.Load() > LevelDebug {
		return
	}
	l.logger.Printf("[DEBUG] %s", fmt.Sprintf(format, args...))
}

// Info logs an informational message (only if level <= info)
func (l *Logger) Info(format string, args ...interface{}) {
	if l.logger == nil || logLevel.Load() > LevelInfo {
		return
	}
	l.logger.Printf("[INFO] %s", fmt.Sprintf(format, args...))
}

// Warn logs a warning message (only if level <= warn)
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.logger == nil || logLevel.Load() > LevelWarn {
		return
	}
	l.logger.Printf("[WARN] %s", fmt.Sprintf(format, args...))
}

// Error logs an error message (always logged if logger exists)
func (l *Logger) Error(format string, args ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[ERROR] %s", fmt.Sprintf(format, args...))
}

// CloseAll closes all open log files (call at shutdown)
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, l := range loggers {
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// =============================================================================

// Engine logs to the engine category
func Engine(format string, args ...interface{}) {
	Get(CategoryEngine).Info(format, args...)
}

// EngineDebug logs debug to the engine category
func EngineDebug(format string, args ...interface{}) {
	Get(CategoryEngine).Debug(format, args...)
}

// EngineError logs error to the engine category
func EngineError(format string, args ...interface{}) {
	Get(CategoryEngine).Error(format, args...)
}

// KV logs to the kv category
func KV(format string, args ...interface{}) {
	Get(CategoryKV).Info(format, args...)
}

// KVDebug logs debug to the kv category
func KVDebug(format string, args ...interface{}) {
	Get(CategoryKV).Debug(format, args...)
}

// KVError logs error to the kv category
func KVError(format string, args ...interface{}) {
	Get(CategoryKV).Error(format, args...)
}

// Atom logs to the atom category
func Atom(format string, args ...interface{}) {
	Get(CategoryAtom).Info(format, args...)
}

// AtomDebug logs debug to the atom category
func AtomDebug(format string, args ...interface{}) {
	Get(CategoryAtom).Debug(format, args...)
}

// AtomError logs error to the atom category
func AtomError(format string, args ...interface{}) {
	Get(CategoryAtom).Error(format, args...)
}

// =============================================================================
// TIMING HELPERS - For performance logging
// =============================================================================

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}
