// Package engine implements the embedded key-value engine backing atomkv.
// Values live in a single SQLite file on device, one row per key, accessed
// synchronously in-process. The engine is an explicitly constructed handle:
// callers open their own instance and pass it to the typed facades, so tests
// get isolated stores instead of a shared global.
package engine

import (
	"atomkv/internal/logging"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// ErrClosed is returned by every operation after Close.
var ErrClosed = errors.New("engine is closed")

// Domain tags which typed facade wrote a row. Reads do not check the tag;
// the same literal key written through two facades collides on one row.
const (
	DomainString = "string"
	DomainNumber = "number"
	DomainBool   = "bool"
	DomainJSON   = "json"
)

// Engine is a handle to one on-device key-value store.
type Engine struct {
	db     *sql.DB
	mu     sync.RWMutex
	path   string
	closed bool
}

// EngineStats summarizes the backing store for the inspection CLI.
type EngineStats struct {
	Path      string
	Keys      int64
	FileBytes int64
	Domains   map[string]int64
}

// Open opens (creating if needed) the store file at path and bootstraps the
// schema. Pass ":memory:" for an isolated in-memory store.
func Open(path string) (*Engine, error) {
	timer := logging.StartTimer(logging.CategoryEngine, "Open")
	defer timer.Stop()

	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			logging.EngineError("Failed to create directory %s: %v", dir, err)
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		logging.EngineError("Failed to open database at %s: %v", path, err)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.EngineDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.EngineDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		logging.EngineDebug("Failed to set sqlite synchronous=NORMAL: %v", err)
	}

	e := &Engine{db: db, path: path}
	if err := e.initialize(); err != nil {
		logging.EngineError("Failed to initialize schema: %v", err)
		db.Close()
		return nil, err
	}

	logging.Engine("Engine opened at %s", path)
	return e, nil
}

// initialize creates the kv table.
func (e *Engine) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		domain TEXT NOT NULL DEFAULT 'string',
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_kv_domain ON kv(domain);
	`
	if _, err := e.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create kv table: %w", err)
	}
	return nil
}

// Close closes the underlying database. Subsequent operations return ErrClosed.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	logging.Engine("Closing engine at %s", e.path)
	return e.db.Close()
}

// Path returns the store file path the engine was opened with.
func (e *Engine) Path() string {
	return e.path
}

// Get returns the stored value and its domain tag for key.
// found is false when the key is absent.
func (e *Engine) Get(key string) (value, domain string, found bool, err error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return "", "", false, ErrClosed
	}

	err = e.db.QueryRow("SELECT value, domain FROM kv WHERE key = ?", key).Scan(&value, &domain)
	if err == sql.ErrNoRows {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, domain, true, nil
}

// Set writes value under key, tagged with the writing facade's domain.
// An existing row is replaced regardless of its previous domain.
func (e *Engine) Set(key, value, domain string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}

	_, err := e.db.Exec(`
		INSERT INTO kv (key, value, domain, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, domain = excluded.domain, updated_at = CURRENT_TIMESTAMP`,
		key, value, domain)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	logging.EngineDebug("Set key=%s domain=%s", key, domain)
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (e *Engine) Remove(key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}

	if _, err := e.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	logging.EngineDebug("Removed key=%s", key)
	return nil
}

// ClearAll deletes every key in the store.
func (e *Engine) ClearAll() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}

	if _, err := e.db.Exec("DELETE FROM kv"); err != nil {
		return fmt.Errorf("clear all: %w", err)
	}
	logging.Engine("Cleared all keys")
	return nil
}

// AllKeys returns every key in the store, sorted.
func (e *Engine) AllKeys() ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return nil, ErrClosed
	}

	rows, err := e.db.Query("SELECT key FROM kv ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("all keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("all keys scan: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("all keys rows: %w", err)
	}
	return keys, nil
}

// Contains reports whether key exists in the store.
func (e *Engine) Contains(key string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return false, ErrClosed
	}

	var one int
	err := e.db.QueryRow("SELECT 1 FROM kv WHERE key = ?", key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("contains %q: %w", key, err)
	}
	return true, nil
}

// Stats returns store statistics.
func (e *Engine) Stats() (EngineStats, error) {
	timer := logging.StartTimer(logging.CategoryEngine, "Stats")
	defer timer.Stop()

	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return EngineStats{}, ErrClosed
	}

	stats := EngineStats{Path: e.path, Domains: make(map[string]int64)}
	if err := e.db.QueryRow("SELECT COUNT(*) FROM kv").Scan(&stats.Keys); err != nil {
		return EngineStats{}, fmt.Errorf("stats count: %w", err)
	}

	rows, err := e.db.Query("SELECT domain, COUNT(*) FROM kv GROUP BY domain")
	if err != nil {
		return EngineStats{}, fmt.Errorf("stats domains: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var domain string
		var count int64
		if err := rows.Scan(&domain, &count); err != nil {
			return EngineStats{}, fmt.Errorf("stats scan: %w", err)
		}
		stats.Domains[domain] = count
	}
	if err := rows.Err(); err != nil {
		return EngineStats{}, fmt.Errorf("stats rows: %w", err)
	}

	if e.path != ":memory:" {
		if info, err := os.Stat(e.path); err == nil {
			stats.FileBytes = info.Size()
		}
	}
	return stats, nil
}
