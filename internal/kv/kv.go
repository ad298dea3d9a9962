// Package kv provides the typed storage facades over one shared engine
// handle. Each facade narrows the engine's string rows to one value domain
// (string, number, boolean, JSON) behind a uniform contract.
//
// Two access surfaces coexist. Lookup returns a three-way result so callers
// can tell absence from a read fault. Get/GetOr/MustSet keep the historical
// log-and-default policy: a fault is written to the kv category log and the
// caller sees the same thing as "no data yet".
package kv

import (
	"atomkv/internal/engine"
	"atomkv/internal/logging"
	"fmt"
)

// Store is the uniform facade contract shared by every value domain.
type Store[T any] interface {
	// Lookup returns (value, true, nil) when key holds a decodable value,
	// (zero, false, nil) when key is absent, and (zero, false, err) on an
	// engine or decode fault.
	Lookup(key string) (T, bool, error)

	// Get returns the stored value or nil when the key is absent or the
	// read faulted. Faults are logged, never returned.
	Get(key string) *T

	// GetOr returns the stored value, or fallback on absence or fault.
	GetOr(key string, fallback T) T

	// Set encodes and writes value under key.
	Set(key string, value T) error

	// MustSet writes value, logging instead of returning a fault.
	MustSet(key string, value T)

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
}

// codecStore implements Store for one domain via an encode/decode pair.
type codecStore[T any] struct {
	eng    *engine.Engine
	domain string
	encode func(T) (string, error)
	decode func(string) (T, error)
}

func (s *codecStore[T]) Lookup(key string) (T, bool, error) {
	var zero T
	raw, _, found, err := s.eng.Get(key)
	if err != nil {
		return zero, false, fmt.Errorf("lookup %q: %w", key, err)
	}
	if !found {
		return zero, false, nil
	}
	value, err := s.decode(raw)
	if err != nil {
		return zero, false, fmt.Errorf("decode %q as %s: %w", key, s.domain, err)
	}
	return value, true, nil
}

func (s *codecStore[T]) Get(key string) *T {
	value, found, err := s.Lookup(key)
	if err != nil {
		logging.KVError("Get %s key=%s: %v", s.domain, key, err)
		return nil
	}
	if !found {
		return nil
	}
	return &value
}

func (s *codecStore[T]) GetOr(key string, fallback T) T {
	value, found, err := s.Lookup(key)
	if err != nil {
		logging.KVError("GetOr %s key=%s: %v", s.domain, key, err)
		return fallback
	}
	if !found {
		return fallback
	}
	return value
}

func (s *codecStore[T]) Set(key string, value T) error {
	raw, err := s.encode(value)
	if err != nil {
		return fmt.Errorf("encode %q as %s: %w", key, s.domain, err)
	}
	if err := s.eng.Set(key, raw, s.domain); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	logging.KVDebug("Set %s key=%s", s.domain, key)
	return nil
}

func (s *codecStore[T]) MustSet(key string, value T) {
	if err := s.Set(key, value); err != nil {
		logging.KVError("MustSet %s key=%s: %v", s.domain, key, err)
	}
}

func (s *codecStore[T]) Remove(key string) error {
	if err := s.eng.Remove(key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	logging.KVDebug("Removed %s key=%s", s.domain, key)
	return nil
}
