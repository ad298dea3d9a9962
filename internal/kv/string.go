package kv

import (
	"atomkv/internal/engine"
	"atomkv/internal/logging"
	"fmt"
)

// StringStore is the raw facade. Besides the uniform contract it exposes
// store-wide enumeration and the clear-all operation.
type StringStore struct {
	codecStore[string]
}

// NewStringStore returns the string facade over eng.
func NewStringStore(eng *engine.Engine) *StringStore {
	return &StringStore{codecStore[string]{
		eng:    eng,
		domain: engine.DomainString,
		encode: func(v string) (string, error) { return v, nil },
		decode: func(raw string) (string, error) { return raw, nil },
	}}
}

// Clear deletes every key in the store, across all domains.
func (s *StringStore) Clear() error {
	if err := s.eng.ClearAll(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}

// AllKeys returns every key in the store, empty on fault.
func (s *StringStore) AllKeys() []string {
	keys, err := s.eng.AllKeys()
	if err != nil {
		logging.KVError("AllKeys: %v", err)
		return []string{}
	}
	if keys == nil {
		return []string{}
	}
	return keys
}

// Has reports whether key exists, false on fault.
func (s *StringStore) Has(key string) bool {
	ok, err := s.eng.Contains(key)
	if err != nil {
		logging.KVError("Has key=%s: %v", key, err)
		return false
	}
	return ok
}
