package kv

import (
	"atomkv/internal/engine"
	"encoding/json"
)

// JSONStore stores values of any JSON-marshalable type T as serialized text.
// Malformed stored text surfaces as a fault from Lookup and as absence from
// the defaulting helpers.
type JSONStore[T any] struct {
	codecStore[T]
}

// NewJSONStore returns a JSON facade over eng for payload type T.
func NewJSONStore[T any](eng *engine.Engine) *JSONStore[T] {
	return &JSONStore[T]{codecStore[T]{
		eng:    eng,
		domain: engine.DomainJSON,
		encode: func(v T) (string, error) {
			data, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return string(data), nil
		},
		decode: func(raw string) (T, error) {
			var v T
			err := json.Unmarshal([]byte(raw), &v)
			return v, err
		},
	}}
}
