package kv

import (
	"atomkv/internal/engine"
	"strconv"
)

// BoolStore stores booleans rendered as "true"/"false".
type BoolStore struct {
	codecStore[bool]
}

// NewBoolStore returns the boolean facade over eng.
func NewBoolStore(eng *engine.Engine) *BoolStore {
	return &BoolStore{codecStore[bool]{
		eng:    eng,
		domain: engine.DomainBool,
		encode: func(v bool) (string, error) {
			return strconv.FormatBool(v), nil
		},
		decode: func(raw string) (bool, error) {
			return strconv.ParseBool(raw)
		},
	}}
}
