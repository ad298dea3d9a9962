package kv

import (
	"atomkv/internal/engine"
	"strconv"
)

// NumberStore stores float64 values rendered as decimal text.
type NumberStore struct {
	codecStore[float64]
}

// NewNumberStore returns the number facade over eng.
func NewNumberStore(eng *engine.Engine) *NumberStore {
	return &NumberStore{codecStore[float64]{
		eng:    eng,
		domain: engine.DomainNumber,
		encode: func(v float64) (string, error) {
			return strconv.FormatFloat(v, 'g', -1, 64), nil
		},
		decode: func(raw string) (float64, error) {
			return strconv.ParseFloat(raw, 64)
		},
	}}
}
