// Package memory provides fixed config values, typically for tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/the-1ndex/mmm/config"
)

// Value is a config value held in memory that can be updated at runtime
type Value[T any] struct {
	mu    sync.RWMutex
	value T
}

// NewConfig returns a Value initialized to value
func NewConfig[T any](value T) *Value[T] {
	return &Value[T]{value: value}
}

func (v *Value[T]) Get(_ context.Context) T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Set replaces the value returned by subsequent calls to Get
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.value = value
	v.mu.Unlock()
}

var (
	_ config.Uint64   = (*Value[uint64])(nil)
	_ config.Int64    = (*Value[int64])(nil)
	_ config.Bool     = (*Value[bool])(nil)
	_ config.String   = (*Value[string])(nil)
	_ config.Duration = (*Value[time.Duration])(nil)
)
