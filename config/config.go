// Package config defines typed configuration values. Implementations decide
// where values come from (environment, memory, ...), and callers read them
// with Get on every use so sources may change them at runtime.
package config

import (
	"context"
	"time"
)

type Uint64 interface {
	Get(ctx context.Context) uint64
}

type Int64 interface {
	Get(ctx context.Context) int64
}

type Bool interface {
	Get(ctx context.Context) bool
}

type String interface {
	Get(ctx context.Context) string
}

type Duration interface {
	Get(ctx context.Context) time.Duration
}
