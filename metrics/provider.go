package metrics

import (
	"context"
	"time"
)

// Provider defines an abstract metrics provider that can record events,
// metrics, and traces, so backends (New Relic, Prometheus, no-op) can be
// swapped without touching call sites.
type Provider interface {
	// StartTrace starts a new trace
	StartTrace(name string) Trace

	// RecordEvent records a custom event with key-value attributes
	RecordEvent(eventName string, attributes map[string]interface{})

	// RecordCount records a count metric
	RecordCount(metricName string, count uint64)

	// RecordDuration records a duration metric
	RecordDuration(metricName string, duration time.Duration)
}

// Trace represents an active trace that can contain multiple spans and attributes.
type Trace interface {
	// StartSpan starts a new span within the trace
	StartSpan(name string) Span

	// AddAttribute adds a key-value attribute to the trace
	AddAttribute(key string, value interface{})

	// OnError records an error on the trace
	OnError(err error)

	// End completes the trace
	End()
}

// Span represents a timed span within a trace for tracing individual operations.
type Span interface {
	// AddAttribute adds a key-value attribute to the span
	AddAttribute(key string, value interface{})

	// End completes the span
	End()
}

type providerContextKey struct{}

// ProviderContextKey is the context key for Provider
var ProviderContextKey = providerContextKey{}

// NewProviderContext returns a new context with the provider attached
func NewProviderContext(ctx context.Context, provider Provider) context.Context {
	return context.WithValue(ctx, ProviderContextKey, provider)
}

// ProviderFromContext retrieves the provider from context, if present
func ProviderFromContext(ctx context.Context) Provider {
	provider, _ := ctx.Value(ProviderContextKey).(Provider)
	return provider
}

// traceContextKey is the context key for storing the current trace
type traceContextKey struct{}

// TraceKey is the context key for Trace
var TraceKey = traceContextKey{}

// NewContext returns a new context with the trace attached
func NewContext(ctx context.Context, trace Trace) context.Context {
	return context.WithValue(ctx, TraceKey, trace)
}

// TraceFromContext retrieves the trace from context, if present
func TraceFromContext(ctx context.Context) Trace {
	trace, _ := ctx.Value(TraceKey).(Trace)
	return trace
}
