package metrics

import (
	"context"
	"fmt"
	"time"
)

// TraceMethodCall traces a method call with a given struct/package and method
// names. The span joins the trace in ctx; without one, only the call duration
// is reported to the provider in ctx, if any. A nil tracer is safe to use.
func TraceMethodCall(ctx context.Context, structOrPackageName, methodName string) *MethodTracer {
	provider := ProviderFromContext(ctx)
	trace := TraceFromContext(ctx)
	if trace == nil && provider == nil {
		return nil
	}

	name := fmt.Sprintf("%s %s", structOrPackageName, methodName)

	var span Span
	if trace != nil {
		span = trace.StartSpan(name)
	}

	return &MethodTracer{
		provider:   provider,
		trace:      trace,
		span:       span,
		metricName: fmt.Sprintf("%s.%s", structOrPackageName, methodName),
		start:      time.Now(),
	}
}

// MethodTracer collects analytics for a given method call
type MethodTracer struct {
	provider   Provider
	trace      Trace
	span       Span
	metricName string
	start      time.Time
}

// AddAttribute adds a key-value pair metadata to the method trace
func (t *MethodTracer) AddAttribute(key string, value interface{}) {
	if t == nil || t.span == nil {
		return
	}

	t.span.AddAttribute(key, value)
}

// AddAttributes adds a set of key-value pair metadata to the method trace
func (t *MethodTracer) AddAttributes(attributes map[string]interface{}) {
	if t == nil {
		return
	}

	for key, value := range attributes {
		t.AddAttribute(key, value)
	}
}

// OnError observes an error within a method trace
func (t *MethodTracer) OnError(err error) {
	if t == nil || err == nil {
		return
	}

	if t.trace != nil {
		t.trace.OnError(err)
	}
	if t.provider != nil {
		t.provider.RecordCount(t.metricName+".error", 1)
	}
}

// End completes the span and records the call duration
func (t *MethodTracer) End() {
	if t == nil {
		return
	}

	if t.span != nil {
		t.span.End()
	}
	if t.provider != nil {
		t.provider.RecordDuration(t.metricName+".duration", time.Since(t.start))
	}
}
