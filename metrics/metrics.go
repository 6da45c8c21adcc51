package metrics

import (
	"context"
	"time"
)

// RecordEvent records a named event on the context's provider. Attributes
// may be dropped by providers that can't export them.
func RecordEvent(ctx context.Context, eventName string, attributes map[string]interface{}) {
	provider := ProviderFromContext(ctx)
	if provider != nil {
		provider.RecordEvent(eventName, attributes)
	}
}

// RecordCount records a count metric
func RecordCount(ctx context.Context, metricName string, count uint64) {
	provider := ProviderFromContext(ctx)
	if provider != nil {
		provider.RecordCount(metricName, count)
	}
}

// RecordDuration records a duration metric
func RecordDuration(ctx context.Context, metricName string, duration time.Duration) {
	provider := ProviderFromContext(ctx)
	if provider != nil {
		provider.RecordDuration(metricName, duration)
	}
}

// RecordDurationSince records the time elapsed since start
func RecordDurationSince(ctx context.Context, metricName string, start time.Time) {
	RecordDuration(ctx, metricName, time.Since(start))
}
