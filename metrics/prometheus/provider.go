package prometheus

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/the-1ndex/mmm/metrics"
)

// Provider implements metrics.Provider on Prometheus collectors. Counts and
// durations are registered lazily under their sanitized metric names. Trace
// and span attributes are dropped to keep label cardinality bounded.
type Provider struct {
	namespace  string
	registerer prometheus.Registerer

	mu        sync.Mutex
	counters  map[string]prometheus.Counter
	durations map[string]prometheus.Histogram

	events *prometheus.CounterVec
	traces *prometheus.HistogramVec
	spans  *prometheus.HistogramVec
}

// NewProvider registers the provider's collectors with registerer
func NewProvider(namespace string, registerer prometheus.Registerer) *Provider {
	p := &Provider{
		namespace:  sanitize(namespace),
		registerer: registerer,
		counters:   make(map[string]prometheus.Counter),
		durations:  make(map[string]prometheus.Histogram),

		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: sanitize(namespace),
			Name:      "events_total",
			Help:      "Custom events recorded, by event name.",
		}, []string{"event"}),
		traces: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: sanitize(namespace),
			Name:      "trace_duration_seconds",
			Help:      "Trace durations, by trace name and outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"trace", "error"}),
		spans: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: sanitize(namespace),
			Name:      "span_duration_seconds",
			Help:      "Span durations, by span name.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"span"}),
	}

	registerer.MustRegister(p.events, p.traces, p.spans)
	return p
}

// StartTrace starts a new trace
func (p *Provider) StartTrace(name string) metrics.Trace {
	return &Trace{provider: p, name: name, start: time.Now()}
}

// RecordEvent counts the event; attributes are not exported
func (p *Provider) RecordEvent(eventName string, attributes map[string]interface{}) {
	p.events.WithLabelValues(eventName).Inc()
}

// RecordCount adds count to the named counter
func (p *Provider) RecordCount(metricName string, count uint64) {
	p.counter(metricName).Add(float64(count))
}

// RecordDuration observes duration on the named histogram
func (p *Provider) RecordDuration(metricName string, duration time.Duration) {
	p.histogram(metricName).Observe(duration.Seconds())
}

func (p *Provider) counter(metricName string) prometheus.Counter {
	name := sanitize(metricName) + "_total"

	p.mu.Lock()
	defer p.mu.Unlock()

	if counter, ok := p.counters[name]; ok {
		return counter
	}

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: p.namespace,
		Name:      name,
		Help:      "Count of " + metricName,
	})
	if existing, ok := register(p.registerer, counter).(prometheus.Counter); ok {
		counter = existing
	}
	p.counters[name] = counter
	return counter
}

func (p *Provider) histogram(metricName string) prometheus.Histogram {
	name := sanitize(metricName) + "_seconds"

	p.mu.Lock()
	defer p.mu.Unlock()

	if histogram, ok := p.durations[name]; ok {
		return histogram
	}

	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: p.namespace,
		Name:      name,
		Help:      "Duration of " + metricName,
		Buckets:   prometheus.DefBuckets,
	})
	if existing, ok := register(p.registerer, histogram).(prometheus.Histogram); ok {
		histogram = existing
	}
	p.durations[name] = histogram
	return histogram
}

// register returns the already registered collector when an equivalent one
// exists, e.g. after two providers share a registry. A collector that clashes
// with a differently shaped metric is returned unregistered, so it still
// records but is never exported.
func register(registerer prometheus.Registerer, collector prometheus.Collector) prometheus.Collector {
	if err := registerer.Register(collector); err != nil {
		if existing, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return existing.ExistingCollector
		}
	}
	return collector
}

// Trace times a named operation
type Trace struct {
	provider *Provider
	name     string
	start    time.Time

	mu     sync.Mutex
	failed bool
}

// StartSpan starts a new span within the trace
func (t *Trace) StartSpan(name string) metrics.Span {
	return &Span{provider: t.provider, name: name, start: time.Now()}
}

// AddAttribute is a no-op
func (t *Trace) AddAttribute(key string, value interface{}) {}

// OnError marks the trace as failed
func (t *Trace) OnError(err error) {
	if err == nil {
		return
	}
	t.mu.Lock()
	t.failed = true
	t.mu.Unlock()
}

// End observes the trace duration
func (t *Trace) End() {
	t.mu.Lock()
	failed := t.failed
	t.mu.Unlock()

	errorLabel := "false"
	if failed {
		errorLabel = "true"
	}
	t.provider.traces.WithLabelValues(t.name, errorLabel).Observe(time.Since(t.start).Seconds())
}

// Span times a named operation within a trace
type Span struct {
	provider *Provider
	name     string
	start    time.Time
}

// AddAttribute is a no-op
func (s *Span) AddAttribute(key string, value interface{}) {}

// End observes the span duration
func (s *Span) End() {
	s.provider.spans.WithLabelValues(s.name).Observe(time.Since(s.start).Seconds())
}

func sanitize(name string) string {
	var sb strings.Builder
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				sb.WriteRune('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
