package noop

import (
	"time"

	"github.com/the-1ndex/mmm/metrics"
)

var (
	_ metrics.Provider = (*Provider)(nil)
	_ metrics.Trace    = (*Trace)(nil)
	_ metrics.Span     = (*Span)(nil)

	sharedTrace = &Trace{}
	sharedSpan  = &Span{}
)

// Provider is the metrics_provider = "noop" backend. Interceptors and
// MethodTracer still run against it, so request paths behave the same as with
// a real backend.
type Provider struct{}

func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) StartTrace(name string) metrics.Trace {
	return sharedTrace
}

func (p *Provider) RecordEvent(eventName string, attributes map[string]interface{}) {}

func (p *Provider) RecordCount(metricName string, count uint64) {}

func (p *Provider) RecordDuration(metricName string, duration time.Duration) {}

// Trace is stateless; every StartTrace call returns the same value
type Trace struct{}

func (t *Trace) StartSpan(name string) metrics.Span {
	return sharedSpan
}

func (t *Trace) AddAttribute(key string, value interface{}) {}

func (t *Trace) OnError(err error) {}

func (t *Trace) End() {}

type Span struct{}

func (s *Span) AddAttribute(key string, value interface{}) {}

func (s *Span) End() {}
