package newrelic

import (
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"

	"github.com/the-1ndex/mmm/metrics"
)

// Provider wraps a New Relic application to implement the metrics.Provider interface
type Provider struct {
	app *newrelic.Application
}

// NewProvider creates a new New Relic metrics provider
func NewProvider(app *newrelic.Application) *Provider {
	return &Provider{app: app}
}

// NewProviderFromLicense starts a New Relic application and wraps it. The
// application connects in the background; waitForConnection bounds how long
// to block for it, with zero meaning don't wait.
func NewProviderFromLicense(appName, license string, waitForConnection time.Duration) (*Provider, error) {
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(appName),
		newrelic.ConfigLicense(license),
		newrelic.ConfigEnabled(true),
	)
	if err != nil {
		return nil, errors.Wrap(err, "error creating new relic application")
	}

	if waitForConnection > 0 {
		if err := app.WaitForConnection(waitForConnection); err != nil {
			return nil, errors.Wrap(err, "error connecting to new relic")
		}
	}

	return NewProvider(app), nil
}

// Application returns the underlying New Relic application for cases where
// direct access is needed (e.g., log integration)
func (p *Provider) Application() *newrelic.Application {
	return p.app
}

// Shutdown flushes pending data, waiting at most timeout
func (p *Provider) Shutdown(timeout time.Duration) {
	p.app.Shutdown(timeout)
}

// StartTrace starts a new trace
func (p *Provider) StartTrace(name string) metrics.Trace {
	return &Trace{txn: p.app.StartTransaction(name)}
}

// RecordEvent records a custom event with key-value attributes
func (p *Provider) RecordEvent(eventName string, attributes map[string]interface{}) {
	p.app.RecordCustomEvent(eventName, attributes)
}

// RecordCount records a count metric
func (p *Provider) RecordCount(metricName string, count uint64) {
	p.app.RecordCustomMetric(metricName, float64(count))
}

// RecordDuration records a duration metric
func (p *Provider) RecordDuration(metricName string, duration time.Duration) {
	p.app.RecordCustomMetric(metricName, float64(duration/time.Millisecond))
}

// Trace wraps a New Relic transaction
type Trace struct {
	txn *newrelic.Transaction
}

// StartSpan starts a new span within the trace
func (t *Trace) StartSpan(name string) metrics.Span {
	return &Span{seg: t.txn.StartSegment(name)}
}

// AddAttribute adds a key-value attribute to the trace
func (t *Trace) AddAttribute(key string, value interface{}) {
	t.txn.AddAttribute(key, value)
}

// OnError records an error on the trace
func (t *Trace) OnError(err error) {
	t.txn.NoticeError(err)
}

// End completes the trace
func (t *Trace) End() {
	t.txn.End()
}

// Unwrap returns the underlying New Relic transaction for advanced use cases
func (t *Trace) Unwrap() *newrelic.Transaction {
	return t.txn
}

// Span wraps a New Relic segment
type Span struct {
	seg *newrelic.Segment
}

// AddAttribute adds a key-value attribute to the span
func (s *Span) AddAttribute(key string, value interface{}) {
	s.seg.AddAttribute(key, value)
}

// End completes the span
func (s *Span) End() {
	s.seg.End()
}
