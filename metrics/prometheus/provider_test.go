package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_CountsAndDurations(t *testing.T) {
	registry := prometheus.NewRegistry()
	provider := NewProvider("mmm", registry)

	provider.RecordCount("pda.cache.hit", 2)
	provider.RecordCount("pda.cache.hit", 3)
	provider.RecordDuration("pda.Resolve.duration", 10*time.Millisecond)
	provider.RecordEvent("address_derived", map[string]interface{}{"kind": "pool"})

	assert.EqualValues(t, 5, promtestutil.ToFloat64(provider.counter("pda.cache.hit")))
	assert.EqualValues(t, 1, promtestutil.ToFloat64(provider.events.WithLabelValues("address_derived")))

	families, err := registry.Gather()
	require.NoError(t, err)

	var names []string
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "mmm_pda_cache_hit_total")
	assert.Contains(t, names, "mmm_pda_Resolve_duration_seconds")
	assert.Contains(t, names, "mmm_events_total")
}

func TestRegister_ReturnsExistingCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	opts := prometheus.CounterOpts{Name: "hits_total", Help: "hits"}

	first := prometheus.NewCounter(opts)
	second := prometheus.NewCounter(opts)

	assert.Equal(t, first, register(registry, first))
	assert.Equal(t, first, register(registry, second))
}

func TestProvider_NameClashesDoNotPanic(t *testing.T) {
	registry := prometheus.NewRegistry()
	provider := NewProvider("mmm", registry)

	assert.NotPanics(t, func() {
		provider.RecordCount("events", 1)
		provider.RecordCount("events", 2)
		provider.RecordDuration("trace_duration", time.Millisecond)
		provider.RecordDuration("span_duration", time.Millisecond)
	})

	// the built-in collectors keep their shape and stay exported
	provider.RecordEvent("address_derived", nil)
	assert.EqualValues(t, 1, promtestutil.ToFloat64(provider.events.WithLabelValues("address_derived")))
	assert.EqualValues(t, 3, promtestutil.ToFloat64(provider.counter("events")))

	_, err := registry.Gather()
	require.NoError(t, err)
}

func TestRegister_ExistingVectorIsNotReused(t *testing.T) {
	registry := prometheus.NewRegistry()
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "hits_total", Help: "hits"}, []string{"kind"})
	require.NoError(t, registry.Register(vec))

	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "hits_total", Help: "hits"})
	assert.Equal(t, counter, register(registry, counter))
}

func TestProvider_LeadingDigitsStayDistinct(t *testing.T) {
	registry := prometheus.NewRegistry()
	provider := NewProvider("mmm", registry)

	provider.RecordCount("1abc", 1)
	provider.RecordCount("2abc", 2)

	assert.EqualValues(t, 1, promtestutil.ToFloat64(provider.counter("1abc")))
	assert.EqualValues(t, 2, promtestutil.ToFloat64(provider.counter("2abc")))
}

func TestProvider_Traces(t *testing.T) {
	registry := prometheus.NewRegistry()
	provider := NewProvider("mmm", registry)

	trace := provider.StartTrace("/mmm.address.v1.Address/Derive")
	span := trace.StartSpan("pda Resolve")
	span.End()
	trace.OnError(errors.New("failure"))
	trace.End()

	assert.Equal(t, 1, promtestutil.CollectAndCount(provider.traces))
	assert.Equal(t, 1, promtestutil.CollectAndCount(provider.spans))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "pda_cache_hit", sanitize("pda.cache.hit"))
	assert.Equal(t, "_1abc", sanitize("1abc"))
	assert.Equal(t, "_2abc", sanitize("2abc"))
	assert.Equal(t, "a1", sanitize("a1"))
	assert.Equal(t, "a_b_c", sanitize("a b-c"))
}
