package promobs

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/leofalp/calclogic/providers/observability"
)

// DefaultNamespace prefixes every metric name that does not already carry it.
const DefaultNamespace = "calclogic"

// DefaultBuckets covers tool durations from 10µs to about 2.6s, in milliseconds.
var DefaultBuckets = prometheus.ExponentialBuckets(0.01, 4, 10)

// Provider serves Counter and Histogram from Prometheus collectors and
// forwards tracing and logging to the wrapped provider.
type Provider struct {
	observability.Provider

	reg       prometheus.Registerer
	namespace string
	buckets   []float64

	mu         sync.Mutex
	counters   map[string]prometheus.Counter
	histograms map[string]prometheus.Histogram
}

// Ensure Provider implements observability.Provider
var _ observability.Provider = (*Provider)(nil)

// Option configures a Provider.
type Option func(*Provider)

// WithNamespace replaces DefaultNamespace.
func WithNamespace(namespace string) Option {
	return func(p *Provider) {
		p.namespace = sanitize(namespace)
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(p *Provider) {
		p.buckets = buckets
	}
}

// Wrap returns a Provider that registers its collectors with reg, or with
// prometheus.DefaultRegisterer when reg is nil.
//
// Metric names are derived from the observability names: dots and other
// invalid characters become underscores, the namespace is prepended when
// missing and counters get a _total suffix. "calclogic.tool.calls" is
// exported as calclogic_tool_calls_total.
func Wrap(base observability.Provider, reg prometheus.Registerer, opts ...Option) *Provider {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	p := &Provider{
		Provider:   base,
		reg:        reg,
		namespace:  DefaultNamespace,
		buckets:    DefaultBuckets,
		counters:   make(map[string]prometheus.Counter),
		histograms: make(map[string]prometheus.Histogram),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Counter returns the Prometheus counter for name, registering it on first use.
func (p *Provider) Counter(name string) observability.Counter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.counters[name]; ok {
		return counter{c}
	}

	metricName := p.metricName(name)
	if !strings.HasSuffix(metricName, "_total") {
		metricName += "_total"
	}
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: metricName, Help: name})
	c = register(p, c)
	p.counters[name] = c
	return counter{c}
}

// Histogram returns the Prometheus histogram for name, registering it on
// first use.
func (p *Provider) Histogram(name string) observability.Histogram {
	p.mu.Lock()
	defer p.mu.Unlock()

	if h, ok := p.histograms[name]; ok {
		return histogram{h}
	}

	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    p.metricName(name),
		Help:    name,
		Buckets: p.buckets,
	})
	h = register(p, h)
	p.histograms[name] = h
	return histogram{h}
}

// register adds c to the registry. If an identical collector is already
// registered, that one is reused. Any other failure is logged and c is
// returned unregistered so callers can still record into it.
func register[C prometheus.Collector](p *Provider, c C) C {
	err := p.reg.Register(c)
	if err == nil {
		return c
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing
		}
	}
	if p.Provider != nil {
		p.Warn(context.Background(), "Prometheus registration failed",
			observability.Error(err))
	}
	return c
}

func (p *Provider) metricName(name string) string {
	metricName := sanitize(name)
	if p.namespace != "" && !strings.HasPrefix(metricName, p.namespace+"_") {
		metricName = p.namespace + "_" + metricName
	}
	return metricName
}

// sanitize maps name onto the Prometheus metric name alphabet.
func sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 1)
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

type counter struct {
	c prometheus.Counter
}

// Add implements observability.Counter. Prometheus counters only go up, so
// negative deltas are dropped.
func (c counter) Add(_ context.Context, value int64, _ ...observability.Attribute) {
	if value < 0 {
		return
	}
	c.c.Add(float64(value))
}

type histogram struct {
	h prometheus.Histogram
}

// Record implements observability.Histogram.
func (h histogram) Record(_ context.Context, value float64, _ ...observability.Attribute) {
	h.h.Observe(value)
}
