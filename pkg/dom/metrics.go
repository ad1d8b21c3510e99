package dom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures document instrumentation.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "lumen").
	Namespace string

	// Subsystem is the metrics subsystem (default: "dom").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for query duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures document instrumentation.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the query-duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "lumen",
		Subsystem: "dom",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics instruments a document's query and mount paths.
//
// Metrics collected:
//   - lumen_dom_queries_total{result="hit"|"miss"}: selector lookups
//   - lumen_dom_query_duration_seconds: lookup duration
//   - lumen_dom_mounts_total / lumen_dom_unmounts_total: mount churn
//
// Attach with dom.WithDocumentMetrics:
//
//	m := dom.NewMetrics(dom.WithRegistry(reg))
//	doc := dom.NewDocument(dom.WithDocumentMetrics(m))
type Metrics struct {
	queriesTotal  *prometheus.CounterVec
	queryDuration prometheus.Histogram
	mountsTotal   prometheus.Counter
	unmountsTotal prometheus.Counter
}

// NewMetrics creates and registers document metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		queriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "queries_total",
			Help:        "Total number of selector lookups",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		queryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "query_duration_seconds",
			Help:        "Selector lookup duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		mountsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mounts_total",
			Help:        "Total number of element mounts",
			ConstLabels: config.ConstLabels,
		}),

		unmountsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "unmounts_total",
			Help:        "Total number of element unmounts",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) observeQuery(hit bool, d time.Duration) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.queriesTotal.WithLabelValues(result).Inc()
	m.queryDuration.Observe(d.Seconds())
}

func (m *Metrics) observeMount()   { m.mountsTotal.Inc() }
func (m *Metrics) observeUnmount() { m.unmountsTotal.Inc() }
