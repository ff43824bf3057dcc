// Package metrics exposes tracker counters in the Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pricetracker"

// Source labels where a price check came from.
const (
	SourceManual    = "manual"
	SourceScheduler = "scheduler"
)

type Metrics struct {
	registry *prometheus.Registry

	productsAdded    prometheus.Counter
	rejectedURLs     *prometheus.CounterVec
	priceChecks      *prometheus.CounterVec
	trackedProducts  prometheus.Gauge
	upstreamFailures prometheus.Counter
}

// New registers every collector on a private registry so tests can build
// as many instances as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		productsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_added_total",
			Help:      "Products accepted by the input form.",
		}),
		rejectedURLs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_urls_total",
			Help:      "URLs rejected by validation, by reason.",
		}, []string{"reason"}),
		priceChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_checks_total",
			Help:      "Price rechecks applied, by source.",
		}, []string{"source"}),
		trackedProducts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tracked_products",
			Help:      "Products currently held in memory.",
		}),
		upstreamFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_failures_total",
			Help:      "Failed calls to the product-data provider.",
		}),
	}
	m.registry.MustRegister(
		m.productsAdded,
		m.rejectedURLs,
		m.priceChecks,
		m.trackedProducts,
		m.upstreamFailures,
		prometheus.NewGoCollector(),
	)
	return m
}

func (m *Metrics) ProductAdded(total int) {
	m.productsAdded.Inc()
	m.trackedProducts.Set(float64(total))
}

func (m *Metrics) URLRejected(reason string) {
	m.rejectedURLs.WithLabelValues(reason).Inc()
}

func (m *Metrics) PriceChecked(source string) {
	m.priceChecks.WithLabelValues(source).Inc()
}

func (m *Metrics) UpstreamFailed() {
	m.upstreamFailures.Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
