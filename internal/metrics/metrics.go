// Package metrics exposes the server's Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "newsd"

// Metrics holds the server's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	PagesRendered   *prometheus.CounterVec
	RenderErrors    prometheus.Counter
	RequestDuration *prometheus.HistogramVec
	Articles        prometheus.Gauge
}

// New creates the collectors and registers them, along with the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		PagesRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_rendered_total",
			Help:      "Pages rendered, by page and status code",
		}, []string{"page", "status"}),
		RenderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_errors_total",
			Help:      "Page renders that failed with a template error",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status code",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"route", "status"}),
		Articles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "articles",
			Help:      "Articles in the loaded collection",
		}),
	}

	m.registry.MustRegister(
		m.PagesRendered,
		m.RenderErrors,
		m.RequestDuration,
		m.Articles,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObservePage counts one rendered page.
func (m *Metrics) ObservePage(page string, status int) {
	m.PagesRendered.WithLabelValues(page, strconv.Itoa(status)).Inc()
}

// ObserveRequest records the latency of one request.
func (m *Metrics) ObserveRequest(route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.RequestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
