package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Item lookup results
const (
	LookupFound    = "found"
	LookupNotFound = "not_found"
)

// Collector records service metrics on its own registry
type Collector struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	itemLookups  *prometheus.CounterVec
	buildInfo    *prometheus.GaugeVec
}

// NewCollector creates a new Prometheus metrics collector backed by a fresh
// registry that also carries the Go runtime and process collectors.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return newCollector(reg)
}

func newCollector(reg *prometheus.Registry) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_demo_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pipeline_demo_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"method", "route"},
		),
		itemLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_demo_item_lookups_total",
				Help: "Total number of single item lookups by result",
			},
			[]string{"result"},
		),
		buildInfo: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pipeline_demo_build_info",
				Help: "Build information, always 1",
			},
			[]string{"version", "environment"},
		),
	}
}

// Handler returns the /metrics exposition handler
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveHTTPRequest records one served request
func (c *Collector) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, statusLabel(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordItemLookup records the outcome of a single item lookup
func (c *Collector) RecordItemLookup(found bool) {
	result := LookupNotFound
	if found {
		result = LookupFound
	}
	c.itemLookups.WithLabelValues(result).Inc()
}

// SetBuildInfo publishes the running version and environment
func (c *Collector) SetBuildInfo(version, environment string) {
	c.buildInfo.WithLabelValues(version, environment).Set(1)
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
