package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are registered on the server's own registry so several servers
// (tests) can coexist in one process.
type metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	routeFailures *prometheus.CounterVec
	importReloads prometheus.Counter
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nojs",
			Name:      "requests_total",
			Help:      "Requests served, by kind (page, file) and status code.",
		}, []string{"kind", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nojs",
			Name:      "request_duration_seconds",
			Help:      "Request latency by kind.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		routeFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nojs",
			Name:      "route_failures_total",
			Help:      "Server rendered routes that failed, by stage (plan, load, render).",
		}, []string{"stage"}),
		importReloads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "nojs",
			Name:      "import_map_reloads_total",
			Help:      "Successful import map reloads.",
		}),
	}
}
