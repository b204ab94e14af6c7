package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Ledger operations
	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "point_operations_total",
			Help: "Total successful point mutations",
		},
		[]string{"kind"}, // charge|use
	)
	RejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "point_rejections_total",
			Help: "Total rejected point mutations",
		},
		[]string{"kind", "reason"},
	)

	// Archive worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(OperationsTotal)
	prometheus.MustRegister(RejectionsTotal)
	prometheus.MustRegister(WorkerQueueDepth)
}
