// Package metrics registers the service's prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics bundles the collectors so tests can use an isolated registry.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	jobsEnqueued *prometheus.CounterVec
	jobsFinished *prometheus.CounterVec
	jobDuration  *prometheus.HistogramVec
}

// New creates and registers the collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fretor_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fretor_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		jobsEnqueued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fretor_report_jobs_enqueued_total",
			Help: "Report jobs accepted for execution, by type and format.",
		}, []string{"report_type", "format"}),
		jobsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fretor_report_jobs_finished_total",
			Help: "Report jobs reaching a terminal state, by type and outcome.",
		}, []string{"report_type", "outcome"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fretor_report_job_duration_seconds",
			Help:    "Report job execution time by type.",
			Buckets: []float64{.1, .5, 1, 5, 15, 60, 300, 600},
		}, []string{"report_type"}),
	}

	registry.MustRegister(
		m.httpRequests, m.httpDuration,
		m.jobsEnqueued, m.jobsFinished, m.jobDuration,
	)
	return m
}

// RegisterQueueDepth exposes the worker queue depth as a gauge sampled at
// scrape time. Sampling the local pool keeps the value honest when jobs are
// finished by another process.
func (m *Metrics) RegisterQueueDepth(depth func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "fretor_report_queue_depth",
		Help: "Report jobs waiting in the worker queue.",
	}, func() float64 { return float64(depth()) }))
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveHTTP records one finished HTTP request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// JobEnqueued records one accepted report job.
func (m *Metrics) JobEnqueued(reportType, format string) {
	m.jobsEnqueued.WithLabelValues(reportType, format).Inc()
}

// JobFinished records one terminal report job.
func (m *Metrics) JobFinished(reportType, outcome string, elapsed time.Duration) {
	m.jobsFinished.WithLabelValues(reportType, outcome).Inc()
	m.jobDuration.WithLabelValues(reportType).Observe(elapsed.Seconds())
}
