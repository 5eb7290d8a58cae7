package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wonny/pulseboard/backend/internal/pipeline"
)

// Metrics owns a private Prometheus registry for the API process.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	runs            prometheus.Counter
	insightsFired   *prometheus.CounterVec
	readyDatasets   *prometheus.GaugeVec
}

// NewMetrics creates and registers every collector.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pulse",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pulse",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pulse",
			Name:      "analysis_runs_total",
			Help:      "Completed analysis runs.",
		}),
		insightsFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pulse",
			Name:      "insights_fired_total",
			Help:      "Insights produced, by rule id and severity.",
		}, []string{"rule", "severity"}),
		readyDatasets: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "pulse",
			Name:      "datasets_last_run",
			Help:      "Datasets in the most recent run, by readiness.",
		}, []string{"ready"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.runs,
		m.insightsFired,
		m.readyDatasets,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route, method string, code int, d time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// ObserveReport records one completed analysis run.
func (m *Metrics) ObserveReport(r *pipeline.Report) {
	m.runs.Inc()
	for _, in := range r.Insights.All {
		m.insightsFired.WithLabelValues(in.ID, string(in.Severity)).Inc()
	}

	var ready, notReady float64
	for _, ds := range r.Datasets {
		if ds.Ready {
			ready++
		} else {
			notReady++
		}
	}
	m.readyDatasets.WithLabelValues("true").Set(ready)
	m.readyDatasets.WithLabelValues("false").Set(notReady)
}
