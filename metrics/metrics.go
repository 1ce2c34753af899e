// Package metrics provides Prometheus metrics for the HTTP server and the
// domain operations behind it:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//   - symptom_analyses_total: Counter with the matched category label
//   - medicine_scans_total: Counter with the identified medicine label
//   - scanner_sessions_active: Gauge for live scanner sessions
//   - rate_limiter_buckets_total: Gauge for tracked client buckets
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/giygas/myoncologist-api/medicines"
	"github.com/giygas/myoncologist-api/symptoms"
)

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	SymptomAnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "symptom_analyses_total",
			Help: "Symptom analysis results by category",
		},
		[]string{"category"},
	)

	MedicineScansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medicine_scans_total",
			Help: "Completed medicine scans by identified medicine",
		},
		[]string{"medicine"},
	)

	ScannerSessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "scanner_sessions_active",
			Help: "Scanner sessions currently held in memory",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen in last ~5 minutes)",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(SymptomAnalysesTotal)
	prometheus.MustRegister(MedicineScansTotal)
	prometheus.MustRegister(ScannerSessionsActive)
	prometheus.MustRegister(RateLimiterBucketsTotal)

	// Known label values start at zero so dashboards see every series
	for _, category := range symptoms.Categories() {
		SymptomAnalysesTotal.WithLabelValues(category)
	}
	for _, name := range medicines.Names() {
		MedicineScansTotal.WithLabelValues(name)
	}
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
