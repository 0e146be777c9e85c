package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AlertsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alert_service_alerts_total",
		Help: "Accident alerts processed, by outcome",
	}, []string{"outcome"})
	ResolutionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alert_service_resolutions_total",
		Help: "Nearest-facility resolutions, by category and whether a facility was found",
	}, []string{"category", "found"})
	InvalidFacilitiesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alert_service_invalid_facilities_total",
		Help: "Candidates skipped during resolution because of invalid coordinates",
	}, []string{"category"})
	// Buckets start at 50µs: resolution is pure CPU work.
	OperationDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "alert_service_operation_duration_seconds",
		Help:    "Duration of timed operations in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00005, 4, 10),
	}, []string{"op", "status"})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alert_service_http_requests_total",
		Help: "HTTP requests served, by route and status code",
	}, []string{"route", "code"})
)

func init() {
	prometheus.MustRegister(AlertsTotal)
	prometheus.MustRegister(ResolutionsTotal)
	prometheus.MustRegister(InvalidFacilitiesTotal)
	prometheus.MustRegister(OperationDurationSeconds)
	prometheus.MustRegister(HTTPRequestsTotal)
}

// Handler exposes every registered collector for scraping.
func Handler() http.Handler { return promhttp.Handler() }
