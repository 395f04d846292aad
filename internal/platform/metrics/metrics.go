package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Business metrics
	credentialsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credentials_issued_total",
			Help: "Total number of access credentials issued",
		},
		[]string{"level"},
	)

	credentialsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credentials_resolved_total",
			Help: "Total number of credential resolution attempts",
		},
		[]string{"outcome"},
	)

	patientViews = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "patient_views_total",
			Help: "Total number of patient record views",
		},
	)

	// Database metrics
	dbConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() echo.HandlerFunc {
	h := promhttp.Handler()
	return func(c echo.Context) error {
		h.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}

// Middleware records request counts, latency and in-flight gauge per route.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			err := next(c)

			// Use the route template, not the raw path, to keep label
			// cardinality bounded.
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			httpRequestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// RecordCredentialIssued records a credential mint at the given access level.
func RecordCredentialIssued(level string) {
	credentialsIssued.WithLabelValues(level).Inc()
}

// RecordCredentialResolved records a resolution attempt and its outcome.
func RecordCredentialResolved(outcome string) {
	credentialsResolved.WithLabelValues(outcome).Inc()
}

// RecordPatientView records a patient record view.
func RecordPatientView() {
	patientViews.Inc()
}

// RecordDBConnections records active database connections.
func RecordDBConnections(count int) {
	dbConnectionsActive.Set(float64(count))
}
