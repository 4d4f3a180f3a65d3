package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the front-end's collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "banking_frontend",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "banking_frontend",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "banking_frontend",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	backendCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "banking_frontend",
			Subsystem: "bank_api",
			Name:      "calls_total",
			Help:      "Total number of banking API calls by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	backendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "banking_frontend",
			Subsystem: "bank_api",
			Name:      "call_duration_seconds",
			Help:      "Duration of banking API calls.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"operation"},
	)

	busyRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "banking_frontend",
			Subsystem: "session",
			Name:      "busy_rejections_total",
			Help:      "Form submissions rejected because the session had a request in flight.",
		},
		[]string{"action"},
	)

	liveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "banking_frontend",
			Subsystem: "session",
			Name:      "live",
			Help:      "Number of sessions currently held in memory.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		backendCalls,
		backendDuration,
		busyRejections,
		liveSessions,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler is gorilla/mux middleware; routes are labelled by their
// template so path variables do not explode cardinality.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := routeTemplate(r)
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

// RecordBackendCall counts one banking API call. outcome is "success" or
// "error".
func RecordBackendCall(operation string, duration time.Duration, success bool) {
	outcome := "error"
	if success {
		outcome = "success"
	}
	if duration <= 0 {
		duration = time.Millisecond
	}
	backendCalls.WithLabelValues(operation, outcome).Inc()
	backendDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func RecordBusyRejection(action string) {
	busyRejections.WithLabelValues(action).Inc()
}

func SetLiveSessions(n int) {
	liveSessions.Set(float64(n))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
