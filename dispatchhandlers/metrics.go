package dispatchhandlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ariadne-web/ariadne/dispatch"
)

// MetricsConfig configures the metrics middleware behaviour.
type MetricsConfig struct {
	// Registerer receives the collectors. Defaults to
	// prometheus.DefaultRegisterer when nil.
	Registerer prometheus.Registerer

	// Namespace prefixes the metric names, e.g. "myapp".
	Namespace string
}

// MetricsMiddleware returns a middleware that records a request counter
// partitioned by method and status code, and a request duration histogram
// partitioned by method.
func MetricsMiddleware(cfg MetricsConfig) dispatch.MiddlewareFunc {
	reg := cfg.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	requests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Completed HTTP requests, partitioned by method and status code.",
	}, []string{"method", "code"})

	duration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request handling duration, partitioned by method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := newStatusRecorder(w)
			start := time.Now()
			next.ServeHTTP(rec, r)

			requests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
			duration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		})
	}
}
