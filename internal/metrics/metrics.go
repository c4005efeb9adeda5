package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campusmart",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "campusmart",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "campusmart",
		Name:      "orders_placed_total",
		Help:      "Orders created at checkout.",
	})

	OrdersCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "campusmart",
		Name:      "orders_completed_total",
		Help:      "Orders settled by a successful OTP handoff.",
	})

	OTPFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "campusmart",
		Name:      "otp_failures_total",
		Help:      "Rejected OTP verification attempts.",
	})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency. Requests are labeled
// by the mux route pattern, not the raw URL path, so ids in the path
// cannot blow up label cardinality. The mux is consulted for the
// pattern only; dispatch still goes through next.
func Middleware(mux *http.ServeMux) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			_, pattern := mux.Handler(r)
			if pattern == "" {
				pattern = "unmatched"
			}

			requestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
			requestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
		})
	}
}
