package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hustcer/crowbook/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts handled requests by route pattern and status code.
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crowbook_api_requests_total",
		Help: "Total number of API requests by route and status code",
	}, []string{"route", "code"})

	// requestDuration tracks handler latency by route pattern.
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "crowbook_api_request_duration_seconds",
		Help:    "API request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

// instrument records metrics and a structured log line for each request.
func instrument(next http.Handler) http.Handler {
	logger := log.WithComponent("api")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		logger.Debug().
			Str(log.FieldMethod, r.Method).
			Str(log.FieldRoute, route).
			Int(log.FieldStatus, status).
			Dur(log.FieldDuration, elapsed).
			Msg("request handled")
	})
}
