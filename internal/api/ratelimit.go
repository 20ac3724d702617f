package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
)

// DefaultRateLimit is the number of API requests a client IP may make per
// minute when ServerConfig.RateLimit is zero.
const DefaultRateLimit = 600

// rateLimit limits API requests per client IP over a sliding one minute window.
func rateLimit(limit int) func(http.Handler) http.Handler {
	window := time.Minute
	return httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
			respondError(w, http.StatusTooManyRequests, "Too many requests, try again later")
		}),
	)
}
