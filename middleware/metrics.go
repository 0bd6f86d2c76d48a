package middleware

import (
	"net/http"
	"time"

	"github.com/nijaru/yt-summary/metrics"
)

// Metrics records request counts and latency. It must wrap the ServeMux
// directly: the route label is read from Request.Pattern after the mux has
// matched, and unmatched requests are grouped under "unmatched".
func Metrics(rec *metrics.Recorder) func(http.Handler) http.Handler {
	if rec == nil {
		return nil
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			rec.RecordRequest(r.Method, route, rw.statusCode, time.Since(start))
		})
	}
}
