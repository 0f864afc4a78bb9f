package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/defailabz/mvp-backend/pkg/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Metrics measures duration and status per route, reporting them to Prometheus.
// The route pattern keeps label cardinality bounded regardless of path params.
func Metrics(pattern string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			metrics.RecordHTTPRequest(r.Method, pattern, strconv.Itoa(recorder.status), time.Since(start))
		})
	}
}
