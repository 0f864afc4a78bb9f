// Package middleware holds the HTTP middleware chain: request logging and
// per-route Prometheus metrics.
package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/defailabz/mvp-backend/pkg/logger"
)

// Logging records every request with its status, duration and correlation
// ID. The response is buffered through a recorder so the final status code
// is known before anything is written to the client.
func Logging(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			recorder := httptest.NewRecorder()
			next.ServeHTTP(recorder, r)

			for key, values := range recorder.Header() {
				for _, value := range values {
					w.Header().Add(key, value)
				}
			}

			status := recorder.Code
			if status == 0 {
				status = http.StatusOK
			}

			w.WriteHeader(status)
			_, _ = recorder.Body.WriteTo(w)

			log.Info("handled http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
				slog.String("correlation_id", logger.CorrelationIDFromContext(r.Context())),
			)
		})
	}
}
