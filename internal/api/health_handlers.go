package api

import (
	"net/http"

	"github.com/defailabz/mvp-backend/internal/health"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	results := s.checker.Check(r.Context())

	status := "ok"
	code := http.StatusOK
	if !health.Healthy(results) {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{
		"status":     status,
		"components": results,
	})
}
