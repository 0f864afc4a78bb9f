package api

import (
	"encoding/json"
	"io"
	"net/http"

	apperrors "github.com/defailabz/mvp-backend/internal/errors"
)

// maxBodyBytes bounds request bodies. Nothing this API accepts is large.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorEnvelope is the uniform error body.
type errorEnvelope struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	msg, status := s.errs.Handle(r.Context(), err)
	writeJSON(w, status, errorEnvelope{Error: msg})
}

func decodeJSON(r *http.Request, v any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	defer func() { _, _ = io.Copy(io.Discard, body) }()

	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return apperrors.NewValidationError("Corpo da requisição inválido")
	}

	return nil
}
