package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/defailabz/mvp-backend/internal/errors"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	token, err := s.admin.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// requireAdmin gates a handler behind a valid bearer token.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		ok, err := s.admin.ValidateToken(r.Context(), token)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if !ok {
			s.writeError(w, r, apperrors.NewUnauthorizedError())
			return
		}

		next(w, r)
	}
}

func (s *Server) handleListRegistrations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.writeError(w, r, apperrors.NewValidationError("Parâmetro limit inválido"))
			return
		}
		limit = parsed
	}

	registrations, err := s.registrations.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	type entry struct {
		ID               int64  `json:"id"`
		Name             string `json:"name"`
		Email            string `json:"email"`
		Telegram         string `json:"telegram"`
		IsVerified       bool   `json:"isVerified"`
		RegistrationDate string `json:"registrationDate"`
	}

	entries := make([]entry, 0, len(registrations))
	for _, reg := range registrations {
		entries = append(entries, entry{
			ID:               reg.ID,
			Name:             reg.Name,
			Email:            reg.Email,
			Telegram:         reg.Telegram,
			IsVerified:       reg.IsVerified,
			RegistrationDate: reg.RegistrationDate.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"registrations": entries})
}
