package api

import (
	"errors"
	"net/http"

	"github.com/defailabz/mvp-backend/internal/domain"
	apperrors "github.com/defailabz/mvp-backend/internal/errors"
	"github.com/defailabz/mvp-backend/internal/registration"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Telegram string `json:"telegram"`
}

type registerResponse struct {
	Message    string `json:"message"`
	EmailSent  bool   `json:"emailSent"`
	AccessCode string `json:"accessCode,omitempty"`
}

type validateRequest struct {
	Code string `json:"code"`
}

type validateResponse struct {
	Valid bool              `json:"valid"`
	User  domain.PublicUser `json:"user"`
}

type statusResponse struct {
	IsVerified bool              `json:"isVerified"`
	User       domain.PublicUser `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.registrations.Register(r.Context(), registration.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Telegram: req.Telegram,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		Message:    "Registro realizado com sucesso",
		EmailSent:  result.EmailSent,
		AccessCode: result.AccessCode,
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.registrations.Validate(r.Context(), req.Code)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.HTTPStatus == http.StatusNotFound {
			err = appErr.WithHTTPStatus(http.StatusBadRequest)
		}
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, validateResponse{Valid: true, User: result.User})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	result, err := s.registrations.Status(r.Context(), r.PathValue("code"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		IsVerified: result.IsVerified,
		User:       result.User,
	})
}
