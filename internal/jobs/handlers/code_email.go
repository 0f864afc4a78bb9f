// Package handlers contains asynq task handlers for the email jobs.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/defailabz/mvp-backend/internal/email"
	apperrors "github.com/defailabz/mvp-backend/internal/errors"
	"github.com/defailabz/mvp-backend/internal/jobs"
	"github.com/defailabz/mvp-backend/pkg/metrics"
)

// CodeEmailHandler delivers one registrant's access code when the launch
// broadcast fires. Each task covers a single recipient, so one failing
// address never blocks the rest of the broadcast.
type CodeEmailHandler struct {
	mailer email.Mailer
	log    *slog.Logger
}

// NewCodeEmailHandler constructs the handler.
func NewCodeEmailHandler(mailer email.Mailer, log *slog.Logger) *CodeEmailHandler {
	return &CodeEmailHandler{mailer: mailer, log: log}
}

// ProcessTask implements asynq.Handler.
func (h *CodeEmailHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload jobs.AccessCodeEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		if h.log != nil {
			h.log.ErrorContext(ctx, "code email: failed to decode payload",
				slog.String("task_type", t.Type()),
				slog.String("error", err.Error()),
			)
		}
		return err
	}

	err := apperrors.WithRetry(ctx, func() error {
		if sendErr := h.mailer.SendAccessCode(ctx, payload.Email, payload.Name, payload.AccessCode); sendErr != nil {
			return apperrors.NewEmailDeliveryError(sendErr)
		}
		return nil
	})
	if err != nil {
		metrics.RecordEmail("access_code", "error")
		if h.log != nil {
			h.log.ErrorContext(ctx, "code email: delivery failed",
				slog.String("email", payload.Email),
				slog.Any("error", err),
			)
		}
		return err
	}

	metrics.RecordEmail("access_code", "ok")
	if h.log != nil {
		h.log.InfoContext(ctx, "code email: delivered", slog.String("email", payload.Email))
	}

	return nil
}

// WelcomeEmailHandler sends the post-validation welcome email.
type WelcomeEmailHandler struct {
	mailer email.Mailer
	log    *slog.Logger
}

// NewWelcomeEmailHandler constructs the handler.
func NewWelcomeEmailHandler(mailer email.Mailer, log *slog.Logger) *WelcomeEmailHandler {
	return &WelcomeEmailHandler{mailer: mailer, log: log}
}

// ProcessTask implements asynq.Handler.
func (h *WelcomeEmailHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload jobs.WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}

	if err := h.mailer.SendWelcome(ctx, payload.Email, payload.Name); err != nil {
		metrics.RecordEmail("welcome", "error")
		return apperrors.NewEmailDeliveryError(err)
	}

	metrics.RecordEmail("welcome", "ok")
	return nil
}
