// Package registration implements the access-gating flow: collect a
// registrant, issue an access code, deliver it by email and validate it.
package registration

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"

	"github.com/defailabz/mvp-backend/internal/domain"
	apperrors "github.com/defailabz/mvp-backend/internal/errors"
	"github.com/defailabz/mvp-backend/internal/email"
	"github.com/defailabz/mvp-backend/internal/idempotency"
	"github.com/defailabz/mvp-backend/internal/jobs"
	"github.com/defailabz/mvp-backend/internal/repository"
	"github.com/defailabz/mvp-backend/pkg/config"
	"github.com/defailabz/mvp-backend/pkg/metrics"
)

// maxCodeAttempts bounds regeneration when a fresh code collides with the
// unique index. Collisions over a 16M space are vanishingly rare.
const maxCodeAttempts = 5

// RegisterInput is the validated register request.
type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Telegram string `validate:"required,startswith=@"`
}

// RegisterResult reports the outcome of a registration. AccessCode is only
// populated under the "simple" email policy; under "immediate" the code
// travels exclusively by the launch-date email.
type RegisterResult struct {
	AccessCode string
	EmailSent  bool
}

// ValidateResult is returned by Validate and Status.
type ValidateResult struct {
	IsVerified bool
	User       domain.PublicUser
}

// Service provides the registration, validation and status operations.
type Service struct {
	store    repository.RegistrationStore
	mailer   email.Mailer
	queue    jobs.Manager
	guard    *idempotency.Guard
	validate *validator.Validate
	log      *slog.Logger

	policy     config.EmailPolicy
	launchDate time.Time
}

// NewService constructs a Service. launchDate is the single broadcast moment
// shared by every registrant.
func NewService(
	store repository.RegistrationStore,
	mailer email.Mailer,
	queue jobs.Manager,
	guard *idempotency.Guard,
	log *slog.Logger,
	policy config.EmailPolicy,
	launchDate time.Time,
) *Service {
	return &Service{
		store:    store,
		mailer:   mailer,
		queue:    queue,
		guard:    guard,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
		policy:   policy,

		launchDate: launchDate,
	}
}

// Register creates a registration record, generates its access code and
// dispatches email according to the configured policy. Email failure never
// rolls the record back; it is reported through RegisterResult.EmailSent.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	input = normalize(input)

	if err := s.validate.Struct(input); err != nil {
		metrics.RecordRegistration("invalid")
		return nil, validationMessage(err)
	}

	reg := &domain.Registration{
		Name:             input.Name,
		Email:            input.Email,
		Telegram:         input.Telegram,
		IsVerified:       false,
		RegistrationDate: time.Now().UTC(),
	}

	if err := s.createWithFreshCode(ctx, reg); err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			metrics.RecordRegistration("duplicate")
			return nil, err
		}

		metrics.RecordRegistration("error")
		s.logError("register.create", reg.Email, err)
		return nil, apperrors.NewDatabaseError(err)
	}

	result := &RegisterResult{EmailSent: true}

	if err := s.mailer.SendConfirmation(ctx, reg.Email, reg.Name, s.launchDate); err != nil {
		// Soft failure: the registration stands, the caller learns the email
		// did not go out.
		result.EmailSent = false
		metrics.RecordEmail("confirmation", "error")
		s.logError("register.confirmation_email", reg.Email, err)
	} else {
		metrics.RecordEmail("confirmation", "ok")
	}

	switch s.policy {
	case config.PolicySimple:
		result.AccessCode = reg.AccessCode
	default:
		if err := s.scheduleCodeEmail(ctx, reg); err != nil {
			result.EmailSent = false
			s.logError("register.schedule_code_email", reg.Email, err)
		}
	}

	metrics.RecordRegistration("ok")

	if pending, err := s.store.CountPendingCodeEmails(ctx); err == nil {
		metrics.SetPendingCodeEmails(pending)
	}

	return result, nil
}

// Validate looks up a registration by access code and flips its verified
// flag. The first call performs the transition; repeat calls are no-op reads
// returning the already-verified user.
func (s *Service) Validate(ctx context.Context, code string) (*ValidateResult, error) {
	reg, err := s.findByCode(ctx, code)
	if err != nil {
		metrics.RecordValidation("invalid")
		return nil, err
	}

	if !reg.IsVerified {
		if err := s.store.MarkVerified(ctx, reg.ID); err != nil {
			metrics.RecordValidation("error")
			s.logError("validate.mark_verified", reg.Email, err)
			return nil, apperrors.NewDatabaseError(err)
		}
		reg.IsVerified = true

		s.enqueueWelcomeEmail(ctx, reg)
	}

	metrics.RecordValidation("ok")

	return &ValidateResult{IsVerified: true, User: reg.Public()}, nil
}

// Status is the read-only lookup used by the frontend to poll verification.
func (s *Service) Status(ctx context.Context, code string) (*ValidateResult, error) {
	reg, err := s.findByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	return &ValidateResult{IsVerified: reg.IsVerified, User: reg.Public()}, nil
}

// List exposes recent registrations for the admin dashboard.
func (s *Service) List(ctx context.Context, limit int) ([]domain.Registration, error) {
	if limit <= 0 {
		limit = 100
	}

	regs, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return regs, nil
}

func (s *Service) createWithFreshCode(ctx context.Context, reg *domain.Registration) error {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := GenerateAccessCode()
		if err != nil {
			return err
		}
		reg.AccessCode = code

		err = s.store.Create(ctx, reg)
		if err == nil {
			return nil
		}
		if errors.Is(err, repository.ErrAccessCodeCollision) {
			continue
		}
		return err
	}

	return repository.ErrAccessCodeCollision
}

// scheduleCodeEmail enqueues this registrant against the global launch
// timestamp. The redis marker plus the database flag make the enqueue
// idempotent when registration scheduling runs twice for the same person.
func (s *Service) scheduleCodeEmail(ctx context.Context, reg *domain.Registration) error {
	acquired, err := s.guard.Acquire(ctx, reg.Email)
	if err != nil {
		return err
	}
	if !acquired {
		return nil
	}

	task, opts, err := jobs.NewAccessCodeEmailTask(reg.Email, reg.Name, reg.AccessCode)
	if err != nil {
		_ = s.guard.Release(ctx, reg.Email)
		return err
	}

	opts = append(opts, asynq.ProcessAt(s.launchDate))
	if _, err := s.queue.Enqueue(ctx, task, opts...); err != nil {
		if !errors.Is(err, asynq.ErrTaskIDConflict) {
			_ = s.guard.Release(ctx, reg.Email)
			return err
		}
	}

	if _, err := s.store.MarkCodeEmailScheduled(ctx, reg.ID); err != nil {
		return err
	}

	if s.log != nil {
		s.log.Info("access code email scheduled",
			slog.String("email", reg.Email),
			slog.Time("launch_date", s.launchDate),
		)
	}

	return nil
}

func (s *Service) enqueueWelcomeEmail(ctx context.Context, reg *domain.Registration) {
	task, opts, err := jobs.NewWelcomeEmailTask(reg.Email, reg.Name)
	if err != nil {
		s.logError("validate.welcome_task", reg.Email, err)
		return
	}

	if _, err := s.queue.Enqueue(ctx, task, opts...); err != nil {
		// Welcome mail is best effort.
		s.logError("validate.welcome_enqueue", reg.Email, err)
	}
}

func (s *Service) findByCode(ctx context.Context, code string) (*domain.Registration, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, apperrors.NewValidationError("Código de acesso é obrigatório")
	}

	reg, err := s.store.FindByAccessCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("registration")
		}

		s.logError("find_by_code", "", err)
		return nil, apperrors.NewDatabaseError(err)
	}

	return reg, nil
}

func (s *Service) logError(operation, emailAddr string, err error) {
	if s == nil || s.log == nil || err == nil {
		return
	}

	s.log.Error("registration service operation failed",
		slog.String("operation", operation),
		slog.String("email", emailAddr),
		slog.Any("error", err),
	)
}

func normalize(input RegisterInput) RegisterInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Telegram = strings.TrimSpace(input.Telegram)
	return input
}

func validationMessage(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			switch fe.Field() {
			case "Name":
				return apperrors.NewValidationError("Nome é obrigatório")
			case "Email":
				return apperrors.NewValidationError("Email inválido")
			case "Telegram":
				return apperrors.NewValidationError("Username Telegram deve começar com @")
			}
		}
	}

	return apperrors.NewValidationError("Dados de cadastro inválidos")
}
