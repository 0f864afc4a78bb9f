package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"github.com/defailabz/mvp-backend/internal/domain"
	apperrors "github.com/defailabz/mvp-backend/internal/errors"
)

// ErrAccessCodeCollision reports that a freshly generated access code hit
// the unique index. Callers regenerate and retry.
var ErrAccessCodeCollision = errors.New("access code already assigned")

const pqUniqueViolation = "23505"

// RegistrationStore defines persistence operations for registrations.
type RegistrationStore interface {
	Create(ctx context.Context, reg *domain.Registration) error
	FindByAccessCode(ctx context.Context, code string) (*domain.Registration, error)
	MarkVerified(ctx context.Context, id int64) error
	MarkCodeEmailScheduled(ctx context.Context, id int64) (bool, error)
	CountPendingCodeEmails(ctx context.Context) (int, error)
	List(ctx context.Context, limit int) ([]domain.Registration, error)
}

type registrationStore struct {
	db  *sql.DB
	log *slog.Logger
}

// NewRegistrationStore creates a new SQL-backed registration store.
func NewRegistrationStore(db *sql.DB, log *slog.Logger) RegistrationStore {
	return &registrationStore{
		db:  db,
		log: log,
	}
}

// Create inserts a new registration. Duplicate email or telegram surfaces
// as a DuplicateError via the unique indexes; there is deliberately no
// existence pre-check, so concurrent submissions cannot race past it.
func (r *registrationStore) Create(ctx context.Context, reg *domain.Registration) error {
	const query = `
		INSERT INTO registrations (name, email, telegram, access_code, is_verified, code_email_scheduled, registration_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		reg.Name,
		reg.Email,
		reg.Telegram,
		reg.AccessCode,
		reg.IsVerified,
		reg.CodeEmailScheduled,
		reg.RegistrationDate,
	).Scan(&reg.ID)
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		if pqErr.Constraint == "registrations_access_code_key" {
			return ErrAccessCodeCollision
		}
		return apperrors.NewDuplicateError()
	}

	if r.log != nil {
		r.log.Error("failed to create registration", slog.String("email", reg.Email), slog.Any("error", err))
	}
	return fmt.Errorf("insert registration: %w", err)
}

// FindByAccessCode retrieves a registration by its access code.
func (r *registrationStore) FindByAccessCode(ctx context.Context, code string) (*domain.Registration, error) {
	const query = `
		SELECT id, name, email, telegram, access_code, is_verified, code_email_scheduled, registration_date
		FROM registrations
		WHERE access_code = $1
	`

	row := r.db.QueryRowContext(ctx, query, code)

	var reg domain.Registration
	if err := row.Scan(
		&reg.ID,
		&reg.Name,
		&reg.Email,
		&reg.Telegram,
		&reg.AccessCode,
		&reg.IsVerified,
		&reg.CodeEmailScheduled,
		&reg.RegistrationDate,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}

		if r.log != nil {
			r.log.Error("failed to fetch registration by access code", slog.Any("error", err))
		}
		return nil, fmt.Errorf("select registration by access code: %w", err)
	}

	return &reg, nil
}

// MarkVerified flips is_verified to true. The update only ever moves the
// flag in one direction, keeping verification monotonic.
func (r *registrationStore) MarkVerified(ctx context.Context, id int64) error {
	const query = `UPDATE registrations SET is_verified = TRUE WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		if r.log != nil {
			r.log.Error("failed to mark registration verified", slog.Int64("id", id), slog.Any("error", err))
		}
		return fmt.Errorf("update registration verified: %w", err)
	}

	return nil
}

// MarkCodeEmailScheduled sets the scheduling flag exactly once, reporting
// whether this call performed the transition.
func (r *registrationStore) MarkCodeEmailScheduled(ctx context.Context, id int64) (bool, error) {
	const query = `
		UPDATE registrations
		SET code_email_scheduled = TRUE
		WHERE id = $1 AND code_email_scheduled = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if r.log != nil {
			r.log.Error("failed to mark code email scheduled", slog.Int64("id", id), slog.Any("error", err))
		}
		return false, fmt.Errorf("update code email scheduled: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	return affected == 1, nil
}

// CountPendingCodeEmails counts registrants still waiting for the launch broadcast.
func (r *registrationStore) CountPendingCodeEmails(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM registrations WHERE code_email_scheduled = TRUE AND is_verified = FALSE`

	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pending code emails: %w", err)
	}

	return count, nil
}

// List returns the most recent registrations, newest first.
func (r *registrationStore) List(ctx context.Context, limit int) ([]domain.Registration, error) {
	const query = `
		SELECT id, name, email, telegram, access_code, is_verified, code_email_scheduled, registration_date
		FROM registrations
		ORDER BY registration_date DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []domain.Registration
	for rows.Next() {
		var reg domain.Registration
		if err := rows.Scan(
			&reg.ID,
			&reg.Name,
			&reg.Email,
			&reg.Telegram,
			&reg.AccessCode,
			&reg.IsVerified,
			&reg.CodeEmailScheduled,
			&reg.RegistrationDate,
		); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, reg)
	}

	return regs, rows.Err()
}
