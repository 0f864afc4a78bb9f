package registration

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/defailabz/mvp-backend/internal/domain"
	apperrors "github.com/defailabz/mvp-backend/internal/errors"
	"github.com/defailabz/mvp-backend/internal/email"
	"github.com/defailabz/mvp-backend/internal/idempotency"
	"github.com/defailabz/mvp-backend/pkg/config"
)

// fakeStore keeps registrations in memory with the same uniqueness rules
// the database enforces.
type fakeStore struct {
	regs   []*domain.Registration
	nextID int64

	createErr error
	markErr   error
}

func (f *fakeStore) Create(_ context.Context, reg *domain.Registration) error {
	if f.createErr != nil {
		return f.createErr
	}

	for _, existing := range f.regs {
		if existing.Email == reg.Email || existing.Telegram == reg.Telegram {
			return apperrors.NewDuplicateError()
		}
	}

	f.nextID++
	reg.ID = f.nextID
	clone := *reg
	f.regs = append(f.regs, &clone)
	return nil
}

func (f *fakeStore) FindByAccessCode(_ context.Context, code string) (*domain.Registration, error) {
	for _, reg := range f.regs {
		if reg.AccessCode == code {
			clone := *reg
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStore) MarkVerified(_ context.Context, id int64) error {
	if f.markErr != nil {
		return f.markErr
	}

	for _, reg := range f.regs {
		if reg.ID == id {
			reg.IsVerified = true
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeStore) MarkCodeEmailScheduled(_ context.Context, id int64) (bool, error) {
	for _, reg := range f.regs {
		if reg.ID == id && !reg.CodeEmailScheduled {
			reg.CodeEmailScheduled = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CountPendingCodeEmails(_ context.Context) (int, error) {
	count := 0
	for _, reg := range f.regs {
		if !reg.CodeEmailScheduled {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) List(_ context.Context, limit int) ([]domain.Registration, error) {
	out := make([]domain.Registration, 0, len(f.regs))
	for _, reg := range f.regs {
		if len(out) == limit {
			break
		}
		out = append(out, *reg)
	}
	return out, nil
}

// fakeQueue records enqueued tasks.
type fakeQueue struct {
	tasks      []*asynq.Task
	enqueueErr error
}

func (f *fakeQueue) Enqueue(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.enqueueErr != nil {
		return nil, f.enqueueErr
	}

	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func (f *fakeQueue) Close() error { return nil }

// fakeKV backs the idempotency guard in memory.
type fakeKV struct {
	keys map[string]bool
}

func (f *fakeKV) SetNX(_ context.Context, key string, _ interface{}, _ time.Duration) (bool, error) {
	if f.keys == nil {
		f.keys = map[string]bool{}
	}
	if f.keys[key] {
		return false, nil
	}
	f.keys[key] = true
	return true, nil
}

func (f *fakeKV) Delete(_ context.Context, key string) error {
	delete(f.keys, key)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	service *Service
	store   *fakeStore
	mailer  *email.RecordingMailer
	queue   *fakeQueue
}

func newFixture(t *testing.T, policy config.EmailPolicy) *fixture {
	t.Helper()

	store := &fakeStore{}
	mailer := email.NewRecordingMailer()
	queue := &fakeQueue{}
	guard := idempotency.NewGuard(&fakeKV{}, "code_email", 0, testLogger())

	launch := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	service := NewService(store, mailer, queue, guard, testLogger(), policy, launch)

	return &fixture{service: service, store: store, mailer: mailer, queue: queue}
}

func anaInput() RegisterInput {
	return RegisterInput{Name: "Ana", Email: "ana@x.com", Telegram: "@ana"}
}

func TestRegister_Success(t *testing.T) {
	f := newFixture(t, config.PolicyImmediate)

	result, err := f.service.Register(context.Background(), anaInput())

	require.NoError(t, err)
	assert.True(t, result.EmailSent)
	assert.Empty(t, result.AccessCode, "immediate policy never returns the code")

	require.Len(t, f.store.regs, 1)
	reg := f.store.regs[0]
	assert.False(t, reg.IsVerified)
	assert.Len(t, reg.AccessCode, 6)
	assert.True(t, reg.CodeEmailScheduled)

	messages := f.mailer.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "confirmation", messages[0].Kind)

	require.Len(t, f.queue.tasks, 1)
	assert.Equal(t, "email:access_code", f.queue.tasks[0].Type())
}

func TestRegister_NormalizesEmail(t *testing.T) {
	f := newFixture(t, config.PolicyImmediate)

	_, err := f.service.Register(context.Background(), RegisterInput{
		Name: "  Ana  ", Email: " ANA@X.COM ", Telegram: "@ana",
	})

	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", f.store.regs[0].Email)
	assert.Equal(t, "Ana", f.store.regs[0].Name)
}

func TestRegister_DuplicateFailsBothTimes(t *testing.T) {
	f := newFixture(t, config.PolicyImmediate)
	ctx := context.Background()

	_, err := f.service.Register(ctx, anaInput())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := f.service.Register(ctx, RegisterInput{
			Name: "Outra", Email: "ana@x.com", Telegram: "@outra",
		})
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Email ou Telegram já cadastrado", appErr.UserMessage)
	}

	assert.Len(t, f.store.regs, 1)
}

func TestRegister_DuplicateTelegram(t *testing.T) {
	f := newFixture(t, config.PolicyImmediate)
	ctx := context.Background()

	_, err := f.service.Register(ctx, anaInput())
	require.NoError(t, err)

	_, err = f.service.Register(ctx, RegisterInput{
		Name: "Outra", Email: "outra@x.com", Telegram: "@ana",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Email ou Telegram já cadastrado", appErr.UserMessage)
}

func TestRegister_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input RegisterInput
		want  string
	}{
		{
			name:  "missing name",
			input: RegisterInput{Email: "ana@x.com", Telegram: "@ana"},
			want:  "Nome é obrigatório",
		},
		{
			name:  "bad email",
			input: RegisterInput{Name: "Ana", Email: "not-an-email", Telegram: "@ana"},
			want:  "Email inválido",
		},
		{
			name:  "telegram without at",
			input: RegisterInput{Name: "Ana", Email: "ana@x.com", Telegram: "ana"},
			want:  "Username Telegram deve começar com @",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, config.PolicyImmediate)

			_, err := f.service.Register(context.Background(), tt.input)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.want, appErr.UserMessage)
		})
	}
}

func TestRegister_EmailFailureIsSoft(t *testing.T) {
	f := newFixture(t, config.PolicyImmediate)
	f.mailer.Fail = errors.New("smtp down")

	result, err := f.service.Register(context.Background(), anaInput())

	require.NoError(t, err, "registration stands even when email fails")
	assert.False(t, result.EmailSent)
	assert.Len(t, f.store.regs, 1)
}

func TestRegister_SimplePolicyReturnsCode(t *testing.T) {
	f := newFixture(t, config.PolicySimple)

	result, err := f.service.Register(context.Background(), anaInput())

	require.NoError(t, err)
	assert.Len(t, result.AccessCode, 6)
	assert.Equal(t, f.store.regs[0].AccessCode, result.AccessCode)
	assert.Empty(t, f.queue.tasks, "simple policy schedules nothing")
}

func TestRegister_SchedulingIsIdempotent(t *testing.T) {
	f := newFixture(t, config.PolicyImmediate)
	ctx := context.Background()

	_, err := f.service.Register(ctx, anaInput())
	require.NoError(t, err)
	require.Len(t, f.queue.tasks, 1)

	// a second scheduling pass for the same registrant is absorbed by the
	// idempotency marker
	err = f.service.scheduleCodeEmail(ctx, f.store.regs[0])
	require.NoError(t, err)
	assert.Len(t, f.queue.tasks, 1)
}

func TestValidate_FlipsVerifiedExactlyOnce(t *testing.T) {
	f := newFixture(t, config.PolicyImmediate)
	ctx := context.Background()

	_, err := f.service.Register(ctx, anaInput())
	require.NoError(t, err)
	code := f.store.regs[0].AccessCode

	first, err := f.service.Validate(ctx, code)
	require.NoError(t, err)
	assert.True(t, first.IsVerified)
	assert.Equal(t, "Ana", first.User.Name)
	assert.True(t, f.store.regs[0].IsVerified)

	welcomeTasks := 0
	for _, task := range f.queue.tasks {
		if task.Type() == "email:welcome" {
			welcomeTasks++
		}
	}
	assert.Equal(t, 1, welcomeTasks)

	// repeat validation is a no-op read of the already-verified user
	second, err := f.service.Validate(ctx, code)
	require.NoError(t, err)
	assert.True(t, second.IsVerified)

	welcomeTasks = 0
	for _, task := range f.queue.tasks {
		if task.Type() == "email:welcome" {
			welcomeTasks++
		}
	}
	assert.Equal(t, 1, welcomeTasks, "no second welcome email")
}

func TestValidate_CaseInsensitive(t *testing.T) {
	f := newFixture(t, config.PolicyImmediate)
	ctx := context.Background()

	_, err := f.service.Register(ctx, anaInput())
	require.NoError(t, err)

	code := f.store.regs[0].AccessCode
	result, err := f.service.Validate(ctx, "  "+strings.ToLower(code)+" ")

	require.NoError(t, err)
	assert.True(t, result.IsVerified)
}

func TestValidate_UnknownCode(t *testing.T) {
	f := newFixture(t, config.PolicyImmediate)

	_, err := f.service.Validate(context.Background(), "FFFFFF")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Código de acesso inválido", appErr.UserMessage)
}

func TestValidate_EmptyCode(t *testing.T) {
	f := newFixture(t, config.PolicyImmediate)

	_, err := f.service.Validate(context.Background(), "   ")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
}

func TestStatus_DoesNotMutate(t *testing.T) {
	f := newFixture(t, config.PolicyImmediate)
	ctx := context.Background()

	_, err := f.service.Register(ctx, anaInput())
	require.NoError(t, err)
	code := f.store.regs[0].AccessCode

	status, err := f.service.Status(ctx, code)
	require.NoError(t, err)
	assert.False(t, status.IsVerified)
	assert.False(t, f.store.regs[0].IsVerified)

	_, err = f.service.Validate(ctx, code)
	require.NoError(t, err)

	status, err = f.service.Status(ctx, code)
	require.NoError(t, err)
	assert.True(t, status.IsVerified)
}
