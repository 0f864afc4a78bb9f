package idempotency

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryKV struct {
	keys     map[string]bool
	setNXErr error
}

func (m *memoryKV) SetNX(_ context.Context, key string, _ interface{}, _ time.Duration) (bool, error) {
	if m.setNXErr != nil {
		return false, m.setNXErr
	}
	if m.keys == nil {
		m.keys = map[string]bool{}
	}
	if m.keys[key] {
		return false, nil
	}
	m.keys[key] = true
	return true, nil
}

func (m *memoryKV) Delete(_ context.Context, key string) error {
	delete(m.keys, key)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGuard_FirstAcquireWins(t *testing.T) {
	guard := NewGuard(&memoryKV{}, "code_email", 0, testLogger())
	ctx := context.Background()

	first, err := guard.Acquire(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.True(t, first)

	second, err := guard.Acquire(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.False(t, second)
}

func TestGuard_KeysAreIndependent(t *testing.T) {
	guard := NewGuard(&memoryKV{}, "code_email", 0, testLogger())
	ctx := context.Background()

	first, err := guard.Acquire(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.True(t, first)

	other, err := guard.Acquire(ctx, "bob@x.com")
	require.NoError(t, err)
	assert.True(t, other)
}

func TestGuard_ReleaseAllowsReacquire(t *testing.T) {
	guard := NewGuard(&memoryKV{}, "code_email", 0, testLogger())
	ctx := context.Background()

	_, err := guard.Acquire(ctx, "ana@x.com")
	require.NoError(t, err)

	require.NoError(t, guard.Release(ctx, "ana@x.com"))

	again, err := guard.Acquire(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.True(t, again)
}

func TestGuard_PrefixesIsolate(t *testing.T) {
	kv := &memoryKV{}
	ctx := context.Background()

	codeGuard := NewGuard(kv, "code_email", 0, testLogger())
	otherGuard := NewGuard(kv, "welcome_email", 0, testLogger())

	first, err := codeGuard.Acquire(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.True(t, first)

	other, err := otherGuard.Acquire(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.True(t, other, "different prefixes never collide")
}

func TestGuard_PropagatesStorageError(t *testing.T) {
	guard := NewGuard(&memoryKV{setNXErr: errors.New("redis down")}, "code_email", 0, testLogger())

	_, err := guard.Acquire(context.Background(), "ana@x.com")

	require.Error(t, err)
}
