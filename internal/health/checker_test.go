package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCheck struct {
	err error
}

func (c staticCheck) HealthCheck(context.Context) error { return c.err }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChecker_AllPassing(t *testing.T) {
	checker := NewChecker(testLogger())
	checker.AddCheck("database", staticCheck{})
	checker.AddCheck("redis", staticCheck{})

	results := checker.Check(context.Background())

	assert.Equal(t, map[string]string{"database": "OK", "redis": "OK"}, results)
	assert.True(t, Healthy(results))
}

func TestChecker_ReportsFailures(t *testing.T) {
	checker := NewChecker(testLogger())
	checker.AddCheck("database", staticCheck{})
	checker.AddCheck("redis", staticCheck{err: errors.New("connection refused")})

	results := checker.Check(context.Background())

	assert.Equal(t, "OK", results["database"])
	assert.Equal(t, "connection refused", results["redis"])
	assert.False(t, Healthy(results))
}

func TestChecker_IgnoresInvalidRegistrations(t *testing.T) {
	checker := NewChecker(testLogger())
	checker.AddCheck("", staticCheck{})
	checker.AddCheck("nil", nil)

	results := checker.Check(context.Background())

	assert.Empty(t, results)
	assert.True(t, Healthy(results))
}

func TestRedisChecker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	checker := NewRedisChecker(client)
	require.NoError(t, checker.HealthCheck(context.Background()))

	mr.Close()
	assert.Error(t, checker.HealthCheck(context.Background()))
}
