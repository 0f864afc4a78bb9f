// Package idempotency guards one-shot operations against duplicate execution.
package idempotency

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// KV is the subset of the redis client the guard needs.
type KV interface {
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

// Guard marks operations as performed using SETNX. Registration scheduling
// uses it so invoking the code-email scheduling twice for the same person
// enqueues exactly one task.
type Guard struct {
	kv     KV
	prefix string
	ttl    time.Duration
	log    *slog.Logger
}

// NewGuard constructs a Guard. A zero ttl means the marker never expires.
func NewGuard(kv KV, prefix string, ttl time.Duration, log *slog.Logger) *Guard {
	if log == nil {
		log = slog.Default()
	}

	return &Guard{
		kv:     kv,
		prefix: prefix,
		ttl:    ttl,
		log:    log,
	}
}

// Acquire reports true when the caller is first to claim key.
func (g *Guard) Acquire(ctx context.Context, key string) (bool, error) {
	acquired, err := g.kv.SetNX(ctx, g.storageKey(key), 1, g.ttl)
	if err != nil {
		g.log.Error("failed to acquire idempotency marker", slog.String("key", key), slog.Any("error", err))
		return false, err
	}

	return acquired, nil
}

// Release removes the marker, allowing a retry after a failed operation.
func (g *Guard) Release(ctx context.Context, key string) error {
	if err := g.kv.Delete(ctx, g.storageKey(key)); err != nil {
		g.log.Error("failed to release idempotency marker", slog.String("key", key), slog.Any("error", err))
		return err
	}

	return nil
}

func (g *Guard) storageKey(key string) string {
	return fmt.Sprintf("idempotency:%s:%s", g.prefix, key)
}
