// Package health aggregates readiness checks for the backing services.
package health

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// checkTimeout caps each individual probe so one hung dependency cannot
// stall the whole health response.
const checkTimeout = 2 * time.Second

// Checkable is a component that can report whether it is reachable.
type Checkable interface {
	HealthCheck(ctx context.Context) error
}

// Checker fans a health request out to every registered component.
type Checker struct {
	log    *slog.Logger
	checks map[string]Checkable
}

// NewChecker constructs an empty Checker.
func NewChecker(log *slog.Logger) *Checker {
	return &Checker{
		log:    log,
		checks: make(map[string]Checkable),
	}
}

// AddCheck registers a component by name. Empty names and nil checks are
// ignored.
func (c *Checker) AddCheck(name string, check Checkable) {
	if name == "" || check == nil {
		return
	}
	c.checks[name] = check
}

// Check probes every component and returns "OK" or the failure text per name.
func (c *Checker) Check(ctx context.Context) map[string]string {
	results := make(map[string]string, len(c.checks))

	for name, check := range c.checks {
		probeCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := check.HealthCheck(probeCtx)
		cancel()

		if err != nil {
			results[name] = err.Error()
			if c.log != nil {
				c.log.Error("health check failed",
					slog.String("component", name),
					slog.Any("error", err),
				)
			}
			continue
		}

		results[name] = "OK"
	}

	return results
}

// Healthy reports whether every check passed.
func Healthy(results map[string]string) bool {
	for _, status := range results {
		if status != "OK" {
			return false
		}
	}
	return true
}

// DBChecker probes the PostgreSQL connection.
type DBChecker struct {
	db *sql.DB
}

// NewDBChecker constructs a DBChecker.
func NewDBChecker(db *sql.DB) *DBChecker {
	return &DBChecker{db: db}
}

func (c *DBChecker) HealthCheck(ctx context.Context) error {
	if c == nil || c.db == nil {
		return sql.ErrConnDone
	}
	return c.db.PingContext(ctx)
}

// Pinger is the subset of redis.Client the checker needs.
type Pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// RedisChecker probes the Redis connection.
type RedisChecker struct {
	pinger Pinger
}

// NewRedisChecker constructs a RedisChecker.
func NewRedisChecker(pinger Pinger) *RedisChecker {
	return &RedisChecker{pinger: pinger}
}

func (c *RedisChecker) HealthCheck(ctx context.Context) error {
	if c == nil || c.pinger == nil {
		return redis.ErrClosed
	}
	return c.pinger.Ping(ctx).Err()
}
