// Package admin implements the minimal dashboard login.
package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	apperrors "github.com/defailabz/mvp-backend/internal/errors"
	"github.com/defailabz/mvp-backend/pkg/config"
)

const defaultTokenTTL = 12 * time.Hour

// KV is the subset of the redis client the session store needs.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Service checks admin credentials and manages opaque session tokens.
type Service struct {
	cfg config.AdminConfig
	kv  KV
	log *slog.Logger
}

// NewService constructs a Service.
func NewService(cfg config.AdminConfig, kv KV, log *slog.Logger) *Service {
	return &Service{cfg: cfg, kv: kv, log: log}
}

// Login verifies the configured credentials and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if s.cfg.Username == "" {
		return "", apperrors.NewUnauthorizedError()
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) == 1
	if !userOK || !passOK {
		if s.log != nil {
			s.log.Warn("admin login rejected", slog.String("username", username))
		}
		return "", apperrors.NewUnauthorizedError()
	}

	token := uuid.NewString()
	ttl := s.cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	if err := s.kv.Set(ctx, tokenKey(token), s.cfg.Username, ttl); err != nil {
		return "", apperrors.NewDatabaseError(err)
	}

	if s.log != nil {
		s.log.Info("admin logged in", slog.String("username", username))
	}

	return token, nil
}

// ValidateToken reports whether the token names a live admin session.
func (s *Service) ValidateToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	_, err := s.kv.Get(ctx, tokenKey(token))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, apperrors.NewDatabaseError(err)
	}

	return true, nil
}

// Logout revokes the session token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.kv.Delete(ctx, tokenKey(token)); err != nil {
		return apperrors.NewDatabaseError(err)
	}

	return nil
}

func tokenKey(token string) string {
	return "admin:token:" + token
}
