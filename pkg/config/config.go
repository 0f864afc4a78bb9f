package config

import (
	"fmt"
	"time"
)

// Config holds runtime configuration for the DeFaiLabz MVP backend.
type Config struct {
	AppEnv string `mapstructure:"app_env"`

	HTTP   HTTPConfig   `mapstructure:"http" validate:"required"`
	DB     DBConfig     `mapstructure:"db" validate:"required"`
	Redis  RedisConfig  `mapstructure:"redis" validate:"required"`
	Email  EmailConfig  `mapstructure:"email" validate:"required"`
	Launch LaunchConfig `mapstructure:"launch" validate:"required"`
	Admin  AdminConfig  `mapstructure:"admin"`
	Logger LoggerConfig `mapstructure:"logger"`
	Sentry SentryConfig `mapstructure:"sentry"`
	Market MarketConfig `mapstructure:"market"`
}

type HTTPConfig struct {
	Port            string        `mapstructure:"port" validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DBConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     string `mapstructure:"port" validate:"required"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
	Name     string `mapstructure:"name" validate:"required"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN returns the PostgreSQL connection string based on config values.
func (c DBConfig) DSN() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslmode,
	)
}

type RedisConfig struct {
	Addr         string        `mapstructure:"addr" validate:"required"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	PoolTimeout  time.Duration `mapstructure:"pool_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// EmailPolicy selects how access codes reach registrants.
type EmailPolicy string

const (
	// PolicyImmediate sends the confirmation synchronously and defers the
	// access code to the launch-date broadcast.
	PolicyImmediate EmailPolicy = "immediate"
	// PolicySimple sends only the confirmation; the access code is returned
	// directly in the register response. Weaker gating, kept as an alternate
	// revision of the product.
	PolicySimple EmailPolicy = "simple"
)

type EmailConfig struct {
	Policy   EmailPolicy `mapstructure:"policy" validate:"required,oneof=immediate simple"`
	Host     string      `mapstructure:"host" validate:"required"`
	Port     int         `mapstructure:"port" validate:"required"`
	Username string      `mapstructure:"username" validate:"required"`
	Password string      `mapstructure:"password"`
	From     string      `mapstructure:"from" validate:"required,email"`
	FromName string      `mapstructure:"from_name"`
}

// LaunchConfig fixes the single wall-clock moment at which all pending
// access codes are broadcast. Injected, never a compiled literal.
type LaunchConfig struct {
	Date time.Time `mapstructure:"date" validate:"required"`
}

type AdminConfig struct {
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"` // "json" or "text"
	FilePath string `mapstructure:"file_path"`
	MaxSize  int    `mapstructure:"max_size"` // megabytes, lumberjack
	MaxAge   int    `mapstructure:"max_age"`  // days
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type MarketConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}
