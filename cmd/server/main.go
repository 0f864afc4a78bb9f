package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"

	"github.com/defailabz/mvp-backend/internal/admin"
	"github.com/defailabz/mvp-backend/internal/analysis"
	"github.com/defailabz/mvp-backend/internal/api"
	"github.com/defailabz/mvp-backend/internal/database"
	"github.com/defailabz/mvp-backend/internal/dex"
	"github.com/defailabz/mvp-backend/internal/email"
	apperrors "github.com/defailabz/mvp-backend/internal/errors"
	"github.com/defailabz/mvp-backend/internal/health"
	"github.com/defailabz/mvp-backend/internal/idempotency"
	"github.com/defailabz/mvp-backend/internal/jobs"
	"github.com/defailabz/mvp-backend/internal/jobs/handlers"
	"github.com/defailabz/mvp-backend/internal/marketdata"
	"github.com/defailabz/mvp-backend/internal/registration"
	"github.com/defailabz/mvp-backend/internal/repository"
	"github.com/defailabz/mvp-backend/pkg/config"
	"github.com/defailabz/mvp-backend/pkg/graceful"
	"github.com/defailabz/mvp-backend/pkg/logger"
	pkgredis "github.com/defailabz/mvp-backend/pkg/redis"

	_ "github.com/lib/pq"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, v, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(*cfg)
	slog.SetDefault(log)

	log.Info("starting defailabz backend",
		slog.String("env", cfg.AppEnv),
		slog.String("http_port", cfg.HTTP.Port),
		slog.String("email_policy", string(cfg.Email.Policy)),
		slog.Time("launch_date", cfg.Launch.Date),
	)

	if cfg.Sentry.Enabled {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			TracesSampleRate: cfg.Sentry.SampleRate,
		})
		if err != nil {
			log.Error("failed to init sentry", slog.Any("error", err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	config.Watch(v, log, func(updated *config.Config) {
		log.Info("configuration reloaded", slog.String("env", updated.AppEnv))
	})

	db, err := sql.Open("postgres", cfg.DB.DSN())
	if err != nil {
		log.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Error("failed to ping database", slog.Any("error", err))
		os.Exit(1)
	}

	migrator := database.NewMigrator(db, log)
	if err := migrator.ApplyDir(ctx, "migrations"); err != nil {
		log.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}

	redisClient, err := pkgredis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer redisClient.Close()

	metricsRedis := pkgredis.NewMetricsClient(redisClient)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	queue := jobs.NewManager(redisOpt, log)
	defer queue.Close()

	mailer := email.NewSMTPMailer(cfg.Email, log)

	worker := jobs.NewWorker(redisOpt, map[string]int{
		jobs.QueueCritical: 6,
		jobs.QueueDefault:  3,
		jobs.QueueLow:      1,
	}, log)
	worker.RegisterHandler(jobs.TaskTypeAccessCodeEmail, handlers.NewCodeEmailHandler(mailer, log))
	worker.RegisterHandler(jobs.TaskTypeWelcomeEmail, handlers.NewWelcomeEmailHandler(mailer, log))

	go func() {
		if err := worker.Run(); err != nil {
			log.Error("job worker stopped", slog.Any("error", err))
		}
	}()
	defer worker.Shutdown()

	store := repository.NewRegistrationStore(db, log)
	guard := idempotency.NewGuard(metricsRedis, "code_email", 0, log)

	registrations := registration.NewService(
		store, mailer, queue, guard, log, cfg.Email.Policy, cfg.Launch.Date,
	)

	dexService := dex.NewService(dex.NewRedisStore(redisClient.Client, log), log)
	adminService := admin.NewService(cfg.Admin, metricsRedis, log)
	market := marketdata.NewClient(cfg.Market.BaseURL, cfg.Market.Timeout, log)
	engine := analysis.NewEngine()

	checker := health.NewChecker(log)
	checker.AddCheck("database", health.NewDBChecker(db))
	checker.AddCheck("redis", health.NewRedisChecker(redisClient.Client))

	errHandler := apperrors.NewHandler(log, cfg.Sentry.Enabled)

	server := api.NewServer(
		registrations, dexService, engine, market, adminService, checker, errHandler, log,
	)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      server.Routes(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	if err := graceful.NewServer(log, httpServer, cfg.HTTP.ShutdownTimeout).ListenAndServe(ctx); err != nil {
		log.Error("http server exited", slog.Any("error", err))
	}

	log.Info("defailabz backend stopped")
}
