package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"horsebox_backend/internal/adapters/leadcapture"
	"horsebox_backend/internal/catalog"
	"horsebox_backend/internal/configurator"
	"horsebox_backend/internal/configurator/domain"
	"horsebox_backend/internal/configurator/store"
	"horsebox_backend/internal/email"
	apphttp "horsebox_backend/internal/http"
	"horsebox_backend/internal/http/router"
	"horsebox_backend/internal/leads"
	leadsservice "horsebox_backend/internal/leads/service"
	"horsebox_backend/internal/notification"
	"horsebox_backend/internal/scheduler"
	"horsebox_backend/platform/config"
	"horsebox_backend/platform/db"
	"horsebox_backend/platform/events"
	"horsebox_backend/platform/logger"
	"horsebox_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	var redisClient *redis.Client
	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		client, err := store.NewClient(cfg.GetRedisURL())
		if err != nil {
			return err
		}
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return err
		}
		redisClient = client
		return nil
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("redis connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	followUpScheduler, closeScheduler := initFollowUpScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	var notifier leadsservice.Notifier
	if cfg.GetEmailEnabled() {
		notifier = email.NewSMTPSender(cfg)
		log.Info("email notifications enabled", "host", cfg.GetSMTPHost())
	} else {
		log.Warn("email not configured; lead notifications disabled")
	}

	pkg, err := domain.LoadPackageDefinition(cfg.GetPackageFile())
	if err != nil {
		log.Error("failed to load package definition", "error", err, "file", cfg.GetPackageFile())
		panic("failed to load package definition: " + err.Error())
	}
	log.Info("package definition loaded", "package", pkg.Slug, "file", cfg.GetPackageFile())

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	sessionStore := store.New(redisClient, cfg.GetSessionTTL())

	catalogModule := catalog.NewModule(pool, val, log)
	leadsModule := leads.NewModule(pool, eventBus, notifier, followUpScheduler, cfg, val, log)

	// Sales notifications are event-driven: the leads module publishes
	// lead.created and the notification module sends the email.
	notificationModule := notification.NewModule(notifier, log)
	notificationModule.RegisterHandlers(eventBus)

	// Anti-Corruption Layer: the configurator submits leads through its own
	// port rather than depending on the leads module directly.
	leadSubmitter := leadcapture.New(leadsModule.Service())
	configuratorModule := configurator.NewModule(sessionStore, catalogModule.Service(), leadSubmitter, pkg, cfg, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: db.NewPoolAdapter(pool),
		Modules: []apphttp.Module{
			catalogModule,
			configuratorModule,
			leadsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initFollowUpScheduler(cfg config.SchedulerConfig, log *logger.Logger) (leadsservice.FollowUpScheduler, func()) {
	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Warn("follow-up scheduler disabled", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
