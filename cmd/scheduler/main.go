package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"horsebox_backend/internal/email"
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
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	eventBus := events.NewInMemoryBus(log)

	var notifier leadsservice.Notifier
	if cfg.GetEmailEnabled() {
		notifier = email.NewSMTPSender(cfg)
	} else {
		log.Warn("email not configured; follow-up emails will be skipped")
	}

	val := validator.New()

	// Worker-side lead service wiring (no HTTP handlers required). The
	// scheduler port stays nil here so processing a task never re-enqueues.
	leadsModule := leads.NewModule(pool, eventBus, notifier, nil, cfg, val, log)

	// Follow-up deliveries publish events; the notification module records
	// them in the sales activity log.
	notification.NewModule(notifier, log).RegisterHandlers(eventBus)

	worker, err := scheduler.NewWorker(cfg, leadsModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
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
