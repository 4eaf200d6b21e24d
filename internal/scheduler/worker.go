package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	leadsservice "horsebox_backend/internal/leads/service"
	"horsebox_backend/platform/apperr"
	"horsebox_backend/platform/config"
	"horsebox_backend/platform/logger"
)

// Worker processes scheduled follow-up tasks.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	leads  *leadsservice.Service
	log    *logger.Logger
}

// NewWorker creates an asynq worker bound to the leads service.
func NewWorker(cfg config.SchedulerConfig, leads *leadsservice.Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		leads:  leads,
		log:    log,
	}

	mux.HandleFunc(TaskLeadFollowUp, w.handleLeadFollowUp)

	return w, nil
}

// handleLeadFollowUp sends the follow-up email. A lead deleted since
// scheduling is skipped rather than retried.
func (w *Worker) handleLeadFollowUp(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadFollowUpPayload(task)
	if err != nil {
		return err
	}

	if err := w.leads.SendFollowUp(ctx, payload.Reference); err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Kind == apperr.KindNotFound {
			w.log.Warn("follow-up skipped, lead gone", "reference", payload.Reference)
			return nil
		}
		return err
	}
	return nil
}

// Run blocks processing tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
