// Package scheduler enqueues and processes delayed lead follow-ups on asynq.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	leadsservice "horsebox_backend/internal/leads/service"
	"horsebox_backend/platform/config"
)

// Client enqueues follow-up tasks.
type Client struct {
	client *asynq.Client
	queue  string
	delay  time.Duration
}

// NewClient creates an asynq client from the scheduler configuration.
func NewClient(cfg config.SchedulerConfig) (*Client, error) {
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

	delay := cfg.GetFollowUpDelay()
	if delay <= 0 {
		delay = 24 * time.Hour
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
		delay:  delay,
	}, nil
}

// Compile-time check that Client implements the leads scheduler port.
var _ leadsservice.FollowUpScheduler = (*Client)(nil)

// Close releases the underlying asynq client.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ScheduleFollowUp enqueues the delayed follow-up for a lead.
func (c *Client) ScheduleFollowUp(ctx context.Context, reference string) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewLeadFollowUpTask(LeadFollowUpPayload{Reference: reference})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.ProcessIn(c.delay), asynq.Queue(c.queue))
	return err
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
