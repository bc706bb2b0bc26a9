package scheduler

import (
	"context"
	"fmt"
	"time"

	"booking_portal_backend/platform/config"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Client enqueues background tasks on the asynq queue.
type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	opt, err := redisClientOpt(cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  cfg.GetAsynqQueueName(),
	}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// ScheduleDraftExpiry enqueues a sweep for the draft session that fires after
// the session's TTL has elapsed.
func (c *Client) ScheduleDraftExpiry(ctx context.Context, draftID uuid.UUID, delay time.Duration) error {
	task, err := NewDraftExpiryTask(DraftExpiryPayload{DraftID: draftID.String()})
	if err != nil {
		return fmt.Errorf("build draft expiry task: %w", err)
	}

	if _, err := c.client.EnqueueContext(ctx, task, asynq.ProcessIn(delay), asynq.Queue(c.queue)); err != nil {
		return fmt.Errorf("enqueue draft expiry: %w", err)
	}
	return nil
}

func redisClientOpt(cfg config.SchedulerConfig) (asynq.RedisClientOpt, error) {
	parsed, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("parse redis url: %w", err)
	}

	return asynq.RedisClientOpt{
		Addr:      parsed.Addr,
		Password:  parsed.Password,
		DB:        parsed.DB,
		TLSConfig: parsed.TLSConfig,
	}, nil
}
