package hackathon

import (
	"context"
	"fmt"

	"github.com/dyluth/hackathon/internal/config"
	"github.com/dyluth/hackathon/internal/queue"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// OpenQueue creates the queue backend selected by cfg. For the Redis backend
// an empty cfg.RunID is filled with a fresh UUID, connectivity is checked and
// a run ID whose event list is not empty is refused.
func OpenQueue(ctx context.Context, cfg *config.RunConfig) (queue.Queue, error) {
	switch cfg.Queue {
	case "", config.QueueMemory:
		return queue.NewMemory(), nil

	case config.QueueRedis:
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis_url: %w", err)
		}

		if cfg.RunID == "" {
			cfg.RunID = uuid.New().String()
		}

		q, err := queue.NewRedis(redisOpts, cfg.RunID)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis queue: %w", err)
		}

		if err := q.Ping(ctx); err != nil {
			q.Close()
			return nil, fmt.Errorf("redis not accessible: %w", err)
		}

		// Events left by an earlier run with the same ID would corrupt this one
		pending, err := q.Len(ctx)
		if err != nil {
			q.Abandon()
			return nil, err
		}
		if pending > 0 {
			q.Abandon()
			return nil, fmt.Errorf("run ID %q already has %d pending events", cfg.RunID, pending)
		}
		return q, nil

	default:
		return nil, fmt.Errorf("unknown queue backend: %s", cfg.Queue)
	}
}
