package queue

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dyluth/hackathon/pkg/event"
	"github.com/redis/go-redis/v9"
)

// DefaultBlockTimeout bounds a single BLPOP so that Receive notices context
// cancellation. Redis does not accept blocking timeouts below one second.
const DefaultBlockTimeout = time.Second

// Redis is a Queue backed by a Redis list scoped to one run.
// Send is RPUSH and Receive is BLPOP, so delivery is FIFO across the list.
// The client is thread-safe and can be shared by every goroutine of a run.
type Redis struct {
	rdb          *redis.Client
	runID        string
	key          string
	BlockTimeout time.Duration

	closed atomic.Bool
}

// NewRedis creates a queue on the Redis server described by redisOpts.
// All keys are namespaced with runID, which must not be empty.
func NewRedis(redisOpts *redis.Options, runID string) (*Redis, error) {
	if runID == "" {
		return nil, fmt.Errorf("run ID cannot be empty")
	}

	return &Redis{
		rdb:          redis.NewClient(redisOpts),
		runID:        runID,
		key:          event.EventsKey(runID),
		BlockTimeout: DefaultBlockTimeout,
	}, nil
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// RunID returns the run the queue is scoped to.
func (r *Redis) RunID() string {
	return r.runID
}

// Send appends the JSON form of ev to the run's event list.
func (r *Redis) Send(ctx context.Context, ev event.Event) error {
	if r.closed.Load() {
		return ErrClosed
	}

	data, err := event.Marshal(ev)
	if err != nil {
		return err
	}

	if err := r.rdb.RPush(ctx, r.key, data).Err(); err != nil {
		return fmt.Errorf("failed to push event to Redis: %w", err)
	}
	return nil
}

// Receive pops the oldest event from the run's list, blocking in
// BlockTimeout windows until one arrives or ctx is done.
func (r *Redis) Receive(ctx context.Context) (event.Event, error) {
	for {
		if r.closed.Load() {
			return event.Event{}, ErrClosed
		}
		if err := ctx.Err(); err != nil {
			return event.Event{}, err
		}

		res, err := r.rdb.BLPop(ctx, r.BlockTimeout, r.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return event.Event{}, ctxErr
			}
			return event.Event{}, fmt.Errorf("failed to pop event from Redis: %w", err)
		}

		// BLPOP replies with [key, value]
		if len(res) != 2 {
			return event.Event{}, fmt.Errorf("unexpected BLPOP reply of length %d", len(res))
		}
		return event.Unmarshal([]byte(res[1]))
	}
}

// Len returns the number of events currently in the run's list.
func (r *Redis) Len(ctx context.Context) (int64, error) {
	n, err := r.rdb.LLen(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read queue length: %w", err)
	}
	return n, nil
}

// Abandon closes the Redis connection without deleting the run's list, for
// a queue that turned out to belong to someone else.
func (r *Redis) Abandon() error {
	if r.closed.Swap(true) {
		return nil
	}
	return r.rdb.Close()
}

// Close deletes the run's list and closes the Redis connection.
// After Close the queue must not be used.
func (r *Redis) Close() error {
	if r.closed.Swap(true) {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	delErr := r.rdb.Del(ctx, r.key).Err()
	if err := r.rdb.Close(); err != nil {
		return err
	}
	if delErr != nil {
		return fmt.Errorf("failed to delete event list: %w", delErr)
	}
	return nil
}
