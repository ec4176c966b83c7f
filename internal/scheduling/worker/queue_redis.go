package worker

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/adrienmarchand/schedcore/internal/scheduling/domain"
)

// RedisQueue is a distributed alternative to InProcessQueue, letting more
// than one control-thread process share a single recomputation queue
// (§3). It uses a Redis list for FIFO ordering and a companion set
// for the same "already queued" dedup InProcessQueue gives for free.
type RedisQueue struct {
	client  *redis.Client
	listKey string
	setKey  string
}

// NewRedisQueue creates a RedisQueue namespaced under keyPrefix (so more than
// one engine instance can share a Redis server without colliding).
func NewRedisQueue(client *redis.Client, keyPrefix string) *RedisQueue {
	return &RedisQueue{
		client:  client,
		listKey: keyPrefix + ":queue",
		setKey:  keyPrefix + ":queue:pending",
	}
}

// Enqueue pushes id unless it is already pending. Enqueue intentionally
// swallows Redis errors (logging is the caller's job via an outer decorator)
// rather than blocking the control thread that triggered an invalidation.
func (q *RedisQueue) Enqueue(id domain.ActivityID) {
	ctx := context.Background()
	member := strconv.Itoa(int(id))
	added, err := q.client.SAdd(ctx, q.setKey, member).Result()
	if err != nil || added == 0 {
		return
	}
	q.client.LPush(ctx, q.listKey, member)
}

// Dequeue blocks (via BRPOP) until an id is available or ctx is cancelled.
func (q *RedisQueue) Dequeue(ctx context.Context) (domain.ActivityID, error) {
	result, err := q.client.BRPop(ctx, 0, q.listKey).Result()
	if err != nil {
		return 0, fmt.Errorf("schedcore: redis queue dequeue: %w", err)
	}
	if len(result) != 2 {
		return 0, fmt.Errorf("schedcore: unexpected BRPOP reply shape")
	}
	n, err := strconv.Atoi(result[1])
	if err != nil {
		return 0, fmt.Errorf("schedcore: malformed queue entry %q: %w", result[1], err)
	}
	id := domain.ActivityID(n)
	q.client.SRem(ctx, q.setKey, result[1])
	return id, nil
}

// Close releases nothing on the client side; the caller owns the *redis.Client.
func (q *RedisQueue) Close() error { return nil }
