// Package worker implements the computation worker of §4.7: a
// background loop that drains a queue of activities whose caches went
// stale and recomputes their possible beginnings and insertion costs.
package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/adrienmarchand/schedcore/internal/scheduling/collection"
	"github.com/adrienmarchand/schedcore/internal/scheduling/domain"
)

// ErrQueueClosed is returned by Dequeue once the queue has been closed and
// drained.
var ErrQueueClosed = errors.New("schedcore: queue closed")

// Queue is the recomputation work queue a Worker drains. The collection
// calls Enqueue every time it invalidates an activity's cache;
// InProcessQueue is the default single-process implementation, queue_redis.go
// provides a distributed alternative for a multi-process front-end.
type Queue interface {
	collection.Notifier
	Dequeue(ctx context.Context) (domain.ActivityID, error)
	Close() error
}

// InProcessQueue is a deduplicating, unbounded FIFO: an activity already
// waiting to be recomputed does not get a second slot (§4.7: "an
// activity already queued does not need to be queued twice").
type InProcessQueue struct {
	mu      sync.Mutex
	pending map[domain.ActivityID]struct{}
	order   []domain.ActivityID
	signal  chan struct{}
	closed  bool
}

// NewInProcessQueue creates an empty in-process queue.
func NewInProcessQueue() *InProcessQueue {
	return &InProcessQueue{
		pending: make(map[domain.ActivityID]struct{}),
		signal:  make(chan struct{}, 1),
	}
}

// Enqueue adds id to the queue unless it is already waiting.
func (q *InProcessQueue) Enqueue(id domain.ActivityID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	if _, already := q.pending[id]; already {
		return
	}
	q.pending[id] = struct{}{}
	q.order = append(q.order, id)
	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Dequeue blocks until an id is available, ctx is cancelled, or the queue is
// closed and empty.
func (q *InProcessQueue) Dequeue(ctx context.Context) (domain.ActivityID, error) {
	for {
		q.mu.Lock()
		if len(q.order) > 0 {
			id := q.order[0]
			q.order = q.order[1:]
			delete(q.pending, id)
			q.mu.Unlock()
			return id, nil
		}
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return 0, ErrQueueClosed
		}

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-q.signal:
		}
	}
}

// Close stops the queue; any blocked Dequeue returns ErrQueueClosed once
// drained.
func (q *InProcessQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	select {
	case q.signal <- struct{}{}:
	default:
	}
	return nil
}
