package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-chore-keeper/internal/store"
	"github.com/MKhiriev/go-chore-keeper/models"
)

type syncQueue struct {
	repo store.SyncQueueRepository

	mu     sync.Mutex
	primed bool
	count  int64
	// gen is bumped by every Add and Remove, so List and Clear can tell
	// whether their snapshot is still current.
	gen uint64
}

func NewSyncQueue(repo store.SyncQueueRepository) SyncQueue {
	return &syncQueue{repo: repo}
}

func (q *syncQueue) Add(ctx context.Context, opType models.OperationType, payload models.Record) (models.QueuedOperation, error) {
	op, err := q.repo.Enqueue(ctx, models.QueuedOperation{Type: opType, Payload: payload})
	if err != nil {
		return models.QueuedOperation{}, fmt.Errorf("enqueue %s: %w", opType, err)
	}

	q.adjust(1)
	return op, nil
}

func (q *syncQueue) List(ctx context.Context) ([]models.QueuedOperation, error) {
	start := q.generation()

	ops, err := q.repo.ListQueue(ctx)
	if err != nil {
		return nil, fmt.Errorf("list queue: %w", err)
	}

	q.settle(start, int64(len(ops)))
	return ops, nil
}

func (q *syncQueue) Remove(ctx context.Context, id int64) error {
	if err := q.repo.Dequeue(ctx, id); err != nil {
		return fmt.Errorf("dequeue %d: %w", id, err)
	}

	q.adjust(-1)
	return nil
}

func (q *syncQueue) Count(ctx context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.primed {
		return q.count, nil
	}

	n, err := q.repo.CountQueue(ctx)
	if err != nil {
		return 0, fmt.Errorf("count queue: %w", err)
	}
	q.count = n
	q.primed = true

	return n, nil
}

func (q *syncQueue) Clear(ctx context.Context) (int64, error) {
	start := q.generation()

	n, err := q.repo.ClearQueue(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear queue: %w", err)
	}

	q.settle(start, 0)
	return n, nil
}

func (q *syncQueue) generation() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.gen
}

// settle stores n as the queue length observed by a store call that began
// at generation start. When an Add or Remove landed in between, n may
// already be stale, so the next Count goes back to the store instead.
func (q *syncQueue) settle(start uint64, n int64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.gen != start {
		q.primed = false
		return
	}
	q.count = n
	q.primed = true
}

// adjust keeps the cached count in step once it has been primed. Before
// that the next Count reads the store anyway.
func (q *syncQueue) adjust(delta int64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.gen++
	if !q.primed {
		return
	}
	q.count += delta
	if q.count < 0 {
		q.count = 0
	}
}
