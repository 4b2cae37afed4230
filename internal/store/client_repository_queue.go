package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-chore-keeper/internal/logger"
	"github.com/MKhiriev/go-chore-keeper/models"
)

type syncQueueRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSyncQueueRepository returns the SQL-backed [SyncQueueRepository].
func NewSyncQueueRepository(db *DB, logger *logger.Logger) SyncQueueRepository {
	return &syncQueueRepository{
		db:     db,
		logger: logger,
	}
}

// Enqueue persists op and returns it with the assigned sequence ID. A zero
// EnqueuedAt is stamped with the current time.
func (q *syncQueueRepository) Enqueue(ctx context.Context, op models.QueuedOperation) (models.QueuedOperation, error) {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(op.Payload)
	if err != nil {
		return models.QueuedOperation{}, fmt.Errorf("%w: %w", ErrEncodingRecord, err)
	}

	if op.EnqueuedAt.IsZero() {
		op.EnqueuedAt = q.db.now()
	}

	query, args, err := q.db.buildEnqueueQuery(op.Type, string(payload), op.EnqueuedAt)
	if err != nil {
		return models.QueuedOperation{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = q.db.QueryRowContext(ctx, query, args...).Scan(&op.ID); err != nil {
		log.Err(err).
			Str("func", "syncQueueRepository.Enqueue").
			Str("type", string(op.Type)).
			Str("class", q.db.classify(err)).
			Msg("failed to enqueue operation")
		return models.QueuedOperation{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return op, nil
}

// ListQueue returns every queued operation in enqueue order.
func (q *syncQueueRepository) ListQueue(ctx context.Context) ([]models.QueuedOperation, error) {
	log := logger.FromContext(ctx)

	query, args, err := q.db.buildListQueueQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "syncQueueRepository.ListQueue").Str("class", q.db.classify(err)).Msg("failed to query sync queue")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ops := make([]models.QueuedOperation, 0)
	for rows.Next() {
		var (
			op      models.QueuedOperation
			opType  string
			payload string
		)
		if err = rows.Scan(&op.ID, &opType, &payload, &op.EnqueuedAt); err != nil {
			log.Err(err).Str("func", "syncQueueRepository.ListQueue").Msg("failed to scan queued operation")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		op.Type = models.OperationType(opType)
		if op.Payload, err = decodeRecord(payload); err != nil {
			// keep the row so the drain can evict it instead of wedging the queue
			log.Err(err).Str("func", "syncQueueRepository.ListQueue").Int64("op_id", op.ID).Msg("undecodable queued payload")
			op.Payload = models.Record{}
		}
		ops = append(ops, op)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "syncQueueRepository.ListQueue").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return ops, nil
}

// Dequeue removes the operation with id. Removing an absent id is a no-op.
func (q *syncQueueRepository) Dequeue(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := q.db.buildDequeueQuery(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = q.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "syncQueueRepository.Dequeue").Int64("op_id", id).Str("class", q.db.classify(err)).Msg("failed to dequeue operation")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ClearQueue drops every queued operation and reports how many were removed.
func (q *syncQueueRepository) ClearQueue(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := q.db.buildClearQueueQuery()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "syncQueueRepository.ClearQueue").Str("class", q.db.classify(err)).Msg("failed to clear sync queue")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return res.RowsAffected()
}

func (q *syncQueueRepository) CountQueue(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := q.db.buildCountQueueQuery()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int64
	if err = q.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		log.Err(err).Str("func", "syncQueueRepository.CountQueue").Str("class", q.db.classify(err)).Msg("failed to count sync queue")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return n, nil
}
