package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-chore-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// RecordCacheRepository holds the last known server snapshot of every
// collection plus optimistic local edits.
type RecordCacheRepository interface {
	// ReplaceCollection atomically swaps the whole collection for records.
	ReplaceCollection(ctx context.Context, c models.Collection, records []models.Record) error
	// ReadCollection returns the cached snapshot; empty when never populated.
	ReadCollection(ctx context.Context, c models.Collection) ([]models.Record, error)
	// PatchRecord merges fields into the cached record and returns the result.
	PatchRecord(ctx context.Context, c models.Collection, id string, fields models.Record) (models.Record, error)
	// InsertRecord adds a new record and fails with ErrRecordExists when the
	// id is already cached.
	InsertRecord(ctx context.Context, c models.Collection, record models.Record) error
	DeleteRecord(ctx context.Context, c models.Collection, id string) error
}

// SyncQueueRepository persists mutations awaiting replay, in enqueue order.
type SyncQueueRepository interface {
	Enqueue(ctx context.Context, op models.QueuedOperation) (models.QueuedOperation, error)
	ListQueue(ctx context.Context) ([]models.QueuedOperation, error)
	Dequeue(ctx context.Context, id int64) error
	ClearQueue(ctx context.Context) (int64, error)
	CountQueue(ctx context.Context) (int64, error)
}

// SyncMetaRepository stores scalar sync bookkeeping.
type SyncMetaRepository interface {
	// LastSyncAt reports the last successful refresh; ok is false if none.
	LastSyncAt(ctx context.Context) (t time.Time, ok bool, err error)
	SetLastSyncAt(ctx context.Context, t time.Time) error
}

// LocalStorage is the local durable store as seen by the service layer.
type LocalStorage interface {
	RecordCacheRepository
	SyncQueueRepository
	SyncMetaRepository
}
