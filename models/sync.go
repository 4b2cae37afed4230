package models

import "time"

// SyncSummary is the aggregate outcome of one drain cycle.
type SyncSummary struct {
	// SuccessCount is the number of operations confirmed by the backend.
	SuccessCount int `json:"success_count"`

	// FailCount is the number of operations that failed remotely during
	// this cycle, including the ones evicted for being stale.
	FailCount int `json:"fail_count"`

	// Dropped is the number of operations removed without a remote call
	// (family scope mismatch or unknown operation type).
	Dropped int `json:"dropped"`

	// Skipped is true when the call found another drain already running and
	// returned without touching the queue.
	Skipped bool `json:"skipped"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Attempted reports whether any queued operation was processed.
func (s SyncSummary) Attempted() int {
	return s.SuccessCount + s.FailCount + s.Dropped
}

// SyncStatus backs the UI indicators ("N changes pending", "syncing…").
type SyncStatus struct {
	InProgress bool       `json:"in_progress"`
	Reachable  bool       `json:"reachable"`
	Pending    int64      `json:"pending"`
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
}

// WriteResult is what the cache facade returns for a mutation.
type WriteResult struct {
	// Record is the server version when the write went online, or the
	// optimistic local version when it was queued. It is nil for deletes.
	Record Record `json:"record,omitempty"`

	// Queued is true when the mutation was applied locally and queued.
	Queued bool `json:"queued"`

	// OperationID is the queue sequence id of a queued mutation.
	OperationID int64 `json:"operation_id,omitempty"`
}
