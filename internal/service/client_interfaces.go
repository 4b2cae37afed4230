// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the offline-first synchronization logic of the
// chore-keeper client: the sync queue manager, the reconciliation engine
// that drains the queue against the backend, and the data cache facade the
// UI talks to.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-chore-keeper/models"
)

// ScopeProvider yields the family identifier of the current session.
type ScopeProvider interface {
	Scope() (string, error)
}

// Reachability reports the last known connectivity state of the backend.
type Reachability interface {
	Reachable() bool
}

// SyncQueue is a thin accessor over the durable queue of pending mutations.
type SyncQueue interface {
	// Add appends a mutation and returns it with its sequence id assigned.
	Add(ctx context.Context, opType models.OperationType, payload models.Record) (models.QueuedOperation, error)

	// List returns all pending mutations in enqueue order.
	List(ctx context.Context) ([]models.QueuedOperation, error)

	// Remove deletes a mutation by id. Removing an absent id is a no-op.
	Remove(ctx context.Context, id int64) error

	// Count returns the number of pending mutations. It is served from
	// memory after the first call.
	Count(ctx context.Context) (int64, error)

	// Clear drops every pending mutation and reports how many were removed.
	Clear(ctx context.Context) (int64, error)
}

// ClientSyncService is the reconciliation engine.
type ClientSyncService interface {
	// Drain attempts every queued mutation once, in FIFO order. Per-operation
	// failures are summarised, never returned. A call made while another
	// drain is running returns immediately with Skipped set.
	Drain(ctx context.Context) (models.SyncSummary, error)

	// RefreshAll replaces every cached collection with the server snapshot.
	RefreshAll(ctx context.Context) error

	// Status reports the pending count, connectivity and the last refresh.
	Status(ctx context.Context) (models.SyncStatus, error)
}

// ClientCacheService is the data cache facade: the only entry point the UI
// uses for reads and writes.
type ClientCacheService interface {
	Read(ctx context.Context, c models.Collection) ([]models.Record, error)
	Write(ctx context.Context, c models.Collection, verb models.Verb, payload models.Record) (models.WriteResult, error)
	PendingCount(ctx context.Context) (int64, error)
	SyncNow(ctx context.Context) (models.SyncSummary, error)
	ClearQueue(ctx context.Context) (int64, error)
}

// Notifier receives one aggregate notification per drain cycle.
type Notifier interface {
	SyncFinished(ctx context.Context, summary models.SyncSummary)
}

// ClientSyncJob drains the queue periodically while the backend is
// reachable.
type ClientSyncJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
	Run(ctx context.Context)
}

// AppInfoService exposes build metadata.
type AppInfoService interface {
	GetAppBuildInfo(ctx context.Context) models.AppBuildInfo
}
