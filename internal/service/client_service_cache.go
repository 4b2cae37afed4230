// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chore-keeper/internal/adapter"
	"github.com/MKhiriev/go-chore-keeper/internal/logger"
	"github.com/MKhiriev/go-chore-keeper/internal/store"
	"github.com/MKhiriev/go-chore-keeper/models"
)

// IDGenerator issues identifiers for records created offline.
type IDGenerator interface {
	Generate() string
}

type clientCacheService struct {
	storage     store.RecordCacheRepository
	queue       SyncQueue
	syncService ClientSyncService
	adapter     adapter.ServerAdapter
	scope       ScopeProvider
	reach       Reachability
	ids         IDGenerator

	requestTimeout time.Duration

	logger *logger.Logger
}

func NewClientCacheService(
	storage store.RecordCacheRepository,
	queue SyncQueue,
	syncService ClientSyncService,
	serverAdapter adapter.ServerAdapter,
	scope ScopeProvider,
	reach Reachability,
	ids IDGenerator,
	requestTimeout time.Duration,
	logger *logger.Logger,
) ClientCacheService {
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return &clientCacheService{
		storage:        storage,
		queue:          queue,
		syncService:    syncService,
		adapter:        serverAdapter,
		scope:          scope,
		reach:          reach,
		ids:            ids,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

// Read serves the server snapshot while reachable and refreshes the cache
// with it. A failed fetch, or no connectivity, serves the cached snapshot.
func (s *clientCacheService) Read(ctx context.Context, c models.Collection) ([]models.Record, error) {
	if s.reach.Reachable() {
		records, err := s.list(ctx, c)
		if err == nil {
			if err = s.storage.ReplaceCollection(ctx, c, records); err != nil {
				s.logger.Err(err).Str("collection", string(c)).Msg("refresh cache after read")
			}
			return records, nil
		}
		s.logger.Warn().Err(err).Str("collection", string(c)).Msg("remote read failed, serving cache")
	}

	records, err := s.storage.ReadCollection(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("read cached %s: %w", c, err)
	}
	return records, nil
}

// Write goes to the backend while reachable, otherwise it is applied to the
// cache and queued. It never does both.
func (s *clientCacheService) Write(ctx context.Context, c models.Collection, verb models.Verb, payload models.Record) (models.WriteResult, error) {
	if _, err := models.ParseVerb(string(verb)); err != nil {
		return models.WriteResult{}, err
	}
	if payload == nil {
		return models.WriteResult{}, ErrInvalidDataProvided
	}
	if verb != models.VerbCreate && payload.ID() == "" {
		return models.WriteResult{}, ErrRecordIDRequired
	}

	record, err := s.scoped(payload)
	if err != nil {
		return models.WriteResult{}, err
	}

	if s.reach.Reachable() {
		return s.writeRemote(ctx, c, verb, record)
	}
	return s.writeLocal(ctx, c, verb, record)
}

// scoped returns a copy of payload stamped with the session family id.
func (s *clientCacheService) scoped(payload models.Record) (models.Record, error) {
	family, err := s.scope.Scope()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoSession, err)
	}

	record := payload.Clone()
	switch current := record.FamilyID(); current {
	case "":
		record[models.FieldFamilyID] = family
	case family:
	default:
		return nil, ErrScopeMismatch
	}

	return record, nil
}

func (s *clientCacheService) writeRemote(ctx context.Context, c models.Collection, verb models.Verb, record models.Record) (models.WriteResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	var (
		stored models.Record
		err    error
	)
	switch verb {
	case models.VerbCreate:
		stored, err = s.adapter.Create(callCtx, c, record)
	case models.VerbUpdate:
		stored, err = s.adapter.Update(callCtx, c, record.ID(), record)
	case models.VerbDelete:
		err = s.adapter.Delete(callCtx, c, record.ID())
	}
	if err != nil {
		return models.WriteResult{}, mapAdapterError(err)
	}

	return models.WriteResult{Record: stored}, nil
}

func (s *clientCacheService) writeLocal(ctx context.Context, c models.Collection, verb models.Verb, record models.Record) (models.WriteResult, error) {
	var (
		optimistic models.Record
		queued     models.Record
	)

	switch verb {
	case models.VerbCreate:
		if record.ID() == "" {
			record[models.FieldID] = s.ids.Generate()
		}
		if err := s.storage.InsertRecord(ctx, c, record); err != nil {
			return models.WriteResult{}, fmt.Errorf("insert local %s: %w", c, err)
		}
		optimistic, queued = record, record

	case models.VerbUpdate:
		merged, err := s.storage.PatchRecord(ctx, c, record.ID(), record)
		if err != nil {
			return models.WriteResult{}, fmt.Errorf("patch local %s: %w", c, err)
		}
		// the full merged snapshot is replayed, not the delta
		optimistic, queued = merged, merged

	case models.VerbDelete:
		if err := s.storage.DeleteRecord(ctx, c, record.ID()); err != nil {
			return models.WriteResult{}, fmt.Errorf("delete local %s: %w", c, err)
		}
		queued = models.Record{
			models.FieldID:       record.ID(),
			models.FieldFamilyID: record.FamilyID(),
		}
	}

	op, err := s.queue.Add(ctx, models.NewOperationType(c, verb), queued)
	if err != nil {
		return models.WriteResult{}, err
	}

	s.logger.Debug().
		Int64("op_id", op.ID).
		Str("op_type", string(op.Type)).
		Str("record_id", queued.ID()).
		Msg("offline write queued")

	return models.WriteResult{Record: optimistic, Queued: true, OperationID: op.ID}, nil
}

func (s *clientCacheService) list(ctx context.Context, c models.Collection) ([]models.Record, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	records, err := s.adapter.List(callCtx, c)
	if err != nil {
		return nil, mapAdapterError(err)
	}
	return records, nil
}

func (s *clientCacheService) PendingCount(ctx context.Context) (int64, error) {
	return s.queue.Count(ctx)
}

func (s *clientCacheService) SyncNow(ctx context.Context) (models.SyncSummary, error) {
	return s.syncService.Drain(ctx)
}

// ClearQueue discards every pending mutation. Optimistic local edits stay in
// the cache until the next refresh replaces them.
func (s *clientCacheService) ClearQueue(ctx context.Context) (int64, error) {
	n, err := s.queue.Clear(ctx)
	if err != nil {
		return 0, err
	}

	s.logger.Warn().Int64("discarded", n).Msg("sync queue cleared")
	return n, nil
}
