// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-chore-keeper/internal/adapter"
	"github.com/MKhiriev/go-chore-keeper/internal/logger"
	"github.com/MKhiriev/go-chore-keeper/internal/store"
	"github.com/MKhiriev/go-chore-keeper/models"
)

const (
	defaultRetentionWindow = 7 * 24 * time.Hour
	defaultRequestTimeout  = 15 * time.Second
)

// SyncSettings are the tunables of the reconciliation engine.
type SyncSettings struct {
	// RequestTimeout bounds each remote call. Expiry is a retryable failure
	// of that one operation.
	RequestTimeout time.Duration
	// RetentionWindow is how long a failing operation stays queued.
	RetentionWindow time.Duration
}

type clientSyncService struct {
	storage  store.LocalStorage
	queue    SyncQueue
	adapter  adapter.ServerAdapter
	scope    ScopeProvider
	reach    Reachability
	notifier Notifier

	requestTimeout  time.Duration
	retentionWindow time.Duration
	now             func() time.Time

	running atomic.Bool

	logger *logger.Logger
}

func NewClientSyncService(
	storage store.LocalStorage,
	queue SyncQueue,
	serverAdapter adapter.ServerAdapter,
	scope ScopeProvider,
	reach Reachability,
	notifier Notifier,
	settings SyncSettings,
	logger *logger.Logger,
) ClientSyncService {
	return newClientSyncService(storage, queue, serverAdapter, scope, reach, notifier, settings, logger)
}

func newClientSyncService(
	storage store.LocalStorage,
	queue SyncQueue,
	serverAdapter adapter.ServerAdapter,
	scope ScopeProvider,
	reach Reachability,
	notifier Notifier,
	settings SyncSettings,
	logger *logger.Logger,
) *clientSyncService {
	if settings.RequestTimeout <= 0 {
		settings.RequestTimeout = defaultRequestTimeout
	}
	if settings.RetentionWindow <= 0 {
		settings.RetentionWindow = defaultRetentionWindow
	}
	if notifier == nil {
		notifier = NewLogNotifier(logger)
	}

	return &clientSyncService{
		storage:         storage,
		queue:           queue,
		adapter:         serverAdapter,
		scope:           scope,
		reach:           reach,
		notifier:        notifier,
		requestTimeout:  settings.RequestTimeout,
		retentionWindow: settings.RetentionWindow,
		now:             time.Now,
		logger:          logger,
	}
}

func (s *clientSyncService) Drain(ctx context.Context) (models.SyncSummary, error) {
	// must be taken before the first store or remote call
	if !s.running.CompareAndSwap(false, true) {
		return models.SyncSummary{Skipped: true}, nil
	}
	defer s.running.Store(false)

	summary := models.SyncSummary{StartedAt: s.now()}

	scope, err := s.scope.Scope()
	if err != nil {
		s.logger.Warn().Err(err).Msg("drain skipped: no session scope")
		summary.FinishedAt = s.now()
		return summary, nil
	}

	ops, err := s.queue.List(ctx)
	if err != nil {
		return summary, fmt.Errorf("drain: %w", err)
	}

	for _, op := range ops {
		if ctx.Err() != nil {
			s.logger.Info().Int("left", len(ops)-summary.Attempted()).Msg("drain interrupted, remaining operations stay queued")
			break
		}
		s.apply(ctx, scope, op, &summary)
	}

	if summary.SuccessCount > 0 {
		if err = s.RefreshAll(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("cache refresh after drain failed")
		}
	}

	summary.FinishedAt = s.now()

	if summary.Attempted() > 0 {
		s.notifier.SyncFinished(ctx, summary)
	}

	return summary, nil
}

// apply processes one queued operation. It never returns an error: every
// outcome is recorded in summary and the batch continues.
func (s *clientSyncService) apply(ctx context.Context, scope string, op models.QueuedOperation, summary *models.SyncSummary) {
	log := s.logger.With().Int64("op_id", op.ID).Str("op_type", string(op.Type)).Logger()

	c, verb, ok := op.Type.Target()
	if !ok {
		log.Error().Msg("unknown operation type, dropping")
		s.remove(ctx, op.ID, &summary.Dropped)
		return
	}

	if family := op.Payload.FamilyID(); family != scope {
		log.Warn().Str("op_family", family).Msg("operation belongs to another family, dropping")
		s.remove(ctx, op.ID, &summary.Dropped)
		return
	}

	err := s.send(ctx, c, verb, op.Payload)
	if err == nil {
		s.remove(ctx, op.ID, &summary.SuccessCount)
		return
	}

	summary.FailCount++

	if age := op.Age(s.now()); age > s.retentionWindow {
		log.Warn().Err(err).Dur("age", age).Msg("operation exceeded retention window, evicting")
		if rmErr := s.queue.Remove(ctx, op.ID); rmErr != nil {
			log.Err(rmErr).Msg("evicting stale operation")
		}
		return
	}

	log.Info().Err(err).Bool("transient", adapter.IsTransient(err)).Msg("operation failed, kept for next drain")
}

// remove dequeues an operation and bumps counter. A dequeue failure is only
// logged: the operation replays on the next drain and every replay is a
// full-record write.
func (s *clientSyncService) remove(ctx context.Context, id int64, counter *int) {
	*counter++
	if err := s.queue.Remove(ctx, id); err != nil {
		s.logger.Err(err).Int64("op_id", id).Msg("dequeue after processing")
	}
}

func (s *clientSyncService) send(ctx context.Context, c models.Collection, verb models.Verb, payload models.Record) error {
	callCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	var err error
	switch verb {
	case models.VerbCreate:
		_, err = s.adapter.Create(callCtx, c, payload)
	case models.VerbUpdate:
		_, err = s.adapter.Update(callCtx, c, payload.ID(), payload)
	case models.VerbDelete:
		err = s.adapter.Delete(callCtx, c, payload.ID())
		// already gone on the server
		if errors.Is(err, adapter.ErrNotFound) {
			err = nil
		}
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedOperation, verb)
	}

	return err
}

func (s *clientSyncService) RefreshAll(ctx context.Context) error {
	var errs []error
	for _, c := range models.AllCollections() {
		if err := s.refresh(ctx, c); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if err := s.storage.SetLastSyncAt(ctx, s.now()); err != nil {
		return fmt.Errorf("store last sync time: %w", err)
	}
	return nil
}

func (s *clientSyncService) refresh(ctx context.Context, c models.Collection) error {
	records, err := s.list(ctx, c)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", c, err)
	}

	if err = s.storage.ReplaceCollection(ctx, c, records); err != nil {
		return fmt.Errorf("replace %s: %w", c, err)
	}
	return nil
}

func (s *clientSyncService) list(ctx context.Context, c models.Collection) ([]models.Record, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	return s.adapter.List(callCtx, c)
}

func (s *clientSyncService) Status(ctx context.Context) (models.SyncStatus, error) {
	pending, err := s.queue.Count(ctx)
	if err != nil {
		return models.SyncStatus{}, err
	}

	status := models.SyncStatus{
		InProgress: s.running.Load(),
		Reachable:  s.reach.Reachable(),
		Pending:    pending,
	}

	last, ok, err := s.storage.LastSyncAt(ctx)
	if err != nil {
		return models.SyncStatus{}, fmt.Errorf("read last sync time: %w", err)
	}
	if ok {
		status.LastSyncAt = &last
	}

	return status, nil
}
