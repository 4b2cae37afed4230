package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-chore-keeper/internal/logger"
)

const defaultSyncInterval = 5 * time.Minute

type clientSyncJob struct {
	syncService ClientSyncService
	reach       Reachability
	interval    time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewClientSyncJob creates a clientSyncJob that calls syncService.Drain on a
// ticker while reach reports the backend as reachable. interval is used by
// Run; Start takes its own. The job is idle until Start or Run is called.
func NewClientSyncJob(syncService ClientSyncService, reach Reachability, interval time.Duration, logger *logger.Logger) ClientSyncJob {
	return &clientSyncJob{
		syncService: syncService,
		reach:       reach,
		interval:    interval,
		logger:      logger,
	}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that drains the queue every interval. If
// interval is zero or negative it defaults to 5 minutes. The goroutine exits
// when ctx is cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

// Stop implements ClientSyncJob. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call when
// the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// Run starts the job with the configured interval and blocks until ctx is
// cancelled.
func (j *clientSyncJob) Run(ctx context.Context) {
	j.Start(ctx, j.interval)
	<-ctx.Done()
	j.Stop()
}

func (j *clientSyncJob) tick(ctx context.Context) {
	if j.reach != nil && !j.reach.Reachable() {
		return
	}

	if _, err := j.syncService.Drain(ctx); err != nil {
		j.logger.Err(err).Str("func", "clientSyncJob.tick").Msg("periodic drain failed")
	}
}
