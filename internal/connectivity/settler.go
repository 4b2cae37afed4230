package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-chore-keeper/internal/logger"
	"github.com/MKhiriev/go-chore-keeper/models"
)

// Drainer replays the sync queue.
type Drainer interface {
	Drain(ctx context.Context) (models.SyncSummary, error)
}

// Settler triggers a drain once connectivity has stayed reachable for the
// settle delay. Flapping back to unreachable before the delay elapses
// cancels the pending drain.
type Settler struct {
	monitor *Monitor
	drainer Drainer
	delay   time.Duration
	logger  *logger.Logger

	mu    sync.Mutex
	timer *time.Timer
	ctx   context.Context
}

// NewSettler returns a settler for monitor. A negative delay is treated as
// zero.
func NewSettler(monitor *Monitor, drainer Drainer, delay time.Duration, logger *logger.Logger) *Settler {
	return &Settler{
		monitor: monitor,
		drainer: drainer,
		delay:   max(delay, 0),
		logger:  logger,
	}
}

// Run subscribes to the monitor and blocks until ctx is cancelled. A drain
// armed at cancellation time is dropped.
func (s *Settler) Run(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	unsubscribe := s.monitor.Subscribe(s.onChange)
	defer unsubscribe()

	// the first probe may have landed before the subscription
	if s.monitor.Reachable() {
		s.arm()
	}

	<-ctx.Done()
	s.disarm()
}

func (s *Settler) onChange(state State) {
	if state == Reachable {
		s.arm()
		return
	}
	s.disarm()
}

func (s *Settler) arm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx == nil || s.ctx.Err() != nil {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}

	ctx := s.ctx
	var timer *time.Timer
	timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		current := s.timer == timer
		if current {
			s.timer = nil
		}
		s.mu.Unlock()

		if !current || ctx.Err() != nil || !s.monitor.Reachable() {
			return
		}
		s.fire(ctx)
	})
	s.timer = timer

	s.logger.Debug().Dur("delay", s.delay).Msg("reconnect drain armed")
}

func (s *Settler) disarm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
		s.logger.Debug().Msg("reconnect drain cancelled")
	}
}

func (s *Settler) fire(ctx context.Context) {
	summary, err := s.drainer.Drain(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "Settler.fire").Msg("reconnect drain failed")
		return
	}
	if summary.Skipped {
		s.logger.Debug().Msg("reconnect drain skipped, another drain in progress")
	}
}
