package connectivity

import (
	"context"
	"time"

	"github.com/MKhiriev/go-chore-keeper/internal/adapter"
	"github.com/MKhiriev/go-chore-keeper/internal/logger"
)

// Pinger is the health check used by [Prober].
type Pinger interface {
	Ping(ctx context.Context) error
}

// Prober periodically pings the backend and feeds the result into a
// [Monitor].
type Prober struct {
	pinger   Pinger
	monitor  *Monitor
	interval time.Duration
	timeout  time.Duration
	logger   *logger.Logger
}

// NewProber returns a prober checking every interval, bounding each ping by
// timeout.
func NewProber(pinger Pinger, monitor *Monitor, interval, timeout time.Duration, logger *logger.Logger) *Prober {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if timeout <= 0 || timeout > interval {
		timeout = interval
	}

	return &Prober{
		pinger:   pinger,
		monitor:  monitor,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

// Probe runs a single health check and records the result. Any answer from
// the backend, even a rejection, means it is reachable; only transport
// failures, timeouts and 5xx count as unreachable.
func (p *Prober) Probe(ctx context.Context) State {
	pingCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	state := Reachable
	if err := p.pinger.Ping(pingCtx); err != nil && adapter.IsTransient(err) {
		state = Unreachable
		p.logger.Debug().Err(err).Str("func", "Prober.Probe").Msg("backend unreachable")
	}

	if ctx.Err() != nil {
		// shutting down: don't publish a spurious transition
		return p.monitor.Current()
	}

	if prev := p.monitor.Current(); prev != state {
		p.logger.Info().Str("from", prev.String()).Str("to", state.String()).Msg("connectivity changed")
	}
	p.monitor.Set(state)

	return state
}

// Run probes immediately, so state is derived from a live check at process
// start, then every interval until ctx is cancelled.
func (p *Prober) Run(ctx context.Context) {
	p.Probe(ctx)

	t := time.NewTicker(p.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.Probe(ctx)
		}
	}
}
