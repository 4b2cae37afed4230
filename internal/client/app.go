package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-chore-keeper/internal/adapter"
	"github.com/MKhiriev/go-chore-keeper/internal/config"
	"github.com/MKhiriev/go-chore-keeper/internal/connectivity"
	"github.com/MKhiriev/go-chore-keeper/internal/handler"
	"github.com/MKhiriev/go-chore-keeper/internal/logger"
	"github.com/MKhiriev/go-chore-keeper/internal/server"
	"github.com/MKhiriev/go-chore-keeper/internal/service"
	"github.com/MKhiriev/go-chore-keeper/internal/session"
	"github.com/MKhiriev/go-chore-keeper/internal/store"
	"github.com/MKhiriev/go-chore-keeper/internal/workers"
	"github.com/MKhiriev/go-chore-keeper/models"
)

type App struct {
	storages *store.ClientStorages
	session  *session.Session
	monitor  *connectivity.Monitor
	services *service.ClientServices
	workers  *workers.Workers

	logger *logger.Logger
}

var _ Client = (*App)(nil)

// NewApp opens the local store and wires every component. The prober, the
// reconnect settler, the periodic sync job and, when an address is
// configured, the local API server run as workers.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, logger)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	sess := session.New(serverAdapter)
	if cfg.App.Token != "" {
		if err = sess.SetToken(cfg.App.Token); err != nil {
			// queued operations stay untouched until a valid session is set
			logger.Warn().Err(err).Msg("configured session token rejected")
		}
	}

	monitor := connectivity.NewMonitor()
	services := service.NewClientServices(storages, serverAdapter, sess, monitor, cfg, buildInfo, logger)

	background := []workers.Worker{
		connectivity.NewProber(serverAdapter, monitor, cfg.Adapter.ProbeInterval, cfg.Adapter.RequestTimeout, logger),
		connectivity.NewSettler(monitor, services.SyncService, cfg.Workers.SettleDelay, logger),
		services.SyncJob,
	}

	if cfg.Server.HTTPAddress != "" {
		handlers, err := handler.NewHandlers(services, sess, cfg, logger)
		if err != nil {
			storages.Close()
			return nil, fmt.Errorf("create handlers: %w", err)
		}

		srv, err := server.NewServer(handlers, cfg.Server, logger)
		if err != nil {
			storages.Close()
			return nil, fmt.Errorf("create server: %w", err)
		}
		background = append(background, srv)
	}

	return &App{
		storages: storages,
		session:  sess,
		monitor:  monitor,
		services: services,
		workers:  workers.NewWorkers(background...),
		logger:   logger,
	}, nil
}

// Services exposes the wired services to an embedding UI.
func (a *App) Services() *service.ClientServices {
	return a.services
}

// Session exposes the session so an embedding UI can sign in and out.
func (a *App) Session() *session.Session {
	return a.session
}

// Run blocks until ctx is cancelled, then waits for every worker and closes
// the local store.
func (a *App) Run(ctx context.Context) error {
	pending, err := a.services.CacheService.PendingCount(ctx)
	if err != nil {
		a.logger.Err(err).Msg("count pending changes")
	}
	a.logger.Info().Int64("pending", pending).Msg("client started")

	a.workers.Run(ctx)

	a.logger.Info().Str("connectivity", a.monitor.Current().String()).Msg("client stopped")

	if err = a.storages.Close(); err != nil {
		return fmt.Errorf("close local storage: %w", err)
	}
	return nil
}
