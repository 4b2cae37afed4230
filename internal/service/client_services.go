package service

import (
	"github.com/MKhiriev/go-chore-keeper/internal/adapter"
	"github.com/MKhiriev/go-chore-keeper/internal/config"
	"github.com/MKhiriev/go-chore-keeper/internal/logger"
	"github.com/MKhiriev/go-chore-keeper/internal/store"
	"github.com/MKhiriev/go-chore-keeper/internal/utils"
	"github.com/MKhiriev/go-chore-keeper/models"
)

type ClientServices struct {
	SyncQueue      SyncQueue
	SyncService    ClientSyncService
	CacheService   ClientCacheService
	SyncJob        ClientSyncJob
	AppInfoService AppInfoService
}

func NewClientServices(
	localStore store.LocalStorage,
	serverAdapter adapter.ServerAdapter,
	scope ScopeProvider,
	reach Reachability,
	cfg *config.ClientConfig,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) *ClientServices {
	queue := NewSyncQueue(localStore)

	syncSvc := NewClientSyncService(localStore, queue, serverAdapter, scope, reach, NewLogNotifier(logger), SyncSettings{
		RequestTimeout:  cfg.Adapter.RequestTimeout,
		RetentionWindow: cfg.Workers.RetentionWindow,
	}, logger)

	cacheSvc := NewClientCacheService(localStore, queue, syncSvc, serverAdapter, scope, reach,
		utils.NewUUIDGenerator(), cfg.Adapter.RequestTimeout, logger)

	return &ClientServices{
		SyncQueue:      queue,
		SyncService:    syncSvc,
		CacheService:   cacheSvc,
		SyncJob:        NewClientSyncJob(syncSvc, reach, cfg.Workers.SyncInterval, logger),
		AppInfoService: NewAppInfoService(buildInfo, logger),
	}
}
