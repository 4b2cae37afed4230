package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-chore-keeper/internal/config"
	"github.com/MKhiriev/go-chore-keeper/internal/logger"
)

// ClientStorages groups the repositories of the local durable store. It
// implements [LocalStorage] by embedding them.
type ClientStorages struct {
	RecordCacheRepository
	SyncQueueRepository
	SyncMetaRepository

	db *DB
}

var _ LocalStorage = (*ClientStorages)(nil)

// NewClientStorages opens the configured database, applies pending
// migrations and wires the repositories.
//
// cfg.DB.Driver selects the backend: "sqlite3" (a local file, the default)
// or "pgx" (a PostgreSQL database shared by household devices).
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Str("driver", cfg.DB.Driver).Msg("creating new storages...")

	var (
		db  *DB
		err error
	)
	switch cfg.DB.Driver {
	case DriverSQLite, "":
		db, err = NewConnectSQLite(ctx, cfg.DB, logger)
	case DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.DB.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newClientStorages(db, logger), nil
}

func newClientStorages(db *DB, logger *logger.Logger) *ClientStorages {
	return &ClientStorages{
		RecordCacheRepository: NewRecordCacheRepository(db, logger),
		SyncQueueRepository:   NewSyncQueueRepository(db, logger),
		SyncMetaRepository:    NewSyncMetaRepository(db, logger),
		db:                    db,
	}
}

// Close releases the underlying database connection.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
