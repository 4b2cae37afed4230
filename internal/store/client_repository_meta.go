package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chore-keeper/internal/logger"
)

type syncMetaRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSyncMetaRepository returns the SQL-backed [SyncMetaRepository].
func NewSyncMetaRepository(db *DB, logger *logger.Logger) SyncMetaRepository {
	return &syncMetaRepository{
		db:     db,
		logger: logger,
	}
}

func (m *syncMetaRepository) LastSyncAt(ctx context.Context) (time.Time, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := m.db.buildGetMetaQuery(metaKeyLastSyncAt)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "syncMetaRepository.LastSyncAt").Str("class", m.db.classify(err)).Msg("failed to query sync meta")
		return time.Time{}, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return time.Time{}, false, rows.Err()
	}

	var raw string
	if err = rows.Scan(&raw); err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		log.Err(err).Str("func", "syncMetaRepository.LastSyncAt").Str("value", raw).Msg("malformed last sync timestamp")
		return time.Time{}, false, nil
	}

	return t, true, nil
}

func (m *syncMetaRepository) SetLastSyncAt(ctx context.Context, t time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := m.db.buildSetMetaQuery(metaKeyLastSyncAt, t.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = m.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "syncMetaRepository.SetLastSyncAt").Str("class", m.db.classify(err)).Msg("failed to store last sync timestamp")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
