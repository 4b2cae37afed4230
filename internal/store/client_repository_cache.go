package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-chore-keeper/internal/logger"
	"github.com/MKhiriev/go-chore-keeper/models"
)

// insertBatchSize bounds rows per INSERT so SQLite stays under its bound
// parameter limit.
const insertBatchSize = 200

type recordRow struct {
	id       string
	familyID string
	data     string
}

func newRecordRow(r models.Record) (recordRow, error) {
	id := r.ID()
	if id == "" {
		return recordRow{}, ErrRecordWithoutID
	}

	data, err := json.Marshal(r)
	if err != nil {
		return recordRow{}, fmt.Errorf("%w: %w", ErrEncodingRecord, err)
	}

	return recordRow{id: id, familyID: r.FamilyID(), data: string(data)}, nil
}

func decodeRecord(data string) (models.Record, error) {
	var r models.Record
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingRecord, err)
	}
	if r == nil {
		r = models.Record{}
	}
	return r, nil
}

type recordCacheRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewRecordCacheRepository returns the SQL-backed [RecordCacheRepository].
func NewRecordCacheRepository(db *DB, logger *logger.Logger) RecordCacheRepository {
	return &recordCacheRepository{
		db:     db,
		logger: logger,
	}
}

func (r *recordCacheRepository) ReplaceCollection(ctx context.Context, c models.Collection, records []models.Record) error {
	log := logger.FromContext(ctx)

	rows := make([]recordRow, 0, len(records))
	for _, rec := range records {
		row, err := newRecordRow(rec)
		if err != nil {
			log.Err(err).Str("func", "recordCacheRepository.ReplaceCollection").Str("collection", string(c)).Msg("invalid record in server snapshot")
			return err
		}
		rows = append(rows, row)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "recordCacheRepository.ReplaceCollection").Str("class", r.db.classify(err)).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer rollback(tx)

	query, args, err := r.db.buildDeleteCollectionQuery(c)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "recordCacheRepository.ReplaceCollection").Str("collection", string(c)).Str("class", r.db.classify(err)).Msg("failed to clear collection")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	at := r.db.now()
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))

		query, args, err = r.db.buildInsertRecordsQuery(c, rows[start:end], at)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "recordCacheRepository.ReplaceCollection").Str("collection", string(c)).Str("class", r.db.classify(err)).Msg("failed to insert collection snapshot")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "recordCacheRepository.ReplaceCollection").Str("class", r.db.classify(err)).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Debug().Str("collection", string(c)).Int("records", len(rows)).Msg("collection replaced")
	return nil
}

func (r *recordCacheRepository) ReadCollection(ctx context.Context, c models.Collection) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildSelectCollectionQuery(c)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "recordCacheRepository.ReadCollection").Str("collection", string(c)).Str("class", r.db.classify(err)).Msg("failed to query collection")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		var data string
		if err = rows.Scan(&data); err != nil {
			log.Err(err).Str("func", "recordCacheRepository.ReadCollection").Msg("failed to scan cached record")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		rec, err := decodeRecord(data)
		if err != nil {
			log.Err(err).Str("func", "recordCacheRepository.ReadCollection").Msg("failed to decode cached record")
			return nil, err
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "recordCacheRepository.ReadCollection").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return records, nil
}

func (r *recordCacheRepository) PatchRecord(ctx context.Context, c models.Collection, id string, fields models.Record) (models.Record, error) {
	log := logger.FromContext(ctx).With().Str("collection", string(c)).Str("id", id).Logger()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "recordCacheRepository.PatchRecord").Str("class", r.db.classify(err)).Msg("failed to begin transaction")
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer rollback(tx)

	query, args, err := r.db.buildSelectRecordQuery(c, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var data string
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		log.Err(err).Str("func", "recordCacheRepository.PatchRecord").Str("class", r.db.classify(err)).Msg("failed to load cached record")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	merged, err := decodeRecord(data)
	if err != nil {
		return nil, err
	}

	// top-level fields replace wholesale; nested values are opaque
	for k, v := range fields {
		if k == models.FieldID {
			continue
		}
		merged[k] = v
	}
	merged[models.FieldID] = id

	row, err := newRecordRow(merged)
	if err != nil {
		return nil, err
	}

	query, args, err = r.db.buildUpdateRecordQuery(c, row, r.db.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "recordCacheRepository.PatchRecord").Str("class", r.db.classify(err)).Msg("failed to write patched record")
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "recordCacheRepository.PatchRecord").Str("class", r.db.classify(err)).Msg("failed to commit transaction")
		return nil, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return merged, nil
}

func (r *recordCacheRepository) InsertRecord(ctx context.Context, c models.Collection, record models.Record) error {
	log := logger.FromContext(ctx)

	row, err := newRecordRow(record)
	if err != nil {
		return err
	}

	query, args, err := r.db.buildInsertRecordQuery(c, row, r.db.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordCacheRepository.InsertRecord").
			Str("collection", string(c)).
			Str("id", row.id).
			Str("class", r.db.classify(err)).
			Msg("failed to insert cached record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s/%s", ErrRecordExists, c, row.id)
	}

	return nil
}

func (r *recordCacheRepository) DeleteRecord(ctx context.Context, c models.Collection, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildDeleteRecordQuery(c, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordCacheRepository.DeleteRecord").
			Str("collection", string(c)).
			Str("id", id).
			Str("class", r.db.classify(err)).
			Msg("failed to delete cached record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
