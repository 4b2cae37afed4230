package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-chore-keeper/models"
)

const (
	tableCachedRecords = "cached_records"
	tableSyncQueue     = "sync_queue"
	tableSyncMeta      = "sync_meta"

	metaKeyLastSyncAt = "last_sync_at"
)

// Conflict suffixes are understood by both SQLite (3.24+) and PostgreSQL.
const (
	insertRecordSuffix = "ON CONFLICT (collection, id) DO NOTHING"
	upsertMetaSuffix   = "ON CONFLICT (key) DO UPDATE SET value = excluded.value"
)

func (db *DB) buildDeleteCollectionQuery(c models.Collection) (string, []any, error) {
	return db.builder.
		Delete(tableCachedRecords).
		Where(sq.Eq{"collection": string(c)}).
		ToSql()
}

// buildInsertRecordsQuery inserts rows in one statement; the caller ensures
// rows is non-empty.
func (db *DB) buildInsertRecordsQuery(c models.Collection, rows []recordRow, at time.Time) (string, []any, error) {
	q := db.builder.
		Insert(tableCachedRecords).
		Columns("collection", "id", "family_id", "data", "updated_at")
	for _, r := range rows {
		q = q.Values(string(c), r.id, r.familyID, r.data, at)
	}

	return q.ToSql()
}

// buildInsertRecordQuery leaves an existing (collection, id) row untouched;
// the caller detects that through RowsAffected.
func (db *DB) buildInsertRecordQuery(c models.Collection, r recordRow, at time.Time) (string, []any, error) {
	return db.builder.
		Insert(tableCachedRecords).
		Columns("collection", "id", "family_id", "data", "updated_at").
		Values(string(c), r.id, r.familyID, r.data, at).
		Suffix(insertRecordSuffix).
		ToSql()
}

func (db *DB) buildSelectCollectionQuery(c models.Collection) (string, []any, error) {
	return db.builder.
		Select("data").
		From(tableCachedRecords).
		Where(sq.Eq{"collection": string(c)}).
		OrderBy("updated_at", "id").
		ToSql()
}

func (db *DB) buildSelectRecordQuery(c models.Collection, id string) (string, []any, error) {
	return db.builder.
		Select("data").
		From(tableCachedRecords).
		Where(sq.Eq{"collection": string(c), "id": id}).
		ToSql()
}

func (db *DB) buildUpdateRecordQuery(c models.Collection, r recordRow, at time.Time) (string, []any, error) {
	return db.builder.
		Update(tableCachedRecords).
		Set("family_id", r.familyID).
		Set("data", r.data).
		Set("updated_at", at).
		Where(sq.Eq{"collection": string(c), "id": r.id}).
		ToSql()
}

func (db *DB) buildDeleteRecordQuery(c models.Collection, id string) (string, []any, error) {
	return db.builder.
		Delete(tableCachedRecords).
		Where(sq.Eq{"collection": string(c), "id": id}).
		ToSql()
}

func (db *DB) buildEnqueueQuery(opType models.OperationType, payload string, at time.Time) (string, []any, error) {
	return db.builder.
		Insert(tableSyncQueue).
		Columns("type", "payload", "enqueued_at").
		Values(string(opType), payload, at).
		Suffix("RETURNING id").
		ToSql()
}

func (db *DB) buildListQueueQuery() (string, []any, error) {
	return db.builder.
		Select("id", "type", "payload", "enqueued_at").
		From(tableSyncQueue).
		OrderBy("id").
		ToSql()
}

func (db *DB) buildDequeueQuery(id int64) (string, []any, error) {
	return db.builder.
		Delete(tableSyncQueue).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func (db *DB) buildClearQueueQuery() (string, []any, error) {
	return db.builder.Delete(tableSyncQueue).ToSql()
}

func (db *DB) buildCountQueueQuery() (string, []any, error) {
	return db.builder.
		Select("COUNT(*)").
		From(tableSyncQueue).
		ToSql()
}

func (db *DB) buildGetMetaQuery(key string) (string, []any, error) {
	return db.builder.
		Select("value").
		From(tableSyncMeta).
		Where(sq.Eq{"key": key}).
		ToSql()
}

func (db *DB) buildSetMetaQuery(key, value string) (string, []any, error) {
	return db.builder.
		Insert(tableSyncMeta).
		Columns("key", "value").
		Values(key, value).
		Suffix(upsertMetaSuffix).
		ToSql()
}
