package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when a patch or delete targets a record
	// (collection, id) that is not in the local cache.
	ErrRecordNotFound = errors.New("cached record was not found")

	// ErrRecordExists is returned by InsertRecord when the (collection, id)
	// pair is already cached. The existing record is left unchanged.
	ErrRecordExists = errors.New("cached record already exists")

	// ErrRecordWithoutID is returned when a record without an "id" field is
	// written to the cache.
	ErrRecordWithoutID = errors.New("cached record has no id")

	// ErrUnsupportedDriver is returned by [NewClientStorages] for a driver
	// other than sqlite3 or pgx.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Low-level database operation errors. These are wrapped by repository
// methods when a SQL-level operation fails before any domain logic can be
// applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing a transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrEncodingRecord is returned when a record cannot be (un)marshalled
	// to or from its JSON column.
	ErrEncodingRecord = errors.New("failed to encode cached record")
)
