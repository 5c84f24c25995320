package sqliteengine

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect import
	"github.com/jmoiron/sqlx"

	"github.com/liblend/library-ledger-go/recordstore"
	"github.com/liblend/library-ledger-go/recordstore/sqliteengine/internal/adapters"
)

const (
	defaultTableName = "documents"

	logMsgBuildSelectQueryFailed = "failed to build select query"
	logMsgBuildUpsertQueryFailed = "failed to build upsert query"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgDBExecFailed           = "database execution failed during document save"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgCreateSchemaFailed     = "failed to create documents table"
	logMsgDocumentLoaded         = "document loaded"
	logMsgDocumentSaved          = "document saved"
	logMsgDocumentNotFound       = "no document stored for key"
	logAttrKey                   = "key"
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrPayloadBytes          = "payload_bytes"
	logAttrDurationMS            = "duration_ms"

	colKey     = "key"
	colPayload = "payload"

	dialectSQLite = "sqlite3"
)

// Store is a document store backed by a local SQLite database file.
// It leverages a database adapter and supports customizable logging,
// metrics, tracing, and table configuration.
type Store struct {
	db        adapters.DBAdapter
	dialect   goqu.DialectWrapper
	tableName string
	observability
}

// NewStoreFromSQLX creates a new Store using an sqlx connection with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, recordstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

// NewStoreFromSQLDB creates a new Store using a database/sql connection with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, recordstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

func newStore(adapter adapters.DBAdapter, options ...Option) (Store, error) {
	store := Store{
		db:        adapter,
		dialect:   goqu.Dialect(dialectSQLite),
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(&store); err != nil {
			return Store{}, err
		}
	}

	if err := store.ensureSchema(context.Background()); err != nil {
		store.logError(context.Background(), logMsgCreateSchemaFailed, logAttrError, err.Error())
		return Store{}, err
	}

	return store, nil
}

// ensureSchema creates the documents table when the database file is fresh.
func (s Store) ensureSchema(ctx context.Context) error {
	createTable := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %q (%q TEXT PRIMARY KEY, %q TEXT NOT NULL)`,
		s.tableName, colKey, colPayload,
	)

	_, err := s.db.Exec(ctx, createTable)

	return err
}

// Load retrieves the document stored for the given key.
// Returns recordstore.ErrDocumentNotFound if no document was ever saved for the key.
func (s Store) Load(ctx context.Context, key string) (recordstore.Document, error) {
	if key == "" {
		return recordstore.Document{}, recordstore.ErrEmptyKeySupplied
	}

	start := time.Now()
	spanCtx, span := s.startSpan(ctx, "recordstore.load", map[string]string{labelEngine: engineName, labelKey: key})

	query, err := s.buildSelectQuery(key)
	if err != nil {
		s.logError(ctx, logMsgBuildSelectQueryFailed, logAttrError, err.Error())
		s.finishSpan(span, spanStatusError, nil)

		return recordstore.Document{}, err
	}

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		s.logError(ctx, logMsgDBQueryFailed, logAttrKey, key, logAttrQuery, query, logAttrError, err.Error())
		s.finishSpan(span, spanStatusError, nil)
		s.countOperation(ctx, operationLoad, outcomeError)

		return recordstore.Document{}, err
	}

	var payload string
	found := false

	for rows.Next() {
		if scanErr := rows.Scan(&payload); scanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, logAttrKey, key, logAttrError, scanErr.Error())
			_ = rows.Close()
			s.finishSpan(span, spanStatusError, nil)

			return recordstore.Document{}, scanErr
		}

		found = true
	}

	if closeErr := rows.Close(); closeErr != nil {
		s.logWarn(ctx, logMsgCloseRowsFailed, logAttrKey, key, logAttrError, closeErr.Error())
	}

	duration := time.Since(start)

	if !found {
		s.logDebug(ctx, logMsgDocumentNotFound, logAttrKey, key)
		s.finishSpan(span, spanStatusOK, nil)
		s.countOperation(ctx, operationLoad, outcomeNotFound)

		return recordstore.Document{}, recordstore.ErrDocumentNotFound
	}

	s.logDebug(ctx, logMsgDocumentLoaded,
		logAttrKey, key,
		logAttrPayloadBytes, len(payload),
		logAttrDurationMS, duration.Milliseconds(),
	)
	s.recordDuration(spanCtx, operationLoad, duration, key)
	s.finishSpan(span, spanStatusOK, nil)
	s.countOperation(ctx, operationLoad, outcomeSuccess)

	return recordstore.Document{Key: key, PayloadJSON: []byte(payload)}, nil
}

// Save stores the document, replacing any previously stored payload for its key wholesale.
func (s Store) Save(ctx context.Context, doc recordstore.Document) error {
	if doc.Key == "" {
		return recordstore.ErrEmptyKeySupplied
	}

	start := time.Now()
	spanCtx, span := s.startSpan(ctx, "recordstore.save", map[string]string{labelEngine: engineName, labelKey: doc.Key})

	query, err := s.buildUpsertQuery(doc)
	if err != nil {
		s.logError(ctx, logMsgBuildUpsertQueryFailed, logAttrError, err.Error())
		s.finishSpan(span, spanStatusError, nil)

		return err
	}

	result, err := s.db.Exec(ctx, query)
	if err != nil {
		s.logError(ctx, logMsgDBExecFailed, logAttrKey, doc.Key, logAttrQuery, query, logAttrError, err.Error())
		s.finishSpan(span, spanStatusError, nil)
		s.countOperation(ctx, operationSave, outcomeError)

		return err
	}

	_, _ = result.RowsAffected() // an upsert always affects exactly one row

	duration := time.Since(start)

	s.logDebug(ctx, logMsgDocumentSaved,
		logAttrKey, doc.Key,
		logAttrPayloadBytes, len(doc.PayloadJSON),
		logAttrDurationMS, duration.Milliseconds(),
	)
	s.recordDuration(spanCtx, operationSave, duration, doc.Key)
	s.finishSpan(span, spanStatusOK, nil)
	s.countOperation(ctx, operationSave, outcomeSuccess)

	return nil
}

func (s Store) buildSelectQuery(key string) (string, error) {
	query, _, err := s.dialect.
		From(s.tableName).
		Select(goqu.C(colPayload)).
		Where(goqu.C(colKey).Eq(key)).
		ToSQL()

	return query, err
}

func (s Store) buildUpsertQuery(doc recordstore.Document) (string, error) {
	query, _, err := s.dialect.
		Insert(s.tableName).
		Rows(goqu.Record{
			colKey:     doc.Key,
			colPayload: string(doc.PayloadJSON),
		}).
		OnConflict(goqu.DoUpdate(colKey, goqu.Record{
			colPayload: string(doc.PayloadJSON),
		})).
		ToSQL()

	return query, err
}
