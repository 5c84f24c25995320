package boltengine

import (
	"context"
	"time"

	"go.etcd.io/bbolt"

	"github.com/liblend/library-ledger-go/recordstore"
)

const (
	defaultBucketName = "documents"

	logMsgDocumentLoaded   = "document loaded"
	logMsgDocumentSaved    = "document saved"
	logMsgDocumentNotFound = "no document stored for key"
	logMsgLoadFailed       = "bolt view transaction failed during load"
	logMsgSaveFailed       = "bolt update transaction failed during save"
	logAttrKey             = "key"
	logAttrError           = "error"
	logAttrPayloadBytes    = "payload_bytes"
	logAttrDurationMS      = "duration_ms"
)

// Store is a document store backed by a bbolt database file.
// It keeps one bucket and stores every document payload under its key.
type Store struct {
	db         *bbolt.DB
	bucketName string
	observability
}

// NewStoreFromBolt creates a new Store using an open bbolt database with optional configuration.
func NewStoreFromBolt(db *bbolt.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, recordstore.ErrNilDatabaseConnection
	}

	store := Store{
		db:         db,
		bucketName: defaultBucketName,
	}

	for _, option := range options {
		if err := option(&store); err != nil {
			return Store{}, err
		}
	}

	return store, nil
}

// Load retrieves the document stored for the given key.
//
// Returns recordstore.ErrDocumentNotFound if no document was ever saved for the key.
// The context is accepted for interface symmetry with other engines; bbolt reads
// are local file operations and do not observe cancellation mid-transaction.
func (s Store) Load(ctx context.Context, key string) (recordstore.Document, error) {
	if key == "" {
		return recordstore.Document{}, recordstore.ErrEmptyKeySupplied
	}

	start := time.Now()
	spanCtx, span := s.startSpan(ctx, "recordstore.load", map[string]string{labelEngine: engineName, labelKey: key})

	var payload []byte

	viewErr := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(s.bucketName))
		if bucket == nil {
			return nil
		}

		if value := bucket.Get([]byte(key)); value != nil {
			payload = make([]byte, len(value))
			copy(payload, value) // bbolt values are only valid inside the transaction
		}

		return nil
	})

	duration := time.Since(start)

	if viewErr != nil {
		s.logError(ctx, logMsgLoadFailed, logAttrKey, key, logAttrError, viewErr.Error())
		s.finishSpan(span, spanStatusError, nil)
		s.countOperation(ctx, operationLoad, outcomeError)

		return recordstore.Document{}, viewErr
	}

	if payload == nil {
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

	return recordstore.Document{Key: key, PayloadJSON: payload}, nil
}

// Save stores the document, replacing any previously stored payload for its key wholesale.
func (s Store) Save(ctx context.Context, doc recordstore.Document) error {
	if doc.Key == "" {
		return recordstore.ErrEmptyKeySupplied
	}

	start := time.Now()
	spanCtx, span := s.startSpan(ctx, "recordstore.save", map[string]string{labelEngine: engineName, labelKey: doc.Key})

	updateErr := s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(s.bucketName))
		if err != nil {
			return err
		}

		return bucket.Put([]byte(doc.Key), doc.PayloadJSON)
	})

	duration := time.Since(start)

	if updateErr != nil {
		s.logError(ctx, logMsgSaveFailed, logAttrKey, doc.Key, logAttrError, updateErr.Error())
		s.finishSpan(span, spanStatusError, nil)
		s.countOperation(ctx, operationSave, outcomeError)

		return updateErr
	}

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
