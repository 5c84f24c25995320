// Package storemem provides an in-memory Storage implementation for tests.
// It mirrors the engine contract exactly, including the not-found sentinel,
// and can be told to fail the next save to exercise compensation paths.
package storemem

import (
	"context"
	"errors"

	"github.com/liblend/library-ledger-go/recordstore"
)

// ErrSaveFailed is returned for a save that was told to fail.
var ErrSaveFailed = errors.New("storemem: save failed on request")

// Store is an in-memory document store for tests. Not safe for concurrent use.
type Store struct {
	docs      map[string]recordstore.Document
	SaveCalls int
	FailSaves bool
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{docs: make(map[string]recordstore.Document)}
}

// Load retrieves the document stored for the given key.
func (s *Store) Load(_ context.Context, key string) (recordstore.Document, error) {
	if key == "" {
		return recordstore.Document{}, recordstore.ErrEmptyKeySupplied
	}

	doc, ok := s.docs[key]
	if !ok {
		return recordstore.Document{}, recordstore.ErrDocumentNotFound
	}

	return doc, nil
}

// Save stores the document, replacing any previously stored payload wholesale.
func (s *Store) Save(_ context.Context, doc recordstore.Document) error {
	s.SaveCalls++

	if s.FailSaves {
		return ErrSaveFailed
	}

	if doc.Key == "" {
		return recordstore.ErrEmptyKeySupplied
	}

	s.docs[doc.Key] = doc

	return nil
}

// Stored returns the payload currently stored for the key, or nil.
func (s *Store) Stored(key string) []byte {
	return s.docs[key].PayloadJSON
}
