package shell

import (
	"context"

	"github.com/liblend/library-ledger-go/recordstore"
)

// Collection keys under which the services persist their state.
// These are the persisted format and must stay stable.
const (
	KeyBorrowRecords = "borrowRecords"
	KeyBooks         = "books"
	KeyUsers         = "users"
	KeyCurrentUser   = "currentUser"
)

// Storage defines the interface the services need from a store engine:
// load one document by key, save one document wholesale. Both engines
// (boltengine, sqliteengine) satisfy it.
type Storage interface {
	Load(ctx context.Context, key string) (recordstore.Document, error)
	Save(ctx context.Context, doc recordstore.Document) error
}
