// Package boltengine implements the document store on top of bbolt,
// a single-file local key-value database.
//
// This is the default engine: a keyed single-file store matches the
// single-device persistence model exactly. Each document lives as one
// bucket entry keyed by the document key, and every save replaces the
// stored payload wholesale.
//
// The engine supports customizable bucket naming, logging, metrics, and
// tracing through functional options.
//
// Usage:
//
//	db, err := bbolt.Open("library.db", 0o600, nil)
//	if err != nil {
//		// handle error
//	}
//
//	store, err := boltengine.NewStoreFromBolt(db, boltengine.WithLogger(logger))
//	if err != nil {
//		// handle error
//	}
//
//	doc, err := store.Load(ctx, "books")
package boltengine
