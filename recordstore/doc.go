// Package recordstore provides core abstractions and types for a local
// document store that persists whole collections as single JSON payloads.
//
// The store holds exactly one document per key. Every save replaces the
// stored payload wholesale, so a collection is always read and written as
// one atomic unit - there is no partial-write visibility for callers.
//
// This package defines the fundamental types and interfaces shared by the
// engine implementations, including the Document DTO, observability
// interfaces, and common error definitions.
//
// Key types:
//   - Document: a keyed JSON payload that can be stored and retrieved
//   - Logger / ContextualLogger: dependency-free logging interfaces
//   - MetricsCollector / TracingCollector: dependency-free observability interfaces
//
// Common usage pattern:
//
//	doc, err := recordstore.BuildDocument("borrowRecords", payloadJSON)
//	if err != nil {
//		// handle error
//	}
//
//	err = store.Save(ctx, doc)
//	if err != nil {
//		// handle error
//	}
//
//	doc, err = store.Load(ctx, "borrowRecords")
//	if errors.Is(err, recordstore.ErrDocumentNotFound) {
//		// start from the seed state
//	}
package recordstore
