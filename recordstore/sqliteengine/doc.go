// Package sqliteengine implements the document store on top of a local
// SQLite database file.
//
// Documents live in a two-column table (key, payload); every save upserts
// the payload wholesale. SQL statements are built with goqu and executed
// through a small adapter layer, so the engine works with both sqlx and
// plain database/sql connections.
//
// The engine never opens connections itself - pass an open connection to
// one of the factory methods:
//   - NewStoreFromSQLX
//   - NewStoreFromSQLDB
//
// Usage:
//
//	db, err := sqlx.Connect("sqlite", "library.db")
//	if err != nil {
//		// handle error
//	}
//
//	store, err := sqliteengine.NewStoreFromSQLX(db, sqliteengine.WithLogger(logger))
//	if err != nil {
//		// handle error
//	}
//
//	doc, err := store.Load(ctx, "books")
package sqliteengine
