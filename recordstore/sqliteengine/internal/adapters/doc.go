// Package adapters provides database abstraction for the sqlite engine.
//
// It defines small interfaces for the database operations the engine needs
// and ships implementations for sqlx and plain database/sql connections,
// so the engine code never depends on a concrete driver API.
package adapters
