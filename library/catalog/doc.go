// Package catalog implements the Catalog Service: it owns the book
// collection and the per-title stock counters.
//
// The service holds the catalog in memory and persists it wholesale into
// the document store after every mutation. The borrow ledger depends on
// two of its operations - BookByID and AdjustStock - which together keep
// stock reconciled with the outstanding loans.
package catalog
