// Package ledger implements the Borrow Ledger, the authoritative set of
// borrow transactions.
//
// The ledger enforces the cross-entity invariants of the system: one active
// loan per user and book, stock decrement on borrow and increment on return
// through the Catalog Service, due-date and fine computation, and the
// derived loan statuses.
//
// Two behavioral quirks are inherited from the system this replaces and are
// kept on purpose:
//
//   - RecordsPage flips borrowed records past their due date to the overdue
//     status in memory, while Statistics re-derives overdue counts from
//     records still marked borrowed without flipping anything. The two
//     derivations can disagree depending on call order.
//   - The duplicate-loan guard only checks for records in the borrowed
//     status, so a loan that a listing has already flipped to overdue does
//     not block a second borrow of the same book by the same user.
package ledger
