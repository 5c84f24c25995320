// Package core contains the pure domain model of the library system:
// borrow records, books, users, and the derivations computed from them
// (loan status, fines, pagination, statistics).
//
// Everything in this package is free of infrastructure concerns - no
// storage, no clock reads, no logging. Functions that depend on the
// current time take it as a parameter, so all derivations are
// deterministic and trivially testable.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this
// would be called the 'domain' layer.
package core
