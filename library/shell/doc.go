// Package shell contains the infrastructure glue between the pure domain
// in library/core and the document store: the Storage interface the
// services consume, the collection keys, and the JSON mapping between
// domain collections and store documents.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this
// would be called the 'application' or 'adapter' layer.
package shell
