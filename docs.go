// Package recorddb is a generic in-memory record store with a chainable query
// scope, meant as a lightweight stand-in for a real database in tests and
// prototypes. It is not intended for production use.
//
// The Database keeps two collections: the records themselves and the active
// query scope. Where builds or extends the scope, Update operates on it, and
// Get, First, Last and Delete consume and clear it. Models handed out by the
// Database are transient projections of the stored definitions, never the
// source of truth.
//
// Soft misses (Find, First, Last on an empty source) return ErrNotFound.
// Contract violations - an unknown column, updating the identity, a query
// scope that outlived its records - panic instead of returning errors, to make
// calling the store much easier and prevent boilerplate in error checking.
//
// The Database offers a fixed set of operations out of the box. If you need
// more, embed it into your own type and extend or overwrite methods there.
// There are examples for both.
package recorddb
