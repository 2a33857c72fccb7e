// Package catalog implements the in-memory query model behind catalog
// browsing: category predicates, free-text matching and the paginated
// Store that combines them.
//
// A Store is a plain state machine. It performs no locking; whoever owns a
// Store serializes calls to it.
package catalog
