// Package store is the local store adapter: an embedded SQLite database used
// as an object store with three collections.
//
// # Overview
//
//   - users     keyed by email, replaced wholesale
//   - courses   keyed by id, replaced wholesale
//   - settings  single-key get/set of JSON values
//
// Replace operations run DELETE followed by ordered INSERTs inside one
// transaction, so a reader sees either the old or the new collection. The
// adapter has no business logic; it does not diff, page or retry.
//
// # Bootstrap
//
// InitDatabase opens the pure-Go SQLite driver (modernc.org/sqlite) and
// applies the embedded goose migrations. Open does the same and wraps the
// handle in an Adapter. Initialization failures wrap ErrStoreUnavailable.
//
// The pool is limited to a single connection so that concurrent collection
// writers queue on the driver instead of failing with SQLITE_BUSY.
package store
