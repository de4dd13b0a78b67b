// Package state provides an in-memory key/value store.
//
// # Overview
//
// Store satisfies coalesce.Store and is the "memory" storage backend. It is
// also what tests reach for when they need a real backend without touching
// disk.
//
// # Concurrency Model
//
// The Store uses a readers-writer lock:
//
//   - Get, Snapshot: read lock (concurrent reads allowed)
//   - Set, MultiSet, Remove, Clear: write lock
//
// MultiSet applies every entry under a single write lock, so readers never
// observe half a batch.
//
// # Snapshots
//
// Snapshot returns a copy of the map plus bookkeeping (last update time and
// number of mutating calls). Mutating a snapshot never affects the Store.
//
// # Zero Value
//
// The zero Store is empty and ready to use:
//
//	var s state.Store
//	_ = s.Set(ctx, "theme", "Slate")
package state
