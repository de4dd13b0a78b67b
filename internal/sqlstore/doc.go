// Package sqlstore persists key/value pairs in a single SQLite table:
//
//	kv(key TEXT PRIMARY KEY, value TEXT, updated_at INTEGER)
//
// updated_at holds Unix milliseconds of the last write. MultiSet runs in one
// transaction so a coalesced batch is either fully written or not at all.
package sqlstore
