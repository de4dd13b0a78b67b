// Package coalesce batches key/value writes on a debounce timer.
//
// # Overview
//
// Persisting every keystroke-driven change costs one storage round trip
// each. A Coalescer instead holds writes in a pending map keyed by key (last
// write wins) and flushes them as a single Store.MultiSet once no new write
// has arrived for the debounce window (250ms by default). Every SetItem
// restarts one shared timer, so a burst of writes separated by less than the
// window lands in one batch.
//
// # Read-Your-Own-Write
//
// GetItem answers from the pending map first, then from the batch currently
// being written, and only then from the Store. A caller never reads a stale
// persisted value for a key it has just set.
//
// # Flush
//
//  1. Snapshot the pending map, replace it with an empty one and cancel the
//     timer, all under one lock
//  2. MultiSet the snapshot
//  3. On failure, Set each entry on its own; entries that still fail are
//     logged and dropped for this cycle
//
// Writes that arrive during step 2 start a new batch. Flushes are
// serialized so batches reach the Store in the order they were taken.
// Flush never returns an error and recovers panics raised by the Store.
//
// # Immediate Operations
//
// RemoveItem and Clear are not debounced: they act on the pending map and
// then call the Store directly, returning its error to the caller. Clear also
// cancels the timer; RemoveItem leaves it running for other keys.
//
// # Telemetry
//
// Options.Collector receives counts of flushed batches, failed batches,
// fallback writes and dropped keys. See the telemetry package.
package coalesce
