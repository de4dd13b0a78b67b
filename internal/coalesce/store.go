package coalesce

import "context"

// Entry is one key/value pair handed to Store.MultiSet.
type Entry struct {
	Key   string
	Value string
}

// Store is the persistent key/value backend behind a Coalescer. MultiSet
// must report failure so the coalescer can fall back to per-key writes.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	MultiSet(ctx context.Context, entries []Entry) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
