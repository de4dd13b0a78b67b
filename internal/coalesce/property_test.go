package coalesce

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"pgregory.net/rapid"
)

// Any sequence of writes issued before a flush lands as exactly one batch
// holding the last value per key, and every read before the flush sees that
// last value.
func TestCoalescer_LastWriteWinsProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store := newFakeStore()
		c := New(store, Options{Debounce: time.Hour, Logger: zerolog.Nop()})
		ctx := context.Background()

		keys := rapid.SliceOfN(rapid.SampledFrom([]string{"a", "b", "c", "d"}), 1, 40).Draw(rt, "keys")
		last := map[string]string{}
		for i, k := range keys {
			v := rapid.StringMatching(`[a-z]{0,6}`).Draw(rt, "value")
			store.values[k] = "persisted-" + k
			if err := c.SetItem(k, v); err != nil {
				rt.Fatalf("SetItem #%d: %v", i, err)
			}
			last[k] = v

			got, ok, err := c.GetItem(ctx, k)
			if err != nil || !ok || got != v {
				rt.Fatalf("GetItem(%q) = %q, %v, %v; want %q", k, got, ok, err, v)
			}
		}

		c.Flush(ctx)
		if n := store.batchCount(); n != 1 {
			rt.Fatalf("batches = %d, want 1", n)
		}

		want := make([]Entry, 0, len(last))
		for k, v := range last {
			want = append(want, Entry{Key: k, Value: v})
		}
		sort.Slice(want, func(i, j int) bool { return want[i].Key < want[j].Key })

		got := store.batch(0)
		if len(got) != len(want) {
			rt.Fatalf("batch = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				rt.Fatalf("batch[%d] = %v, want %v", i, got[i], want[i])
			}
		}
	})
}
