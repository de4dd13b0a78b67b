package state

import (
	"context"
	"testing"
	"time"

	"github.com/five82/vocab/internal/coalesce"
)

func TestStore_ZeroValueUsable(t *testing.T) {
	var s Store
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want absent", ok, err)
	}
	if err := s.Remove(ctx, "missing"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if err := s.Set(ctx, "a", "1"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	v, ok, err := s.Get(ctx, "a")
	if err != nil || !ok || v != "1" {
		t.Fatalf("Get(a) = %q ok=%v err=%v, want 1", v, ok, err)
	}
}

func TestStore_MultiSetAndSnapshotClone(t *testing.T) {
	var s Store
	ctx := context.Background()

	before := time.Now()
	if err := s.MultiSet(ctx, []coalesce.Entry{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}); err != nil {
		t.Fatalf("MultiSet returned error: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Values) != 2 || snap.Values["a"] != "1" || snap.Values["b"] != "2" {
		t.Fatalf("snapshot values = %#v, want a=1 b=2", snap.Values)
	}
	if snap.Writes != 1 {
		t.Fatalf("Writes = %d, want 1 for a single MultiSet", snap.Writes)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Values["a"] = "999"
	snap2 := s.Snapshot()
	if snap2.Values["a"] != "1" {
		t.Fatalf("Snapshot should clone values; got %q want 1", snap2.Values["a"])
	}
}

func TestStore_RemoveAndClear(t *testing.T) {
	var s Store
	ctx := context.Background()

	_ = s.Set(ctx, "a", "1")
	_ = s.Set(ctx, "b", "2")
	if err := s.Remove(ctx, "a"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Fatal("a still present after Remove")
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	snap := s.Snapshot()
	if snap.Values != nil {
		t.Fatalf("values after Clear = %#v, want empty", snap.Values)
	}
	if snap.Writes != 4 {
		t.Fatalf("Writes = %d, want 4", snap.Writes)
	}
	if err := s.Set(ctx, "c", "3"); err != nil {
		t.Fatalf("Set after Clear returned error: %v", err)
	}
}

func TestStore_BacksCoalescer(t *testing.T) {
	var s Store
	ctx := context.Background()
	c := coalesce.New(&s, coalesce.Options{Debounce: time.Hour})

	for i, v := range []string{"uno", "dos", "tres"} {
		if err := c.SetItem("count", v); err != nil {
			t.Fatalf("SetItem #%d: %v", i, err)
		}
	}
	if s.Snapshot().Writes != 0 {
		t.Fatal("store written before flush")
	}
	c.Flush(ctx)

	snap := s.Snapshot()
	if snap.Writes != 1 || snap.Values["count"] != "tres" {
		t.Fatalf("snapshot = %#v, want one write with count=tres", snap)
	}
}
