package coalesce

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/vocab/internal/telemetry"
)

// DefaultDebounce is the quiet period after the last SetItem before a flush.
const DefaultDebounce = 250 * time.Millisecond

// ErrClosed is returned by SetItem after Close.
var ErrClosed = errors.New("coalescer closed")

// PendingWrite is a value waiting for the next flush.
type PendingWrite struct {
	Value     string
	Timestamp int64 // unix milliseconds
}

// Options configure a Coalescer.
type Options struct {
	// Debounce is the quiet window. Zero selects DefaultDebounce.
	Debounce  time.Duration
	Logger    zerolog.Logger
	Collector telemetry.Collector
	// Now stamps pending writes. Defaults to time.Now.
	Now func() time.Time
}

// Coalescer batches rapid SetItem calls into one Store.MultiSet issued
// after a quiet period. Reads see pending values before they are flushed.
type Coalescer struct {
	store     Store
	debounce  time.Duration
	logger    zerolog.Logger
	collector telemetry.Collector
	now       func() time.Time

	// flushMu serializes flushes so batches reach the store in order.
	flushMu sync.Mutex

	mu       sync.Mutex
	pending  map[string]PendingWrite
	inflight map[string]string
	timer    *time.Timer
	gen      uint64
	closed   bool
}

// New creates a Coalescer over store.
func New(store Store, opts Options) *Coalescer {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	collector := opts.Collector
	if collector == nil {
		collector = telemetry.Noop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Coalescer{
		store:     store,
		debounce:  debounce,
		logger:    opts.Logger,
		collector: collector,
		now:       now,
		pending:   make(map[string]PendingWrite),
	}
}

// SetItem records value for key and restarts the shared debounce timer.
// Persistence happens on the next flush.
func (c *Coalescer) SetItem(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.pending[key] = PendingWrite{Value: value, Timestamp: c.now().UnixMilli()}
	c.restartTimerLocked()
	return nil
}

func (c *Coalescer) restartTimerLocked() {
	c.stopTimerLocked()
	gen := c.gen
	c.timer = time.AfterFunc(c.debounce, func() { c.onTimer(gen) })
}

// stopTimerLocked cancels the debounce timer. Bumping gen makes a callback
// that already started a no-op.
func (c *Coalescer) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}

// onTimer flushes for the timer armed at gen. The generation is checked
// again once flushMu is held: a write made while an earlier batch was
// writing restarts the timer, and its quiet window belongs to the new timer.
func (c *Coalescer) onTimer(gen uint64) {
	c.flush(context.Background(), func() bool { return gen == c.gen })
}

// GetItem returns the pending value for key if there is one, otherwise the
// stored value.
func (c *Coalescer) GetItem(ctx context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	if w, ok := c.pending[key]; ok {
		c.mu.Unlock()
		return w.Value, true, nil
	}
	if v, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		return v, true, nil
	}
	c.mu.Unlock()

	value, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, ok, nil
}

// RemoveItem drops any pending write for key and removes it from the store
// immediately. The debounce timer keeps running for other keys. A flush
// already writing key completes first.
func (c *Coalescer) RemoveItem(ctx context.Context, key string) error {
	c.flushMu.Lock()
	defer c.flushMu.Unlock()

	c.mu.Lock()
	delete(c.pending, key)
	delete(c.inflight, key)
	c.mu.Unlock()

	if err := c.store.Remove(ctx, key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// Clear drops all pending writes, cancels the timer and clears the store.
func (c *Coalescer) Clear(ctx context.Context) error {
	c.flushMu.Lock()
	defer c.flushMu.Unlock()

	c.mu.Lock()
	c.pending = make(map[string]PendingWrite)
	c.inflight = nil
	c.stopTimerLocked()
	c.mu.Unlock()

	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	return nil
}

// Pending returns the number of keys waiting for a flush.
func (c *Coalescer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Flush writes all pending entries as one batch. If the batch fails each
// entry is written on its own; failures are logged, never returned.
func (c *Coalescer) Flush(ctx context.Context) {
	c.flush(ctx, nil)
}

// flush writes the pending batch. current, when set, is called under mu
// before the batch is taken; false means the caller's timer was superseded.
func (c *Coalescer) flush(ctx context.Context, current func() bool) {
	c.flushMu.Lock()
	defer c.flushMu.Unlock()

	entries := c.takeBatch(current)
	if len(entries) == 0 {
		return
	}
	defer c.clearInflight()

	err := guard(func() error { return c.store.MultiSet(ctx, entries) })
	if err == nil {
		c.collector.IncBatchFlushed(len(entries))
		c.logger.Debug().Int("entries", len(entries)).Msg("batch flushed")
		return
	}

	c.collector.IncBatchFailed()
	c.logger.Warn().Err(err).Int("entries", len(entries)).Msg("batch write failed, falling back to per-key writes")
	for _, e := range entries {
		if err := guard(func() error { return c.store.Set(ctx, e.Key, e.Value) }); err != nil {
			c.collector.IncDroppedKey()
			c.logger.Error().Err(err).Str("key", e.Key).Msg("fallback write failed")
			continue
		}
		c.collector.IncFallbackWrite()
	}
}

// takeBatch snapshots and clears the pending map and cancels the timer in
// one critical section.
func (c *Coalescer) takeBatch(current func() bool) []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if current != nil && !current() {
		return nil
	}
	if len(c.pending) == 0 {
		return nil
	}
	entries := make([]Entry, 0, len(c.pending))
	inflight := make(map[string]string, len(c.pending))
	for k, w := range c.pending {
		entries = append(entries, Entry{Key: k, Value: w.Value})
		inflight[k] = w.Value
	}
	c.pending = make(map[string]PendingWrite)
	c.inflight = inflight
	c.stopTimerLocked()

	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

func (c *Coalescer) clearInflight() {
	c.mu.Lock()
	c.inflight = nil
	c.mu.Unlock()
}

// Close flushes what is pending and rejects later writes.
func (c *Coalescer) Close(ctx context.Context) {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.Flush(ctx)
}

// guard converts a panicking store call into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("store panic: %v", r)
		}
	}()
	return fn()
}
