package ready

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Settle delays applied after the host reports that interactions finished.
// darwin terminals exhibit the focus deadlock and get the longer delay.
const (
	darwinSettleDelay  = 500 * time.Millisecond
	defaultSettleDelay = 100 * time.Millisecond
)

// DefaultSettleDelay returns the settle delay for the given GOOS.
func DefaultSettleDelay(goos string) time.Duration {
	if goos == "darwin" {
		return darwinSettleDelay
	}
	return defaultSettleDelay
}

// Options configure a Clock.
type Options struct {
	// SettleDelay is waited after Signal fires. Zero selects
	// DefaultSettleDelay(runtime.GOOS).
	SettleDelay time.Duration
	// Signal is the host completion signal. Without one the clock only
	// becomes ready through MarkReady.
	Signal Signal
	// Dispatcher runs WhenReady callbacks registered after readiness.
	// Defaults to Goroutine.
	Dispatcher Dispatcher
	Logger     zerolog.Logger
}

// Clock tracks whether the host environment has become stable. It flips
// from not ready to ready exactly once and never resets.
type Clock struct {
	settle   time.Duration
	signal   Signal
	dispatch Dispatcher
	logger   zerolog.Logger

	mu         sync.Mutex
	ready      bool
	started    bool
	stopped    bool
	pending    []func()
	cancelWait func()
	timer      *time.Timer
}

// New creates a Clock in the not-ready state. Start begins the readiness
// wait.
func New(opts Options) *Clock {
	settle := opts.SettleDelay
	if settle <= 0 {
		settle = DefaultSettleDelay(runtime.GOOS)
	}
	dispatch := opts.Dispatcher
	if dispatch == nil {
		dispatch = Goroutine
	}
	return &Clock{
		settle:   settle,
		signal:   opts.Signal,
		dispatch: dispatch,
		logger:   opts.Logger,
	}
}

// Start waits for the host signal, then for the settle delay, then marks
// the clock ready. Calling Start more than once has no further effect.
func (c *Clock) Start() {
	c.mu.Lock()
	if c.started || c.stopped || c.ready || c.signal == nil {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	// The signal may fire synchronously, so no lock is held here.
	cancel := c.signal.AfterInteractions(c.onSettled)

	c.mu.Lock()
	if c.stopped || c.ready {
		c.mu.Unlock()
		cancel()
		return
	}
	c.cancelWait = cancel
	c.mu.Unlock()
}

func (c *Clock) onSettled() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || c.ready {
		return
	}
	c.cancelWait = nil
	c.logger.Debug().Dur("settle", c.settle).Msg("interactions settled")
	c.timer = time.AfterFunc(c.settle, func() { c.markReady(true) })
}

// Stop tears down the readiness wait: the pending signal registration and
// the settle timer are cancelled. Queued callbacks stay queued and still
// run if MarkReady is called later.
func (c *Clock) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	cancel := c.cancelWait
	c.cancelWait = nil
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// IsReady reports the current readiness.
func (c *Clock) IsReady() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// Pending returns the number of queued callbacks.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// WhenReady runs fn once the clock is ready. When already ready, fn is
// handed to the dispatcher and never runs within this call.
func (c *Clock) WhenReady(fn func()) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	if !c.ready {
		c.pending = append(c.pending, fn)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.dispatch.Post(func() { safeCall(c.logger, "when-ready", fn) })
}

// MarkReady forces readiness. The first call drains the queued callbacks
// synchronously in insertion order; later calls do nothing.
func (c *Clock) MarkReady() {
	c.markReady(false)
}

func (c *Clock) markReady(natural bool) {
	c.mu.Lock()
	if c.ready || (natural && c.stopped) {
		c.mu.Unlock()
		return
	}
	c.ready = true
	queued := c.pending
	c.pending = nil
	cancel := c.cancelWait
	c.cancelWait = nil
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.logger.Debug().Bool("forced", !natural).Int("queued", len(queued)).Msg("app ready")
	for _, fn := range queued {
		safeCall(c.logger, "ready-queue", fn)
	}
}
