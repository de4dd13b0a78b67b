package gate

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/vocab/internal/ready"
)

// DefaultMinDelay is the minimum time between construction and admitting
// input.
const DefaultMinDelay = 2 * time.Second

// Options configure a Gate.
type Options struct {
	// MinDelay is the minimum-time timer. Zero selects DefaultMinDelay.
	MinDelay time.Duration
	// Dispatcher runs Subscribe callbacks. Defaults to ready.Goroutine.
	Dispatcher ready.Dispatcher
	Logger     zerolog.Logger
}

// Gate admits input-capturing widgets only after the user has interacted
// and the minimum delay has passed. Both flags and the derived admission are
// monotonic.
type Gate struct {
	minDelay time.Duration
	dispatch ready.Dispatcher
	logger   zerolog.Logger

	mu          sync.Mutex
	interacted  bool
	timePassed  bool
	allowed     bool
	timer       *time.Timer
	subscribers []func()
}

// New creates a Gate and arms its minimum-time timer.
func New(opts Options) *Gate {
	minDelay := opts.MinDelay
	if minDelay <= 0 {
		minDelay = DefaultMinDelay
	}
	dispatch := opts.Dispatcher
	if dispatch == nil {
		dispatch = ready.Goroutine
	}
	g := &Gate{
		minDelay: minDelay,
		dispatch: dispatch,
		logger:   opts.Logger,
	}
	g.mu.Lock()
	g.timer = time.AfterFunc(minDelay, g.markTimePassed)
	g.mu.Unlock()
	return g
}

// Stop disarms the minimum-time timer. Flags already set stay set.
func (g *Gate) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

// AllowInteraction records that the user has interacted. Idempotent.
func (g *Gate) AllowInteraction() {
	g.update(func() bool {
		if g.interacted {
			return false
		}
		g.interacted = true
		return true
	}, "user interaction observed")
}

func (g *Gate) markTimePassed() {
	g.update(func() bool {
		if g.timePassed {
			return false
		}
		g.timePassed = true
		g.timer = nil
		return true
	}, "minimum delay elapsed")
}

func (g *Gate) update(set func() bool, what string) {
	g.mu.Lock()
	if !set() {
		g.mu.Unlock()
		return
	}
	var notify []func()
	opened := !g.allowed && g.interacted && g.timePassed
	if opened {
		g.allowed = true
		notify = g.subscribers
		g.subscribers = nil
	}
	g.mu.Unlock()

	g.logger.Debug().Bool("input_allowed", opened).Msg(what)
	for _, fn := range notify {
		g.post(fn)
	}
}

// IsInputAllowed reports whether input widgets may mount.
func (g *Gate) IsInputAllowed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.allowed
}

// HasUserInteracted reports the interaction flag.
func (g *Gate) HasUserInteracted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.interacted
}

// HasTimePassed reports the minimum-time flag.
func (g *Gate) HasTimePassed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.timePassed
}

// Subscribe runs fn on the dispatcher once input becomes allowed, or soon
// after the call if it already is.
func (g *Gate) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	g.mu.Lock()
	if !g.allowed {
		g.subscribers = append(g.subscribers, fn)
		g.mu.Unlock()
		return
	}
	g.mu.Unlock()
	g.post(fn)
}

func (g *Gate) post(fn func()) {
	g.dispatch.Post(func() {
		defer func() {
			if r := recover(); r != nil {
				g.logger.Error().Str("panic", fmt.Sprint(r)).Msg("gate subscriber panicked")
			}
		}()
		fn()
	})
}
