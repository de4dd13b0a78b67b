package ready

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Dispatcher schedules work to run on a later tick, never inline with the
// caller.
type Dispatcher interface {
	Post(fn func())
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(fn func())

// Post implements Dispatcher.
func (f DispatcherFunc) Post(fn func()) { f(fn) }

// Goroutine runs each posted function on its own goroutine. It gives no
// ordering guarantee between posts.
var Goroutine Dispatcher = DispatcherFunc(func(fn func()) { go fn() })

// Loop is a serial dispatcher: posted functions run one at a time, in FIFO
// order, on a single goroutine owned by the Loop.
type Loop struct {
	logger zerolog.Logger

	mu     sync.Mutex
	queue  []func()
	closed bool

	wake   chan struct{}
	exited chan struct{}
}

// NewLoop starts a serial dispatcher. Call Close to stop it.
func NewLoop(logger zerolog.Logger) *Loop {
	l := &Loop{
		logger: logger,
		wake:   make(chan struct{}, 1),
		exited: make(chan struct{}),
	}
	go l.run()
	return l
}

// Post queues fn. Posts after Close are dropped.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		l.logger.Debug().Msg("dispatch after close dropped")
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	l.signal()
}

// Close runs whatever is already queued and stops the loop goroutine. It
// must not be called from a function running on the loop.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		<-l.exited
		return
	}
	l.closed = true
	l.mu.Unlock()
	l.signal()
	<-l.exited
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) run() {
	defer close(l.exited)
	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.closed {
			l.mu.Unlock()
			<-l.wake
			l.mu.Lock()
		}
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			safeCall(l.logger, "dispatch", fn)
		}
	}
}

// safeCall invokes fn, logging and discarding any panic.
func safeCall(logger zerolog.Logger, what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Str("site", what).Str("panic", fmt.Sprint(r)).Msg("callback panicked")
		}
	}()
	fn()
}
