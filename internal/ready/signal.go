package ready

import "sync"

// Signal is the host's one-shot notification that queued UI interactions
// have settled. AfterInteractions registers fn and returns a handle that
// cancels the registration if it has not fired yet.
type Signal interface {
	AfterInteractions(fn func()) (cancel func())
}

// Latch is a Signal the host fires exactly once. Registrations made after
// Fire run immediately on the caller's goroutine.
type Latch struct {
	mu      sync.Mutex
	fired   bool
	nextID  int
	waiters []latchWaiter
}

type latchWaiter struct {
	id int
	fn func()
}

// Fire releases every registered waiter in registration order. Calls after
// the first are no-ops.
func (l *Latch) Fire() {
	l.mu.Lock()
	if l.fired {
		l.mu.Unlock()
		return
	}
	l.fired = true
	waiters := l.waiters
	l.waiters = nil
	l.mu.Unlock()

	for _, w := range waiters {
		w.fn()
	}
}

// Fired reports whether Fire has been called.
func (l *Latch) Fired() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fired
}

// AfterInteractions implements Signal.
func (l *Latch) AfterInteractions(fn func()) func() {
	l.mu.Lock()
	if l.fired {
		l.mu.Unlock()
		fn()
		return func() {}
	}
	l.nextID++
	id := l.nextID
	l.waiters = append(l.waiters, latchWaiter{id: id, fn: fn})
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, w := range l.waiters {
			if w.id == id {
				l.waiters = append(l.waiters[:i], l.waiters[i+1:]...)
				return
			}
		}
	}
}
