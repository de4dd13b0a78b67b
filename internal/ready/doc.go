// Package ready tracks whether the host UI has become stable enough to
// accept input focus.
//
// # Overview
//
// Focusing a text input while the terminal is still negotiating its first
// layout can wedge the input session. The Clock defers such work until the
// host reports that pending interactions have settled and an additional
// settle delay has elapsed.
//
// # Lifecycle
//
//  1. New creates a Clock in the not-ready state
//  2. Start registers with the host Signal
//  3. When the Signal fires, a settle timer is armed
//  4. When the timer fires, the Clock becomes ready and drains its queue
//  5. Stop cancels both the Signal registration and the timer
//
// MarkReady short-circuits the wait. Readiness flips exactly once and is
// never reset.
//
// # Callback Queue
//
// WhenReady queues callbacks while the Clock is not ready. The queue drains
// synchronously, in insertion order, inside the transition to ready; a
// panicking callback is logged and skipped so its siblings still run.
// Callbacks registered after readiness are handed to the Dispatcher and
// never run inside the WhenReady call, which keeps focus requests out of
// the render pass that issued them.
//
// # Dispatchers
//
//   - Goroutine: one goroutine per post, unordered
//   - Loop: a single goroutine running posts in FIFO order
//
// # Settle Delay
//
// DefaultSettleDelay owns the platform table. Configuration overrides it;
// see the config package.
package ready
