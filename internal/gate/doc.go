// Package gate decides when input-capturing widgets may mount.
//
// A Gate combines two monotonic flags: the user has interacted with the
// program, and a minimum delay has elapsed since the Gate was created.
// IsInputAllowed becomes true once both are set, in either order, and stays
// true. Observe wraps a Bubble Tea model so the first key press or mouse
// action anywhere sets the interaction flag while the message still reaches
// the wrapped model.
package gate
