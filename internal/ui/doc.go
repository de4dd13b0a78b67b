// Package ui provides the Bubble Tea practice screen.
//
// # Overview
//
// The screen lists vocabulary words. Pressing n opens a note input for the
// selected word; enter saves it, esc leaves the input. Saved notes, the
// theme and the cursor position are written through a coalesce.Coalescer,
// so rapid edits reach the store as one batch.
//
// # Input Readiness
//
// The note input is a widget.GuardedInput and never focuses itself. Three
// things must line up before it takes keystrokes:
//
//  1. The first tea.WindowSizeMsg fires the ready.Latch, which starts the
//     ready.Clock settle delay. Focus requests go through Clock.WhenReady.
//  2. gate.Observe wraps the model so the first key press or click opens
//     the gate's interaction flag; the gate's timer supplies the other.
//  3. widget.Mount renders the input only while the gate admits input and
//     shows a hint otherwise. A focus request that arrives early is held
//     until the gate's subscription fires.
//
// Callbacks from the clock and gate run off the event loop, so they only
// send messages; all model changes happen in Update. Each input instance
// carries its own id and a focus request for a closed instance is dropped.
//
// # Key Bindings
//
//   - j/k: move selection
//   - n: write note for the selected word
//   - x: delete the note
//   - enter/esc: save / leave the input
//   - T: cycle theme
//   - ?: toggle help
//   - ctrl+c: quit
package ui
