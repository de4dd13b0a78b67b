// Package app is the composition root for vocab.
//
// # Startup
//
//  1. Load ~/.config/vocab/config.toml (or the -config path) and apply flag
//     overrides
//  2. Set up the zerolog file sink
//  3. Open the configured store: sqlite, toml or memory
//  4. Register Prometheus counters on a private registry
//  5. Build one ready.Loop and hand it to the clock, the gate and the UI as
//     their dispatcher
//  6. Start the clock and run the UI until the user quits or ctx is
//     cancelled
//
// # Shutdown
//
// The clock and gate timers are stopped and the loop is drained. The
// coalescer is then closed, which flushes pending writes using a context
// detached from the run context, and only after that the store is closed.
// Final counter values are written to the log.
//
// # Data Flow
//
//	key press ──> gate.Observe ──> ui.Model.Update
//	                                 │
//	                                 ├─> Coalescer.SetItem  (debounced)
//	                                 │        └─> Store.MultiSet
//	                                 └─> Clock.WhenReady ──> loop ──> Program.Send
package app
