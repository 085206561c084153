// Package trace records what lifeline does while it runs: driver steps,
// passes (parse, symbols, lifetimes), per-item work and, at the debug
// level, every scope frame pushed and every lifetime reference resolved.
//
// # Usage
//
//	lifeline resolve --trace=- --trace-level=detail src/
//
// # Tracers
//
//   - Nop: disabled tracing, no allocation per event
//   - StreamTracer: writes each event as it happens (file or stderr)
//   - RingTracer: keeps the last N events for a dump after a crash
//   - MultiTracer: stream and ring together
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: ring buffer only, dumped on panic
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: one span per item
//   - LevelDebug: node-level points from the lifetime walker
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
