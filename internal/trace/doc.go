// Package trace provides a tracing subsystem for the weaver.
//
// The trace package enables tracking of weave phases, per-type and
// per-method processing, and other operations to help diagnose
// performance issues and hangs on large modules.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	invoketracker weave --trace=- --trace-level=phase MyGame.dll
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - NopTracer: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer for crash dumps
//   - MultiTracer: Combines multiple tracers
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelError: No span or point events (heartbeats still pass)
//   - LevelPhase: Orchestrator and weave-phase boundaries
//   - LevelDetail: Per-type/per-method events
//   - LevelDebug: Everything including individual instructions
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeDriver: Top-level orchestrator operations
//   - ScopeModule: Per-module processing
//   - ScopePass: Weave phases (filter, allocate, body, caller-side, save)
//   - ScopeNode: Instruction level (debug only)
//
// # Context Propagation
//
// Tracers are propagated through the weave pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "bodyweave", parentID)
//	defer span.End("")
package trace
