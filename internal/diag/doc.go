// Package diag defines the diagnostic model shared by every weave phase.
//
// Diagnostic carries a Severity, a Code identifying the behavioral kind
// (spec §7: InputNotFound, SymbolMismatch, AlreadyInstrumented,
// TypeScanFailure, InstrumentationFailure, SaveFailure, and the
// informational codes used for the run summary), a human message, and a
// Location pinning it to a module/type/method/instruction-offset.
//
// Phases emit through a Reporter rather than touching storage directly.
// BagReporter collects into a Bag for later sorting and deduplication;
// NopReporter discards; MultiReporter fans out to several reporters (for
// example a Bag plus the live trace.Tracer).
package diag
