package weave

import (
	"github.com/chexiongsheng/InvokeTracker/internal/diag"
	"github.com/chexiongsheng/InvokeTracker/internal/trace"
)

// tracerReporter adapts a trace.Tracer into a diag.Reporter, so every
// diagnostic also narrates through the same tracing subsystem the
// orchestrator uses for phase timing, regardless of whether it also ends up
// in a diag.Bag.
type tracerReporter struct {
	tracer trace.Tracer
}

func (r tracerReporter) Report(code diag.Code, sev diag.Severity, at diag.Location, msg string, _ []diag.Note) {
	if r.tracer == nil || !r.tracer.Enabled() {
		return
	}
	r.tracer.Emit(&trace.Event{
		Kind:   trace.KindPoint,
		Scope:  trace.ScopePass,
		Name:   code.Title(),
		Detail: sev.String() + " " + at.String() + ": " + msg,
	})
}
