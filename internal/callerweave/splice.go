package callerweave

import (
	"github.com/chexiongsheng/InvokeTracker/internal/diag"
	"github.com/chexiongsheng/InvokeTracker/internal/instr"
)

// Splice inserts the four-instruction prelude immediately before each
// recorded CallSite, in discovery order. If the counter field's declaring
// module differs from the caller's module, the declaring module is
// imported into the caller's reference table first. A failure on one site
// is reported and does not abort the remaining sites.
func Splice(ctx *Context, reporter diag.Reporter) int {
	spliced := 0
	for _, site := range ctx.Sites {
		entry, ok := ctx.Lookup(site.CalleeKey)
		if !ok {
			continue
		}
		method := site.CallerModule.Method(site.Caller)
		if method == nil || method.Body == nil {
			diag.ReportWarning(reporter, diag.InstrumentationFailure,
				diag.Location{Module: site.CallerModule.Name},
				"caller-side call site references a method with no body, skipped").Emit()
			continue
		}

		if entry.Field.Type.Module != "" && entry.Field.Type.Module != site.CallerModule.Name {
			site.CallerModule.EnsureReference(entry.Field.Type.Module)
		}

		prelude := []instr.Instr{
			{Opcode: instr.OpLoadStaticField, Operand: instr.FieldOperand(entry.Field)},
			{Opcode: instr.OpLoadConstI32, Operand: instr.ConstOperand(1)},
			{Opcode: instr.OpAdd},
			{Opcode: instr.OpStoreStaticField, Operand: instr.FieldOperand(entry.Field)},
		}
		method.Body.SpliceBefore(site.Instr, prelude)
		instr.Recompact(method.Body)
		spliced++
	}
	return spliced
}
