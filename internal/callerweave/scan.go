package callerweave

import (
	"github.com/chexiongsheng/InvokeTracker/internal/instr"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata"
)

// Scan is pass B: it walks every method body in mod and, for each
// static-or-virtual call instruction whose callee matches an entry in ctx,
// records a CallSite in discovery order.
func Scan(mod *metadata.Module, ctx *Context) {
	mod.Walk(func(typeID metadata.TypeID) {
		t := mod.Type(typeID)
		if t == nil {
			return
		}
		for _, methodID := range t.Methods {
			method := mod.Method(methodID)
			if method == nil || method.Body == nil {
				continue
			}
			for _, instrID := range method.Body.Order {
				in := method.Body.At(instrID)
				if !in.Opcode.IsCall() || in.Operand.Kind != instr.OperandMethodRef {
					continue
				}
				key := in.Operand.Method.Key()
				if _, ok := ctx.Lookup(key); ok {
					ctx.Sites = append(ctx.Sites, CallSite{
						CalleeKey:    key,
						CallerModule: mod,
						Caller:       methodID,
						Instr:        instrID,
					})
				}
			}
		}
	})
}
