package callerweave

import (
	"github.com/chexiongsheng/InvokeTracker/internal/counters"
	"github.com/chexiongsheng/InvokeTracker/internal/filter"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata/sig"
)

// Discover is pass A: it walks every type in mod and, for each bodyless
// eligible method, pre-allocates its helper type and counter field, then
// registers it in ctx keyed by canonical callee signature.
func Discover(mod *metadata.Module, alloc *counters.Allocator, filt *filter.Filter, ctx *Context) {
	mod.Walk(func(typeID metadata.TypeID) {
		t := mod.Type(typeID)
		if t == nil || !filt.TypeEligible(t) {
			return
		}
		for _, methodID := range t.Methods {
			method := mod.Method(methodID)
			if !filt.MethodEligibleForCallerSide(method) {
				continue
			}

			helper := alloc.GetOrCreateHelper(t)
			field := alloc.GetOrCreateCounterField(helper, method)
			key := KeyOf(mod, typeID, method)
			ctx.Register(key, ContextEntry{
				Field: sig.FieldSig{Type: mod.SigOf(helper), Name: mod.Field(field).Name},
			})
		}
	})
}
