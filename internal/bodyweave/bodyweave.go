// Package bodyweave implements the body instrumenter (§4.4): for an
// eligible method with at least one instruction, it splices the four
// instruction counter prelude at method entry and re-compacts the body.
package bodyweave

import (
	"github.com/chexiongsheng/InvokeTracker/internal/counters"
	"github.com/chexiongsheng/InvokeTracker/internal/diag"
	"github.com/chexiongsheng/InvokeTracker/internal/instr"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata"
)

// Instrumenter splices counter preludes into eligible method bodies.
type Instrumenter struct {
	Module    *metadata.Module
	Allocator *counters.Allocator
	Reporter  diag.Reporter
}

// New binds an Instrumenter to a module, allocator, and diagnostic sink.
func New(mod *metadata.Module, alloc *counters.Allocator, reporter diag.Reporter) *Instrumenter {
	return &Instrumenter{Module: mod, Allocator: alloc, Reporter: reporter}
}

// Instrument splices the prelude into method's body, creating its helper
// type and counter field on demand. It reports diag.DegenerateBody and
// leaves the method untouched when the body has no instructions.
func (in *Instrumenter) Instrument(ownerTypeID metadata.TypeID, methodID metadata.MethodID) bool {
	owner := in.Module.Type(ownerTypeID)
	method := in.Module.Method(methodID)
	if owner == nil || method == nil || method.Body == nil {
		return false
	}
	body := method.Body
	if body.Len() == 0 {
		diag.ReportWarning(in.Reporter, diag.DegenerateBody,
			diag.Location{Type: owner.FQN(), Method: method.Name},
			"method body has no instructions, skipped").Emit()
		return false
	}

	helper := in.Allocator.GetOrCreateHelper(owner)
	field := in.Allocator.GetOrCreateCounterField(helper, method)
	prelude := counters.Prelude(in.Module, helper, field)

	originalFirst := body.First()
	anchor := in.spliceAnchor(method, body, originalFirst)

	body.SpliceBefore(anchor, prelude)

	if anchor == originalFirst {
		body.ExtendHandlersFrom(originalFirst, body.First())
	}

	instr.Recompact(body)
	return true
}

// spliceAnchor returns the instruction the prelude must land before. For a
// constructor whose first instruction is a call to a base/chained
// constructor, the prelude is spliced after that call instead of before it,
// so the increment never runs ahead of the base-class construction the
// bytecode's verifier requires to happen first.
func (in *Instrumenter) spliceAnchor(method *metadata.Method, body *instr.Body, first instr.InstrID) instr.InstrID {
	if method.Name != metadata.ConstructorName {
		return first
	}
	head := body.At(first)
	if !head.Opcode.IsCall() || head.Operand.Kind != instr.OperandMethodRef {
		return first
	}
	if head.Operand.Method.Name != metadata.ConstructorName {
		return first
	}

	pos := body.IndexOf(first)
	if pos < 0 || pos+1 >= len(body.Order) {
		return first
	}
	return body.Order[pos+1]
}
