package weave

import (
	"testing"

	"github.com/chexiongsheng/InvokeTracker/internal/bodyweave"
	"github.com/chexiongsheng/InvokeTracker/internal/callerweave"
	"github.com/chexiongsheng/InvokeTracker/internal/counters"
	"github.com/chexiongsheng/InvokeTracker/internal/diag"
	"github.com/chexiongsheng/InvokeTracker/internal/filter"
	"github.com/chexiongsheng/InvokeTracker/internal/guard"
	"github.com/chexiongsheng/InvokeTracker/internal/instr"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata/sig"
	"github.com/chexiongsheng/InvokeTracker/internal/testkit"
)

// runPipeline exercises the same phase sequence Run composes (Filter setup,
// caller-side discover+scan, body instrumentation, caller-side splice),
// directly over an in-memory module fixture rather than through modio, so
// these scenarios run without touching the filesystem.
func runPipeline(mod *metadata.Module, prefix string, include, exclude []string) (*counters.Allocator, *callerweave.Context) {
	filt := filter.New(include, exclude, false)
	idx := counters.NewHelperIndex()
	alloc := counters.NewAllocator(mod, prefix, idx)

	ctx := callerweave.NewContext()
	callerweave.Discover(mod, alloc, filt, ctx)
	callerweave.Scan(mod, ctx)

	bodyInstr := bodyweave.New(mod, alloc, diag.NopReporter{})
	mod.Walk(func(typeID metadata.TypeID) {
		t := mod.Type(typeID)
		if t == nil || !filt.TypeEligible(t) {
			return
		}
		for _, methodID := range t.Methods {
			method := mod.Method(methodID)
			if !filt.MethodEligibleForBody(method) {
				continue
			}
			bodyInstr.Instrument(typeID, methodID)
		}
	})

	callerweave.Splice(ctx, diag.NopReporter{})
	return alloc, ctx
}

// S1: a simple non-generic type with one concrete method gets a counter
// prelude spliced at its body's entry point.
func TestScenarioSimpleMethodGetsCounterPrelude(t *testing.T) {
	mod := metadata.New("Demo")
	typeID := mod.NewType(metadata.Type{Namespace: "Game.Core", Name: "Player"})
	mod.AddTopLevelType(typeID)

	original := instr.NewBody()
	original.Append(instr.Instr{Opcode: instr.OpLoadConstI32, Operand: instr.ConstOperand(42)})
	original.Append(instr.Instr{Opcode: instr.OpReturn})

	woven := instr.NewBody()
	woven.Append(instr.Instr{Opcode: instr.OpLoadConstI32, Operand: instr.ConstOperand(42)})
	woven.Append(instr.Instr{Opcode: instr.OpReturn})

	methodID := mod.NewMethod(metadata.Method{Declaring: typeID, Name: "DoWork", Body: woven})
	mod.Type(typeID).Methods = append(mod.Type(typeID).Methods, methodID)

	runPipeline(mod, "_invokeCount_", nil, nil)

	method := mod.Method(methodID)
	if err := testkit.CheckCounterPresent(mod, "Game.Core", "Player", method, "_invokeCount_", method.Body); err != nil {
		t.Fatalf("CheckCounterPresent: %v", err)
	}
	if err := testkit.CheckRoundTrip(original, method.Body, 4); err != nil {
		t.Fatalf("CheckRoundTrip: %v", err)
	}
	if err := testkit.CheckCounterUniqueness(mod); err != nil {
		t.Fatalf("CheckCounterUniqueness: %v", err)
	}
}

// S2: a generic type's sanitized helper name collapses the arity backtick,
// and its method still receives a counter under the usual naming rule.
func TestScenarioGenericTypeUsesSanitizedHelperName(t *testing.T) {
	mod := metadata.New("Demo")
	typeID := mod.NewType(metadata.Type{Namespace: "Game.Core", Name: "Box`1", Arity: 1})
	mod.AddTopLevelType(typeID)

	body := instr.NewBody()
	body.Append(instr.Instr{Opcode: instr.OpReturn})
	methodID := mod.NewMethod(metadata.Method{Declaring: typeID, Name: "Get", Body: body})
	mod.Type(typeID).Methods = append(mod.Type(typeID).Methods, methodID)

	runPipeline(mod, "_invokeCount_", nil, nil)

	var helper *metadata.Type
	for _, id := range mod.TopLevel {
		ty := mod.Type(id)
		if ty.Name == "Box_1_InvokeCounters" {
			helper = ty
		}
	}
	if helper == nil {
		t.Fatalf("expected a helper type named Box_1_InvokeCounters")
	}
	if helper.Arity != 0 {
		t.Fatalf("helper for a generic type must itself be non-generic, got arity %d", helper.Arity)
	}
}

// S3: an abstract interface-style method has no body, so it is counted at
// its call sites instead, and caller-side completeness holds: every call to
// it is preceded by its prelude, and no other call site is.
func TestScenarioInterfaceMethodCountedAtCallSites(t *testing.T) {
	mod := metadata.New("Demo")
	shapeID := mod.NewType(metadata.Type{Namespace: "Game.Core", Name: "Shape", Flags: metadata.TypeFlagAbstract})
	mod.AddTopLevelType(shapeID)
	areaID := mod.NewMethod(metadata.Method{Declaring: shapeID, Name: "Area", Flags: metadata.MethodFlagAbstract})
	mod.Type(shapeID).Methods = append(mod.Type(shapeID).Methods, areaID)

	areaOperand := instr.MethodOperand(sig.MethodSig{Type: mod.SigOf(shapeID), Name: "Area"})
	otherOperand := instr.MethodOperand(sig.MethodSig{Type: mod.SigOf(shapeID), Name: "Other"})

	circleID := mod.NewType(metadata.Type{Namespace: "Game.Core", Name: "Circle"})
	mod.AddTopLevelType(circleID)
	body := instr.NewBody()
	body.Append(instr.Instr{Opcode: instr.OpCallVirtual, Operand: areaOperand})
	body.Append(instr.Instr{Opcode: instr.OpCallVirtual, Operand: otherOperand})
	body.Append(instr.Instr{Opcode: instr.OpReturn})
	drawID := mod.NewMethod(metadata.Method{Declaring: circleID, Name: "Draw", Body: body})
	mod.Type(circleID).Methods = append(mod.Type(circleID).Methods, drawID)

	runPipeline(mod, "_invokeCount_", nil, nil)

	areaKey := sig.MethodSig{Type: mod.SigOf(shapeID), Name: "Area"}.Key()
	woven := mod.Method(drawID).Body
	if err := testkit.CheckCallerSiteCompleteness(woven, areaKey, "_invokeCount_Area"); err != nil {
		t.Fatalf("CheckCallerSiteCompleteness: %v", err)
	}
}

// S4: re-running the idempotence guard after a weave reports the module as
// already instrumented.
func TestScenarioIdempotenceGuardTripsAfterOneRun(t *testing.T) {
	mod := metadata.New("Demo")
	typeID := mod.NewType(metadata.Type{Namespace: "Game.Core", Name: "Player"})
	mod.AddTopLevelType(typeID)
	body := instr.NewBody()
	body.Append(instr.Instr{Opcode: instr.OpReturn})
	methodID := mod.NewMethod(metadata.Method{Declaring: typeID, Name: "DoWork", Body: body})
	mod.Type(typeID).Methods = append(mod.Type(typeID).Methods, methodID)

	if guard.AlreadyInstrumented(mod, "_invokeCount_") {
		t.Fatalf("a fresh module must not look already-instrumented")
	}

	runPipeline(mod, "_invokeCount_", nil, nil)

	if !guard.AlreadyInstrumented(mod, "_invokeCount_") {
		t.Fatalf("module must look already-instrumented immediately after one weave pass")
	}
}

// Filtered-out namespaces never get a helper type, even though their
// methods would otherwise be eligible.
func TestScenarioExcludedNamespaceGetsNoCounters(t *testing.T) {
	mod := metadata.New("Demo")
	typeID := mod.NewType(metadata.Type{Namespace: "Game.Generated", Name: "Widget"})
	mod.AddTopLevelType(typeID)
	body := instr.NewBody()
	body.Append(instr.Instr{Opcode: instr.OpReturn})
	methodID := mod.NewMethod(metadata.Method{Declaring: typeID, Name: "Build", Body: body})
	mod.Type(typeID).Methods = append(mod.Type(typeID).Methods, methodID)

	runPipeline(mod, "_invokeCount_", nil, []string{"Game.Generated"})

	if err := testkit.CheckFilteredOutNoCounters(mod, "Game.Generated", "Widget"); err != nil {
		t.Fatalf("CheckFilteredOutNoCounters: %v", err)
	}
}
