package callerweave

import (
	"testing"

	"github.com/chexiongsheng/InvokeTracker/internal/counters"
	"github.com/chexiongsheng/InvokeTracker/internal/diag"
	"github.com/chexiongsheng/InvokeTracker/internal/filter"
	"github.com/chexiongsheng/InvokeTracker/internal/instr"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata/sig"
)

// methodSigOf builds the canonical MethodSig a call instruction's operand
// would carry for method declared on ownerID within mod.
func methodSigOf(mod *metadata.Module, ownerID metadata.TypeID, method *metadata.Method) sig.MethodSig {
	return sig.MethodSig{Type: mod.SigOf(ownerID), Name: method.Name, Params: method.Params}
}

func abstractShapeFixture() (mod *metadata.Module, shapeID metadata.TypeID, areaID metadata.MethodID) {
	mod = metadata.New("Demo")
	shapeID = mod.NewType(metadata.Type{Namespace: "Game.Core", Name: "Shape", Flags: metadata.TypeFlagAbstract})
	mod.AddTopLevelType(shapeID)
	areaID = mod.NewMethod(metadata.Method{Declaring: shapeID, Name: "Area", Flags: metadata.MethodFlagAbstract})
	mod.Type(shapeID).Methods = append(mod.Type(shapeID).Methods, areaID)
	return mod, shapeID, areaID
}

func TestDiscoverRegistersAbstractMethodsByCanonicalKey(t *testing.T) {
	mod, shapeID, areaID := abstractShapeFixture()

	alloc := counters.NewAllocator(mod, "_invokeCount_", nil)
	filt := filter.New(nil, nil, false)
	ctx := NewContext()

	Discover(mod, alloc, filt, ctx)

	key := KeyOf(mod, shapeID, mod.Method(areaID))
	entry, ok := ctx.Lookup(key)
	if !ok {
		t.Fatalf("Discover did not register the abstract method under its canonical key")
	}
	if entry.Field.Name != "_invokeCount_Area" {
		t.Fatalf("registered field = %q, want _invokeCount_Area", entry.Field.Name)
	}
	if alloc.FieldsCreated != 1 {
		t.Fatalf("FieldsCreated = %d, want 1", alloc.FieldsCreated)
	}
}

func TestScanFindsOnlyMatchingCallSites(t *testing.T) {
	mod, shapeID, areaID := abstractShapeFixture()

	alloc := counters.NewAllocator(mod, "_invokeCount_", nil)
	filt := filter.New(nil, nil, false)
	ctx := NewContext()
	Discover(mod, alloc, filt, ctx)

	areaKey := KeyOf(mod, shapeID, mod.Method(areaID))

	circleID := mod.NewType(metadata.Type{Namespace: "Game.Core", Name: "Circle"})
	mod.AddTopLevelType(circleID)
	body := instr.NewBody()
	body.Append(instr.Instr{Opcode: instr.OpCallVirtual, Operand: instr.MethodOperand(methodSigOf(mod, shapeID, mod.Method(areaID)))})
	body.Append(instr.Instr{Opcode: instr.OpCallStatic, Operand: instr.MethodOperand(methodSigOf(mod, shapeID, &metadata.Method{Name: "Unrelated"}))})
	body.Append(instr.Instr{Opcode: instr.OpReturn})
	drawID := mod.NewMethod(metadata.Method{Declaring: circleID, Name: "Draw", Body: body})
	mod.Type(circleID).Methods = append(mod.Type(circleID).Methods, drawID)

	Scan(mod, ctx)

	matched := 0
	for _, site := range ctx.Sites {
		if site.CalleeKey == areaKey {
			matched++
		}
	}
	if matched != 1 {
		t.Fatalf("Scan recorded %d matching call sites, want 1", matched)
	}
}

func TestSpliceInsertsPreludeBeforeEachCallSite(t *testing.T) {
	mod, shapeID, areaID := abstractShapeFixture()

	alloc := counters.NewAllocator(mod, "_invokeCount_", nil)
	filt := filter.New(nil, nil, false)
	ctx := NewContext()
	Discover(mod, alloc, filt, ctx)

	circleID := mod.NewType(metadata.Type{Namespace: "Game.Core", Name: "Circle"})
	mod.AddTopLevelType(circleID)
	body := instr.NewBody()
	call := body.Append(instr.Instr{Opcode: instr.OpCallVirtual, Operand: instr.MethodOperand(methodSigOf(mod, shapeID, mod.Method(areaID)))})
	body.Append(instr.Instr{Opcode: instr.OpReturn})
	drawID := mod.NewMethod(metadata.Method{Declaring: circleID, Name: "Draw", Body: body})
	mod.Type(circleID).Methods = append(mod.Type(circleID).Methods, drawID)

	Scan(mod, ctx)
	spliced := Splice(ctx, diag.NopReporter{})
	if spliced != 1 {
		t.Fatalf("Splice spliced %d sites, want 1", spliced)
	}

	wovenBody := mod.Method(drawID).Body
	instrs := wovenBody.Instrs()
	if instrs[0].Opcode != instr.OpLoadStaticField {
		t.Fatalf("first instruction after splice = %v, want OpLoadStaticField", instrs[0].Opcode)
	}
	if wovenBody.At(call).Opcode != instr.OpCallVirtual {
		t.Fatalf("original call instruction must still be present and unchanged")
	}
}

func TestSpliceImportsCrossModuleReference(t *testing.T) {
	providerMod, shapeID, areaID := abstractShapeFixture()
	providerMod.Name = "ShapeLib"
	// re-derive shapeID/areaID sigs against the renamed module
	alloc := counters.NewAllocator(providerMod, "_invokeCount_", nil)
	filt := filter.New(nil, nil, false)
	ctx := NewContext()
	Discover(providerMod, alloc, filt, ctx)

	callerMod := metadata.New("Game")
	circleID := callerMod.NewType(metadata.Type{Namespace: "Game.Core", Name: "Circle"})
	callerMod.AddTopLevelType(circleID)
	body := instr.NewBody()
	body.Append(instr.Instr{Opcode: instr.OpCallVirtual, Operand: instr.MethodOperand(methodSigOf(providerMod, shapeID, providerMod.Method(areaID)))})
	body.Append(instr.Instr{Opcode: instr.OpReturn})
	drawID := callerMod.NewMethod(metadata.Method{Declaring: circleID, Name: "Draw", Body: body})
	callerMod.Type(circleID).Methods = append(callerMod.Type(circleID).Methods, drawID)

	Scan(callerMod, ctx)
	Splice(ctx, diag.NopReporter{})

	found := false
	for _, ref := range callerMod.References {
		if ref == "ShapeLib" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Splice must import the counter field's declaring module into the caller's reference table, got %v", callerMod.References)
	}
}
