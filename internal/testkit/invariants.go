// Package testkit checks the quantified invariants a weave run must hold:
// counter presence and uniqueness, idempotence, round-trip and
// branch/handler preservation, caller-side completeness, filter
// correctness, and backup restore fidelity.
package testkit

import (
	"bytes"
	"fmt"

	"github.com/chexiongsheng/InvokeTracker/internal/instr"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata"
	"github.com/chexiongsheng/InvokeTracker/internal/naming"
)

// ExpectedCounterNames predicts the helper type and counter field names a
// method on the given type would receive under prefix.
func ExpectedCounterNames(typeSimpleName, methodSimpleName, prefix string) (helperName, fieldName string) {
	helperName = naming.HelperName(naming.SanitizeTypeName(typeSimpleName))
	fieldName = naming.FieldName(prefix, methodSimpleName)
	return helperName, fieldName
}

// CheckCounterPresent verifies testable property 1: the module has a helper
// type named per ExpectedCounterNames, public/sealed/abstract, non-generic,
// in the target's namespace, carrying a public static uint32 field of the
// predicted name; and woven's prelude loads/stores exactly that field.
func CheckCounterPresent(mod *metadata.Module, namespace, typeSimpleName string, method *metadata.Method, prefix string, woven *instr.Body) error {
	helperName, fieldName := ExpectedCounterNames(typeSimpleName, method.Name, prefix)

	var helper *metadata.Type
	for _, id := range mod.TopLevel {
		t := mod.Type(id)
		if t != nil && t.Namespace == namespace && t.Name == helperName {
			helper = t
			break
		}
	}
	if helper == nil {
		return fmt.Errorf("no helper type %s.%s found", namespace, helperName)
	}
	if helper.Arity != 0 {
		return fmt.Errorf("helper type %s.%s must be non-generic, got arity %d", namespace, helperName, helper.Arity)
	}
	if !helper.Flags.Has(metadata.TypeFlagSealed) || !helper.Flags.Has(metadata.TypeFlagAbstract) {
		return fmt.Errorf("helper type %s.%s must be sealed+abstract, flags=%v", namespace, helperName, helper.Flags)
	}

	var field *metadata.Field
	for _, fid := range helper.Fields {
		f := mod.Field(fid)
		if f != nil && f.Name == fieldName {
			field = f
			break
		}
	}
	if field == nil {
		return fmt.Errorf("no counter field %s on helper %s.%s", fieldName, namespace, helperName)
	}
	if !field.Static || field.Visibility != metadata.VisibilityPublic {
		return fmt.Errorf("counter field %s must be public static, got static=%v vis=%v", fieldName, field.Static, field.Visibility)
	}
	if field.Type != mod.UInt32Ref() {
		return fmt.Errorf("counter field %s must be unsigned 32-bit, got %v", fieldName, field.Type)
	}

	return checkPreludeAt(woven, woven.First(), fieldName)
}

// checkPreludeAt verifies the four-instruction prelude (ldsfld; ldc.i4 1;
// add; stsfld) begins at anchor and targets fieldName.
func checkPreludeAt(b *instr.Body, anchor instr.InstrID, fieldName string) error {
	pos := b.IndexOf(anchor)
	if pos < 0 {
		return fmt.Errorf("anchor instruction not present in body")
	}
	order := b.Order
	if pos+4 > len(order) {
		return fmt.Errorf("body too short for a four-instruction prelude at position %d", pos)
	}
	want := []instr.Opcode{instr.OpLoadStaticField, instr.OpLoadConstI32, instr.OpAdd, instr.OpStoreStaticField}
	for i, op := range want {
		got := b.At(order[pos+i])
		if got.Opcode != op {
			return fmt.Errorf("prelude instruction %d: want opcode %v, got %v", i, op, got.Opcode)
		}
	}
	load := b.At(order[pos])
	store := b.At(order[pos+3])
	if load.Operand.Kind != instr.OperandFieldRef || load.Operand.Field.Name != fieldName {
		return fmt.Errorf("prelude load targets field %q, want %q", load.Operand.Field.Name, fieldName)
	}
	if store.Operand.Kind != instr.OperandFieldRef || store.Operand.Field.Name != fieldName {
		return fmt.Errorf("prelude store targets field %q, want %q", store.Operand.Field.Name, fieldName)
	}
	constLoad := b.At(order[pos+1])
	if constLoad.Operand.Kind != instr.OperandConst || constLoad.Operand.ConstI32 != 1 {
		return fmt.Errorf("prelude constant must be 1, got %v", constLoad.Operand)
	}
	return nil
}

// CheckCounterUniqueness verifies testable property 2: no two top-level
// types share a (namespace, name), and within each type no two fields
// share a name.
func CheckCounterUniqueness(mod *metadata.Module) error {
	seen := make(map[string]metadata.TypeID)
	for _, id := range mod.TopLevel {
		t := mod.Type(id)
		if t == nil {
			continue
		}
		key := t.FQN()
		if other, ok := seen[key]; ok {
			return fmt.Errorf("duplicate top-level type %s: ids %d and %d", key, other, id)
		}
		seen[key] = id

		seenFields := make(map[string]metadata.FieldID, len(t.Fields))
		for _, fid := range t.Fields {
			f := mod.Field(fid)
			if f == nil {
				continue
			}
			if other, ok := seenFields[f.Name]; ok {
				return fmt.Errorf("type %s has duplicate field %q: ids %d and %d", key, f.Name, other, fid)
			}
			seenFields[f.Name] = fid
		}
	}
	return nil
}

// CheckRoundTrip verifies testable property 4: skipping preludeLen
// instructions from the front of woven yields exactly original's
// instruction sequence (opcode, operand, order).
func CheckRoundTrip(original, woven *instr.Body, preludeLen int) error {
	origInstrs := original.Instrs()
	wovenInstrs := woven.Instrs()
	if len(wovenInstrs) != len(origInstrs)+preludeLen {
		return fmt.Errorf("woven body has %d instructions, want %d (original) + %d (prelude)",
			len(wovenInstrs), len(origInstrs), preludeLen)
	}
	tail := wovenInstrs[preludeLen:]
	for i, want := range origInstrs {
		got := tail[i]
		if got.Opcode != want.Opcode {
			return fmt.Errorf("instruction %d: opcode changed from %v to %v", i, want.Opcode, got.Opcode)
		}
		if !operandEqual(got.Operand, want.Operand) {
			return fmt.Errorf("instruction %d: operand changed from %+v to %+v", i, want.Operand, got.Operand)
		}
	}
	return nil
}

func operandEqual(a, b instr.Operand) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case instr.OperandConst:
		return a.ConstI32 == b.ConstI32
	case instr.OperandTypeRef:
		return a.Type == b.Type
	case instr.OperandMethodRef:
		return a.Method.Equal(b.Method)
	case instr.OperandFieldRef:
		return a.Field == b.Field
	case instr.OperandBranchTarget:
		return a.Target == b.Target
	case instr.OperandRaw:
		return bytes.Equal(a.Raw, b.Raw)
	default:
		return true
	}
}

// CheckBranchTargetsPreserved verifies testable property 5's branch half:
// every branch instruction present in both original and woven (matched by
// InstrID, which splicing never reassigns) still targets the same ID, and
// that ID still resolves to the same instruction content in woven as it did
// in original.
func CheckBranchTargetsPreserved(original, woven *instr.Body) error {
	for id := instr.InstrID(1); int(id) <= original.Count(); id++ {
		in := original.At(id)
		if !in.Opcode.IsBranch() {
			continue
		}
		wovenIn := woven.At(id)
		if wovenIn.Operand.Target != in.Operand.Target {
			return fmt.Errorf("branch at instruction %d retargeted from %d to %d", id, in.Operand.Target, wovenIn.Operand.Target)
		}
		origTarget := original.At(in.Operand.Target)
		wovenTarget := woven.At(in.Operand.Target)
		if origTarget.Opcode != wovenTarget.Opcode {
			return fmt.Errorf("branch target %d changed opcode from %v to %v", in.Operand.Target, origTarget.Opcode, wovenTarget.Opcode)
		}
	}
	return nil
}

// CheckHandlerPreservation verifies testable property 5's handler half:
// every handler region in original still exists in woven with the same
// bounds, except a TryStart equal to original's first instruction, which
// must widen to woven's first instruction (the spliced-in prelude).
func CheckHandlerPreservation(original, woven *instr.Body) error {
	if len(original.Handlers) != len(woven.Handlers) {
		return fmt.Errorf("handler count changed from %d to %d", len(original.Handlers), len(woven.Handlers))
	}
	origFirst := original.First()
	wovenFirst := woven.First()
	for i, oh := range original.Handlers {
		wh := woven.Handlers[i]
		wantTryStart := oh.TryStart
		if oh.TryStart == origFirst {
			wantTryStart = wovenFirst
		}
		if wh.TryStart != wantTryStart {
			return fmt.Errorf("handler %d: TryStart is %d, want %d", i, wh.TryStart, wantTryStart)
		}
		if wh.TryEnd != oh.TryEnd || wh.HandlerStart != oh.HandlerStart || wh.HandlerEnd != oh.HandlerEnd {
			return fmt.Errorf("handler %d: non-TryStart bounds changed from %+v to %+v", i, oh, wh)
		}
		if wh.CatchType != oh.CatchType {
			return fmt.Errorf("handler %d: catch type changed from %q to %q", i, oh.CatchType, wh.CatchType)
		}
	}
	return nil
}

// CheckCallerSiteCompleteness verifies testable property 6: every call
// instruction in woven whose callee key equals calleeKey is immediately
// preceded by a four-instruction prelude targeting fieldName, and no call
// instruction with a different callee key is preceded by a prelude
// targeting fieldName.
func CheckCallerSiteCompleteness(woven *instr.Body, calleeKey, fieldName string) error {
	order := woven.Order
	for i, id := range order {
		in := woven.At(id)
		if !in.Opcode.IsCall() || in.Operand.Kind != instr.OperandMethodRef {
			continue
		}
		precededByOurPrelude := i >= 4 && preludeMatches(woven, order[i-4:i], fieldName)
		if in.Operand.Method.Key() == calleeKey {
			if !precededByOurPrelude {
				return fmt.Errorf("call site at position %d targeting %s is missing its prelude", i, calleeKey)
			}
		} else if precededByOurPrelude {
			return fmt.Errorf("call site at position %d targeting %s is preceded by a prelude for field %s", i, in.Operand.Method.Key(), fieldName)
		}
	}
	return nil
}

func preludeMatches(b *instr.Body, ids []instr.InstrID, fieldName string) bool {
	want := []instr.Opcode{instr.OpLoadStaticField, instr.OpLoadConstI32, instr.OpAdd, instr.OpStoreStaticField}
	for i, op := range want {
		in := b.At(ids[i])
		if in.Opcode != op {
			return false
		}
	}
	load := b.At(ids[0])
	store := b.At(ids[3])
	return load.Operand.Field.Name == fieldName && store.Operand.Field.Name == fieldName
}

// CheckFilteredOutNoCounters verifies testable property 7: a type the
// filter excluded contributed no helper type.
func CheckFilteredOutNoCounters(mod *metadata.Module, excludedNamespace, excludedTypeName string) error {
	helperName := naming.HelperName(naming.SanitizeTypeName(excludedTypeName))
	for _, id := range mod.TopLevel {
		t := mod.Type(id)
		if t != nil && t.Namespace == excludedNamespace && t.Name == helperName {
			return fmt.Errorf("filtered-out type %s.%s has a helper %s anyway", excludedNamespace, excludedTypeName, helperName)
		}
	}
	return nil
}

// CheckIdempotentOutput verifies testable property 3: re-weaving an
// already-instrumented module's encoded bytes is a byte-for-byte no-op.
func CheckIdempotentOutput(before, after []byte) error {
	if !bytes.Equal(before, after) {
		return fmt.Errorf("idempotent re-weave changed the encoded module (%d bytes before, %d after)", len(before), len(after))
	}
	return nil
}

// CheckRestoreRoundTrip verifies testable property 8: restoring from backup
// yields a file byte-identical to the pre-weave input.
func CheckRestoreRoundTrip(preWeave, restored []byte) error {
	if !bytes.Equal(preWeave, restored) {
		return fmt.Errorf("restored file does not match pre-weave input (%d bytes original, %d restored)", len(preWeave), len(restored))
	}
	return nil
}
