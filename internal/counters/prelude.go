package counters

import (
	"github.com/chexiongsheng/InvokeTracker/internal/instr"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata/sig"
)

// Prelude builds the four-instruction increment sequence both the body
// instrumenter and the caller-side instrumenter splice in:
// load-static-field; load-const 1; add; store-static-field.
func Prelude(mod *metadata.Module, helper metadata.TypeID, field metadata.FieldID) []instr.Instr {
	f := mod.Field(field)
	fieldSig := sig.FieldSig{Type: mod.SigOf(helper), Name: f.Name}
	return []instr.Instr{
		{Opcode: instr.OpLoadStaticField, Operand: instr.FieldOperand(fieldSig)},
		{Opcode: instr.OpLoadConstI32, Operand: instr.ConstOperand(1)},
		{Opcode: instr.OpAdd},
		{Opcode: instr.OpStoreStaticField, Operand: instr.FieldOperand(fieldSig)},
	}
}
