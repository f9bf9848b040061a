package instr

import "github.com/chexiongsheng/InvokeTracker/internal/metadata/sig"

// OperandKind discriminates which field of Operand is meaningful.
type OperandKind uint8

const (
	OperandNone OperandKind = iota
	OperandConst
	OperandTypeRef
	OperandMethodRef
	OperandFieldRef
	OperandBranchTarget
	OperandRaw
)

// Operand is the tagged-union payload of an Instr. Only the field matching
// Kind is populated; the rest are zero values.
type Operand struct {
	Kind OperandKind

	ConstI32 int32
	Type     sig.TypeSig
	Method   sig.MethodSig
	Field    sig.FieldSig
	// Target is the stable ID of the instruction a branch resolves to.
	// Storing an ID instead of a byte or index offset means splicing new
	// instructions ahead of a branch target never requires rewriting any
	// existing operand.
	Target InstrID
	// Raw carries an opcode's original encoding verbatim for opcodes the
	// weaver does not interpret (OpOther).
	Raw []byte
}

// ConstOperand builds an Operand carrying a 32-bit integer constant.
func ConstOperand(v int32) Operand { return Operand{Kind: OperandConst, ConstI32: v} }

// FieldOperand builds an Operand referencing a field.
func FieldOperand(f sig.FieldSig) Operand { return Operand{Kind: OperandFieldRef, Field: f} }

// MethodOperand builds an Operand referencing a method.
func MethodOperand(m sig.MethodSig) Operand { return Operand{Kind: OperandMethodRef, Method: m} }

// BranchOperand builds an Operand naming a branch target instruction.
func BranchOperand(target InstrID) Operand { return Operand{Kind: OperandBranchTarget, Target: target} }
