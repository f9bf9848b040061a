package instr

import "math"

// Recompact re-derives the shortest legal Form for every instruction whose
// operand width can vary, mirroring the short-form/long-form opcode
// selection a real encoder performs after a body has been edited. Branch
// targets and handler boundaries need no fixup here because they are stored
// as stable InstrIDs rather than byte offsets; Recompact only has to revisit
// the operand-width decision, not the instruction graph's shape.
func Recompact(b *Body) {
	for _, id := range b.Order {
		in := b.At(id)
		switch in.Opcode {
		case OpLoadConstI32:
			if fitsShortConst(in.Operand.ConstI32) {
				in.Form = FormShort
			} else {
				in.Form = FormLong
			}
			b.Set(id, in)
		case OpBranch, OpBranchIfTrue, OpBranchIfFalse:
			if fitsShortBranch(b, id, in.Operand.Target) {
				in.Form = FormShort
			} else {
				in.Form = FormLong
			}
			b.Set(id, in)
		}
	}
}

func fitsShortConst(v int32) bool {
	return v >= math.MinInt8 && v <= math.MaxInt8
}

// fitsShortBranch approximates whether a branch's displacement would still
// fit a one-byte short-form offset by distance in instruction count between
// the branch and its target; a real encoder would measure bytes, but no
// instruction set is concretely emitted by this weaver, so instruction
// count stands in as the width signal.
func fitsShortBranch(b *Body, from, target InstrID) bool {
	fromPos := b.IndexOf(from)
	targetPos := b.IndexOf(target)
	if fromPos < 0 || targetPos < 0 {
		return false
	}
	delta := targetPos - fromPos
	if delta < 0 {
		delta = -delta
	}
	return delta <= math.MaxInt8
}
