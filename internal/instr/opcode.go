// Package instr models a method body: its ordered instruction list, local
// variables, and exception handlers. Instructions are tagged-union values —
// an Opcode discriminator plus an Operand carrying exactly the payload that
// opcode needs — rather than an interface hierarchy, so splicing and
// recompaction can pattern-match on Kind without type assertions.
package instr

// Opcode discriminates the instruction kinds the weaver understands and
// needs to reason about. Every other opcode the underlying format defines
// passes through unexamined as OpOther, carrying its raw encoding in
// Operand.Raw so re-compaction never has to understand the full instruction
// set to preserve it byte-for-byte.
type Opcode uint16

const (
	OpOther Opcode = iota

	// OpLoadStaticField pushes the value of a static field.
	OpLoadStaticField
	// OpStoreStaticField pops a value and stores it to a static field.
	OpStoreStaticField
	// OpLoadConstI32 pushes a 32-bit integer constant.
	OpLoadConstI32
	// OpAdd pops two values and pushes their sum.
	OpAdd
	// OpCallStatic invokes a non-virtual method.
	OpCallStatic
	// OpCallVirtual invokes a method through virtual/interface dispatch.
	OpCallVirtual
	// OpBranch is an unconditional jump.
	OpBranch
	// OpBranchIfTrue is a conditional jump taken on a truthy top-of-stack.
	OpBranchIfTrue
	// OpBranchIfFalse is a conditional jump taken on a falsy top-of-stack.
	OpBranchIfFalse
	// OpReturn returns from the current method.
	OpReturn
)

// IsCall reports whether the opcode invokes another method.
func (o Opcode) IsCall() bool {
	return o == OpCallStatic || o == OpCallVirtual
}

// IsBranch reports whether the opcode transfers control to an operand-named
// target instruction.
func (o Opcode) IsBranch() bool {
	return o == OpBranch || o == OpBranchIfTrue || o == OpBranchIfFalse
}

// Form records which encoding width an instruction was read in or should be
// re-emitted in; re-compaction chooses the shortest Form that still fits the
// operand, mirroring the short-form/long-form opcode selection step.
type Form uint8

const (
	// FormShort is a compact encoding (e.g. a one-byte branch offset or a
	// small constant), valid only while the operand fits its narrow range.
	FormShort Form = iota
	// FormLong is the encoding that fits any operand value.
	FormLong
)
