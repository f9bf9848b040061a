package instr

import (
	"fmt"

	"fortio.org/safecast"
)

// InstrID identifies an instruction inside one Body's arena. IDs are stable
// across splicing: inserting new instructions never changes the ID of an
// existing one, so branch targets and exception-handler boundaries that
// reference instructions by ID need no rewriting when a prelude is spliced
// in ahead of them.
type InstrID uint32

// NoInstrID marks the absence of an instruction reference.
const NoInstrID InstrID = 0

// IsValid reports whether the ID refers to an allocated instruction.
func (id InstrID) IsValid() bool { return id != NoInstrID }

// Instr is one instruction: an opcode plus the operand payload it needs.
// Form records the chosen encoding width; Recompact keeps it in sync with
// the operand after edits.
type Instr struct {
	Opcode  Opcode
	Operand Operand
	Form    Form
}

// Local describes one entry of a body's local-variable table.
type Local struct {
	Name string
	Type string
}

// Handler describes one exception-handler region, naming the covered try
// region and the handler's own instructions by ID (not offset), for the
// same splice-stability reason as branch targets.
type Handler struct {
	TryStart     InstrID
	TryEnd       InstrID
	HandlerStart InstrID
	HandlerEnd   InstrID
	CatchType    string
}

// Body is a method's ordered instruction list plus its local-variable and
// exception-handler tables. Instructions live in a slice-indexed arena
// (index 0 reserved as the sentinel, matching the rest of the module's
// arenas); Order gives their execution sequence as a list of arena IDs, kept
// separate from the arena so insertion never disturbs an existing ID.
type Body struct {
	nodes []Instr
	Order []InstrID
	Locals []Local
	Handlers []Handler
}

// NewBody returns an empty body ready to receive instructions.
func NewBody() *Body {
	return &Body{nodes: make([]Instr, 1)} // index 0 reserved for NoInstrID
}

// Len reports the number of instructions in execution order.
func (b *Body) Len() int { return len(b.Order) }

// Count reports the number of allocated instructions in the arena,
// including ones a codec may need to walk by ID directly (excludes the
// reserved sentinel slot at index 0).
func (b *Body) Count() int { return len(b.nodes) - 1 }

// At returns the instruction for id, or the zero Instr if id is invalid.
func (b *Body) At(id InstrID) Instr {
	if !id.IsValid() || int(id) >= len(b.nodes) {
		return Instr{}
	}
	return b.nodes[id]
}

// Set overwrites the instruction stored at id.
func (b *Body) Set(id InstrID, in Instr) {
	if id.IsValid() && int(id) < len(b.nodes) {
		b.nodes[id] = in
	}
}

// IndexOf returns the position of id within Order, or -1 if not present.
func (b *Body) IndexOf(id InstrID) int {
	for i, existing := range b.Order {
		if existing == id {
			return i
		}
	}
	return -1
}

// alloc appends in to the arena and returns its new stable ID.
func (b *Body) alloc(in Instr) InstrID {
	value, err := safecast.Conv[uint32](len(b.nodes))
	if err != nil {
		panic(fmt.Errorf("instruction arena overflow: %w", err))
	}
	id := InstrID(value)
	b.nodes = append(b.nodes, in)
	return id
}

// Append allocates in and adds it to the end of Order, returning its ID.
func (b *Body) Append(in Instr) InstrID {
	id := b.alloc(in)
	b.Order = append(b.Order, id)
	return id
}

// AllocForDecode allocates in without touching Order, for a codec
// reconstructing an arena whose IDs must come back exactly as encoded
// (arena population and Order are written back separately).
func (b *Body) AllocForDecode(in Instr) InstrID {
	return b.alloc(in)
}

// SpliceBefore allocates each of ins in order and inserts them into Order
// immediately before anchor, preserving every existing ID (and therefore
// every existing branch target and handler boundary). It returns the new
// instructions' IDs in insertion order.
//
// If anchor is not present in Order, the new instructions are appended to
// the end instead — this only happens for a degenerate, already-empty body,
// which callers are expected to have already rejected.
func (b *Body) SpliceBefore(anchor InstrID, ins []Instr) []InstrID {
	newIDs := make([]InstrID, len(ins))
	for i, in := range ins {
		newIDs[i] = b.alloc(in)
	}

	pos := b.IndexOf(anchor)
	if pos < 0 {
		b.Order = append(b.Order, newIDs...)
		return newIDs
	}

	grown := make([]InstrID, 0, len(b.Order)+len(newIDs))
	grown = append(grown, b.Order[:pos]...)
	grown = append(grown, newIDs...)
	grown = append(grown, b.Order[pos:]...)
	b.Order = grown
	return newIDs
}

// First returns the ID of the first instruction in execution order, or
// NoInstrID for an empty body.
func (b *Body) First() InstrID {
	if len(b.Order) == 0 {
		return NoInstrID
	}
	return b.Order[0]
}

// Instrs returns the body's instructions in execution order.
func (b *Body) Instrs() []Instr {
	out := make([]Instr, len(b.Order))
	for i, id := range b.Order {
		out[i] = b.At(id)
	}
	return out
}

// ExtendHandlersFrom widens every handler region whose TryStart is exactly
// oldFirst to start at newFirst instead, so a prelude spliced in front of a
// method's original first instruction stays covered by any handler that
// previously began at method entry (testable property 5: branch/handler
// preservation).
func (b *Body) ExtendHandlersFrom(oldFirst, newFirst InstrID) {
	if oldFirst == newFirst {
		return
	}
	for i := range b.Handlers {
		if b.Handlers[i].TryStart == oldFirst {
			b.Handlers[i].TryStart = newFirst
		}
	}
}
