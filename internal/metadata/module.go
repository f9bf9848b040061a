package metadata

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/chexiongsheng/InvokeTracker/internal/metadata/sig"
)

// PrimitiveUInt32 is the canonical signature of the host type system's
// 32-bit unsigned integer type, exposed by every Module's type-system handle
// (§3: "a type-system handle exposing the primitive 32-bit unsigned type").
var PrimitiveUInt32 = sig.TypeSig{Namespace: "System", Name: "UInt32"}

// Module is a single binary module's mutable in-memory metadata graph: an
// arena of Types, Methods, and Fields addressed by ID, a list of top-level
// Types in declaration order, and a writable table of other modules this
// one references.
type Module struct {
	Name string

	types   []Type
	methods []Method
	fields  []Field

	// TopLevel lists top-level (non-nested) types in declaration order.
	// New helper types are appended here, never inserted, so an in-progress
	// depth-first walk over a snapshot of this slice is never invalidated.
	TopLevel []TypeID

	// References is the writable module-reference table: the names of
	// other modules this module's metadata points into. EnsureReference
	// appends to it on demand when a caller-side splice imports a
	// cross-module field reference.
	References []string
}

// New returns an empty module ready to receive types.
func New(name string) *Module {
	return &Module{
		Name:    name,
		types:   make([]Type, 1), // index 0 reserved for NoTypeID
		methods: make([]Method, 1),
		fields:  make([]Field, 1),
	}
}

// UInt32Ref returns the canonical type-system handle counter fields are
// declared with.
func (m *Module) UInt32Ref() sig.TypeSig {
	ref := PrimitiveUInt32
	return ref
}

// ConstructorName is the reserved simple name the loader assigns to
// instance constructors, used to recognize a constructor's base/chained-call
// prologue for the body instrumenter's splice-anchor decision.
const ConstructorName = ".ctor"

// SigOf builds the canonical signature for an allocated type, stamping in
// this module's name so a reference to it from another module's arena
// still resolves back here.
func (m *Module) SigOf(id TypeID) sig.TypeSig {
	t := m.Type(id)
	if t == nil {
		return sig.TypeSig{}
	}
	return sig.TypeSig{Module: m.Name, Namespace: t.Namespace, Name: t.Name, Arity: t.Arity}
}

// NewType allocates a type in the arena. t.Parent is NoTypeID for a
// top-level type; callers are responsible for appending the ID to TopLevel or to the
// parent's Nested slice as appropriate.
func (m *Module) NewType(t Type) TypeID {
	id := m.allocTypeID()
	m.types = append(m.types, t)
	return id
}

func (m *Module) allocTypeID() TypeID {
	v, err := safecast.Conv[uint32](len(m.types))
	if err != nil {
		panic(fmt.Errorf("type arena overflow: %w", err))
	}
	return TypeID(v)
}

// Type returns a mutable pointer to the type with the given ID, or nil for
// an invalid ID.
func (m *Module) Type(id TypeID) *Type {
	if !id.IsValid() || int(id) >= len(m.types) {
		return nil
	}
	return &m.types[id]
}

// AddTopLevelType appends a newly allocated type to TopLevel.
func (m *Module) AddTopLevelType(id TypeID) {
	m.TopLevel = append(m.TopLevel, id)
}

// NewMethod allocates a method in the arena and returns its ID. Callers
// append the ID to the declaring type's Methods slice.
func (m *Module) NewMethod(meth Method) MethodID {
	v, err := safecast.Conv[uint32](len(m.methods))
	if err != nil {
		panic(fmt.Errorf("method arena overflow: %w", err))
	}
	id := MethodID(v)
	m.methods = append(m.methods, meth)
	return id
}

// Method returns a mutable pointer to the method with the given ID, or nil
// for an invalid ID.
func (m *Module) Method(id MethodID) *Method {
	if !id.IsValid() || int(id) >= len(m.methods) {
		return nil
	}
	return &m.methods[id]
}

// NewField allocates a field in the arena and returns its ID. Callers
// append the ID to the declaring type's Fields slice.
func (m *Module) NewField(f Field) FieldID {
	v, err := safecast.Conv[uint32](len(m.fields))
	if err != nil {
		panic(fmt.Errorf("field arena overflow: %w", err))
	}
	id := FieldID(v)
	m.fields = append(m.fields, f)
	return id
}

// Field returns a mutable pointer to the field with the given ID, or nil for
// an invalid ID.
func (m *Module) Field(id FieldID) *Field {
	if !id.IsValid() || int(id) >= len(m.fields) {
		return nil
	}
	return &m.fields[id]
}

// EnsureReference appends moduleName to References if it is not already
// present, and reports whether it added a new entry.
func (m *Module) EnsureReference(moduleName string) bool {
	if moduleName == "" || moduleName == m.Name {
		return false
	}
	for _, existing := range m.References {
		if existing == moduleName {
			return false
		}
	}
	m.References = append(m.References, moduleName)
	return true
}

// AllTypes returns every allocated type's ID (arena order, not declaration
// order; used by code that needs to visit helper types too).
func (m *Module) AllTypes() []TypeID {
	out := make([]TypeID, 0, len(m.types)-1)
	for i := 1; i < len(m.types); i++ {
		out = append(out, TypeID(i)) //nolint:gosec // bounded by len(m.types)
	}
	return out
}

// TypeCount, MethodCount, and FieldCount report arena sizes including the
// reserved sentinel slot at index 0, for codecs that serialize the arenas
// by walking IDs 1..Count-1 directly.
func (m *Module) TypeCount() int   { return len(m.types) }
func (m *Module) MethodCount() int { return len(m.methods) }
func (m *Module) FieldCount() int  { return len(m.fields) }
