// Package sig holds the canonical identity shapes shared by the metadata
// arena and the instruction operand model: a type, method, or field is named
// the same way whether it is being declared or merely referenced from an
// instruction operand in another module.
package sig

import "strconv"

// TypeSig identifies a type by fully-qualified name and generic arity,
// independent of which module's arena actually owns it. An empty Module
// means "the module currently being read or written".
type TypeSig struct {
	Module    string
	Namespace string
	Name      string
	Arity     int
}

// FQN returns the dotted namespace-qualified name, without arity.
func (t TypeSig) FQN() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// String renders a TypeSig for diagnostics: Module!Namespace.Name`arity.
func (t TypeSig) String() string {
	s := t.FQN()
	if t.Arity > 0 {
		s += "`" + strconv.Itoa(t.Arity)
	}
	if t.Module != "" {
		s = t.Module + "!" + s
	}
	return s
}

// MethodSig identifies a method by its declaring type and parameter-type
// signature. This is the "canonical callee signature" the caller-side
// instrumenter matches call sites against: it is stable across modules
// because it never depends on a metadata-token index.
type MethodSig struct {
	Type   TypeSig
	Name   string
	Params []TypeSig
}

// String renders a MethodSig for diagnostics.
func (m MethodSig) String() string {
	s := m.Type.String() + "::" + m.Name + "("
	for i, p := range m.Params {
		if i > 0 {
			s += ","
		}
		s += p.String()
	}
	return s + ")"
}

// Equal reports whether two method signatures name the same callee,
// ignoring Module (a reference and its declaration may live in different
// modules but still name the same logical method).
func (m MethodSig) Equal(o MethodSig) bool {
	if m.Type.FQN() != o.Type.FQN() || m.Type.Arity != o.Type.Arity || m.Name != o.Name {
		return false
	}
	if len(m.Params) != len(o.Params) {
		return false
	}
	for i := range m.Params {
		if m.Params[i].FQN() != o.Params[i].FQN() || m.Params[i].Arity != o.Params[i].Arity {
			return false
		}
	}
	return true
}

// Key returns a comparable string usable as a map key for MethodSig lookups
// (InstrumentationContext keys entries by this).
func (m MethodSig) Key() string {
	s := m.Type.FQN() + "`" + strconv.Itoa(m.Type.Arity) + "::" + m.Name + "("
	for i, p := range m.Params {
		if i > 0 {
			s += ","
		}
		s += p.FQN() + "`" + strconv.Itoa(p.Arity)
	}
	return s + ")"
}

// FieldSig identifies a field by its declaring type and name.
type FieldSig struct {
	Type TypeSig
	Name string
}

// String renders a FieldSig for diagnostics.
func (f FieldSig) String() string {
	return f.Type.String() + "::" + f.Name
}
