package metadata

// Type is a class/interface/value-type declaration. Most exist because the
// Loader read them from the input module; helper types are appended to the
// arena and to the owning Module's top-level list during weaving.
type Type struct {
	Namespace string
	Name      string
	Arity     int
	// Parent is the enclosing type's ID, or NoTypeID for a top-level type.
	Parent     TypeID
	Nested     []TypeID
	Fields     []FieldID
	Methods    []MethodID
	Attributes []string
	Flags      TypeFlags
}

// FQN returns the dotted namespace-qualified simple name, without arity.
func (t *Type) FQN() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// HasAttribute reports whether the type carries a custom attribute by name.
func (t *Type) HasAttribute(name string) bool {
	for _, a := range t.Attributes {
		if a == name {
			return true
		}
	}
	return false
}
