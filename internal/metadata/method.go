package metadata

import (
	"github.com/chexiongsheng/InvokeTracker/internal/instr"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata/sig"
)

// Method is input-only: the weaver never creates new methods, only mutates
// an existing one's Body by splicing instructions in.
type Method struct {
	Declaring  TypeID
	Name       string
	Arity      int
	Params     []sig.TypeSig
	Attributes []string
	Flags      MethodFlags
	// Body is nil for abstract, interface-slot, and extern methods.
	Body *instr.Body
}

// HasBody reports whether the method has instructions to instrument directly.
func (m *Method) HasBody() bool { return m.Body != nil }

// HasAttribute reports whether the method carries a custom attribute by name.
func (m *Method) HasAttribute(name string) bool {
	for _, a := range m.Attributes {
		if a == name {
			return true
		}
	}
	return false
}

// ParamSigs returns the method's parameter-type signature, used verbatim as
// the tail of its canonical callee signature.
func (m *Method) ParamSigs() []sig.TypeSig { return m.Params }
