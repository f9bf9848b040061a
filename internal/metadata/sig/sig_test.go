package sig

import "testing"

func TestMethodSigEqualIgnoresModule(t *testing.T) {
	a := MethodSig{Type: TypeSig{Module: "A", Namespace: "Demo", Name: "Foo"}, Name: "Bar"}
	b := MethodSig{Type: TypeSig{Module: "B", Namespace: "Demo", Name: "Foo"}, Name: "Bar"}
	if !a.Equal(b) {
		t.Fatalf("Equal should ignore the Module field")
	}
}

func TestMethodSigEqualComparesParams(t *testing.T) {
	a := MethodSig{Type: TypeSig{Name: "Foo"}, Name: "Bar", Params: []TypeSig{{Name: "Int32"}}}
	b := MethodSig{Type: TypeSig{Name: "Foo"}, Name: "Bar", Params: []TypeSig{{Name: "String"}}}
	if a.Equal(b) {
		t.Fatalf("Equal should distinguish differing parameter types")
	}
}

func TestMethodSigKeyIgnoresModuleButIncludesArity(t *testing.T) {
	a := MethodSig{Type: TypeSig{Module: "A", Name: "Box", Arity: 1}, Name: "Get"}
	b := MethodSig{Type: TypeSig{Module: "B", Name: "Box", Arity: 1}, Name: "Get"}
	if a.Key() != b.Key() {
		t.Fatalf("Key() = %q vs %q, want equal across modules", a.Key(), b.Key())
	}

	c := MethodSig{Type: TypeSig{Module: "A", Name: "Box", Arity: 2}, Name: "Get"}
	if a.Key() == c.Key() {
		t.Fatalf("Key() should distinguish differing arity")
	}
}

func TestTypeSigFQNAndString(t *testing.T) {
	s := TypeSig{Namespace: "Demo", Name: "Box", Arity: 1}
	if got := s.FQN(); got != "Demo.Box" {
		t.Fatalf("FQN = %q, want Demo.Box", got)
	}
	if got := s.String(); got != "Demo.Box`1" {
		t.Fatalf("String = %q, want Demo.Box`1", got)
	}

	moduled := TypeSig{Module: "Core", Name: "Box"}
	if got := moduled.String(); got != "Core!Box" {
		t.Fatalf("String = %q, want Core!Box", got)
	}
}
