package modio

import (
	"github.com/chexiongsheng/InvokeTracker/internal/instr"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata/sig"
)

func fromWire(w wireModule) *metadata.Module {
	mod := metadata.New(w.Name)
	mod.References = w.References

	for _, wt := range w.Types {
		mod.NewType(typeFromWire(wt))
	}
	for _, wm := range w.Methods {
		mod.NewMethod(methodFromWire(wm))
	}
	for _, wf := range w.Fields {
		mod.NewField(fieldFromWire(wf))
	}
	for _, id := range w.TopLevel {
		mod.AddTopLevelType(metadata.TypeID(id)) //nolint:gosec
	}
	return mod
}

func typeFromWire(w wireType) metadata.Type {
	t := metadata.Type{
		Namespace:  w.Namespace,
		Name:       w.Name,
		Arity:      w.Arity,
		Parent:     metadata.TypeID(w.Parent), //nolint:gosec
		Attributes: w.Attributes,
		Flags:      metadata.TypeFlags(w.Flags),
	}
	for _, id := range w.Nested {
		t.Nested = append(t.Nested, metadata.TypeID(id)) //nolint:gosec
	}
	for _, id := range w.Fields {
		t.Fields = append(t.Fields, metadata.FieldID(id)) //nolint:gosec
	}
	for _, id := range w.Methods {
		t.Methods = append(t.Methods, metadata.MethodID(id)) //nolint:gosec
	}
	return t
}

func typeSigFromWire(w wireTypeSig) sig.TypeSig {
	return sig.TypeSig{Module: w.Module, Namespace: w.Namespace, Name: w.Name, Arity: w.Arity}
}

func methodFromWire(w wireMethod) metadata.Method {
	m := metadata.Method{
		Declaring:  metadata.TypeID(w.Declaring), //nolint:gosec
		Name:       w.Name,
		Arity:      w.Arity,
		Attributes: w.Attributes,
		Flags:      metadata.MethodFlags(w.Flags),
	}
	for _, p := range w.Params {
		m.Params = append(m.Params, typeSigFromWire(p))
	}
	if w.Body != nil {
		m.Body = bodyFromWire(*w.Body)
	}
	return m
}

func fieldFromWire(w wireField) metadata.Field {
	return metadata.Field{
		Declaring:  metadata.TypeID(w.Declaring), //nolint:gosec
		Name:       w.Name,
		Static:     w.Static,
		Type:       typeSigFromWire(w.Type),
		Visibility: metadata.Visibility(w.Visibility),
	}
}

func bodyFromWire(w wireBody) *instr.Body {
	b := instr.NewBody()
	for _, wi := range w.Instrs {
		b.AllocForDecode(instrFromWire(wi))
	}
	for _, id := range w.Order {
		b.Order = append(b.Order, instr.InstrID(id)) //nolint:gosec
	}
	for _, l := range w.Locals {
		b.Locals = append(b.Locals, instr.Local{Name: l.Name, Type: l.Type})
	}
	for _, h := range w.Handlers {
		b.Handlers = append(b.Handlers, instr.Handler{
			TryStart:     instr.InstrID(h.TryStart),     //nolint:gosec
			TryEnd:       instr.InstrID(h.TryEnd),       //nolint:gosec
			HandlerStart: instr.InstrID(h.HandlerStart), //nolint:gosec
			HandlerEnd:   instr.InstrID(h.HandlerEnd),   //nolint:gosec
			CatchType:    h.CatchType,
		})
	}
	return b
}

func instrFromWire(w wireInstr) instr.Instr {
	in := instr.Instr{
		Opcode: instr.Opcode(w.Opcode),
		Form:   instr.Form(w.Form),
	}
	switch instr.OperandKind(w.OperandKind) {
	case instr.OperandConst:
		in.Operand = instr.ConstOperand(w.ConstI32)
	case instr.OperandTypeRef:
		if w.Type != nil {
			in.Operand = instr.Operand{Kind: instr.OperandTypeRef, Type: typeSigFromWire(*w.Type)}
		}
	case instr.OperandMethodRef:
		if w.Method != nil {
			ms := sig.MethodSig{Type: typeSigFromWire(w.Method.Type), Name: w.Method.Name}
			for _, p := range w.Method.Params {
				ms.Params = append(ms.Params, typeSigFromWire(p))
			}
			in.Operand = instr.MethodOperand(ms)
		}
	case instr.OperandFieldRef:
		if w.Field != nil {
			in.Operand = instr.FieldOperand(sig.FieldSig{Type: typeSigFromWire(w.Field.Type), Name: w.Field.Name})
		}
	case instr.OperandBranchTarget:
		in.Operand = instr.BranchOperand(instr.InstrID(w.Target)) //nolint:gosec
	case instr.OperandRaw:
		in.Operand = instr.Operand{Kind: instr.OperandRaw, Raw: w.Raw}
	}
	return in
}
