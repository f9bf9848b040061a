package modio

import (
	"github.com/chexiongsheng/InvokeTracker/internal/instr"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata/sig"
)

func toWire(mod *metadata.Module) wireModule {
	w := wireModule{
		Name:       mod.Name,
		References: mod.References,
	}
	for _, id := range mod.TopLevel {
		w.TopLevel = append(w.TopLevel, uint32(id))
	}
	for i := 1; i < mod.TypeCount(); i++ {
		w.Types = append(w.Types, typeToWire(mod.Type(metadata.TypeID(i)))) //nolint:gosec
	}
	for i := 1; i < mod.MethodCount(); i++ {
		w.Methods = append(w.Methods, methodToWire(mod.Method(metadata.MethodID(i)))) //nolint:gosec
	}
	for i := 1; i < mod.FieldCount(); i++ {
		w.Fields = append(w.Fields, fieldToWire(mod.Field(metadata.FieldID(i)))) //nolint:gosec
	}
	return w
}

func typeToWire(t *metadata.Type) wireType {
	w := wireType{
		Namespace:  t.Namespace,
		Name:       t.Name,
		Arity:      t.Arity,
		Parent:     uint32(t.Parent),
		Attributes: t.Attributes,
		Flags:      uint16(t.Flags),
	}
	for _, id := range t.Nested {
		w.Nested = append(w.Nested, uint32(id))
	}
	for _, id := range t.Fields {
		w.Fields = append(w.Fields, uint32(id))
	}
	for _, id := range t.Methods {
		w.Methods = append(w.Methods, uint32(id))
	}
	return w
}

func typeSigToWire(s sig.TypeSig) wireTypeSig {
	return wireTypeSig{Module: s.Module, Namespace: s.Namespace, Name: s.Name, Arity: s.Arity}
}

func methodToWire(m *metadata.Method) wireMethod {
	w := wireMethod{
		Declaring:  uint32(m.Declaring),
		Name:       m.Name,
		Arity:      m.Arity,
		Attributes: m.Attributes,
		Flags:      uint16(m.Flags),
	}
	for _, p := range m.Params {
		w.Params = append(w.Params, typeSigToWire(p))
	}
	if m.Body != nil {
		b := bodyToWire(m.Body)
		w.Body = &b
	}
	return w
}

func fieldToWire(f *metadata.Field) wireField {
	return wireField{
		Declaring:  uint32(f.Declaring),
		Name:       f.Name,
		Static:     f.Static,
		Type:       typeSigToWire(f.Type),
		Visibility: uint8(f.Visibility),
	}
}

func bodyToWire(b *instr.Body) wireBody {
	w := wireBody{}
	for _, id := range b.Order {
		w.Order = append(w.Order, uint32(id))
	}
	for id := 1; id <= b.Count(); id++ {
		w.Instrs = append(w.Instrs, instrToWire(b.At(instr.InstrID(id)))) //nolint:gosec
	}
	for _, l := range b.Locals {
		w.Locals = append(w.Locals, wireLocal{Name: l.Name, Type: l.Type})
	}
	for _, h := range b.Handlers {
		w.Handlers = append(w.Handlers, wireHandler{
			TryStart:     uint32(h.TryStart),
			TryEnd:       uint32(h.TryEnd),
			HandlerStart: uint32(h.HandlerStart),
			HandlerEnd:   uint32(h.HandlerEnd),
			CatchType:    h.CatchType,
		})
	}
	return w
}

func instrToWire(in instr.Instr) wireInstr {
	w := wireInstr{
		Opcode:      uint16(in.Opcode),
		OperandKind: uint8(in.Operand.Kind),
		Form:        uint8(in.Form),
	}
	switch in.Operand.Kind {
	case instr.OperandConst:
		w.ConstI32 = in.Operand.ConstI32
	case instr.OperandTypeRef:
		t := typeSigToWire(in.Operand.Type)
		w.Type = &t
	case instr.OperandMethodRef:
		ms := wireMethodSig{Type: typeSigToWire(in.Operand.Method.Type), Name: in.Operand.Method.Name}
		for _, p := range in.Operand.Method.Params {
			ms.Params = append(ms.Params, typeSigToWire(p))
		}
		w.Method = &ms
	case instr.OperandFieldRef:
		fs := wireFieldSig{Type: typeSigToWire(in.Operand.Field.Type), Name: in.Operand.Field.Name}
		w.Field = &fs
	case instr.OperandBranchTarget:
		w.Target = uint32(in.Operand.Target)
	case instr.OperandRaw:
		w.Raw = in.Operand.Raw
	}
	return w
}
