// Package modio implements the module loader/saver (§4.1): reading a
// binary module and its symbol file into a metadata.Module, writing it
// back, resolving dependent-module references via search directories, and
// falling back to a no-symbol load when the symbol file does not match.
//
// The on-disk module format is msgpack, following the same encode-a-plain-
// struct-graph approach the teacher's own disk cache uses for its
// session-scoped artifacts.
package modio

// wireModule is the on-disk shape of a metadata.Module. Arenas are
// serialized by walking IDs 1..Count-1 in order (index 0 is the reserved
// sentinel and is never written), so decoding by re-allocating in the same
// order reconstructs identical IDs without an explicit index field.
type wireModule struct {
	Name       string        `msgpack:"name"`
	References []string      `msgpack:"references"`
	TopLevel   []uint32      `msgpack:"top_level"`
	Types      []wireType    `msgpack:"types"`
	Methods    []wireMethod  `msgpack:"methods"`
	Fields     []wireField   `msgpack:"fields"`
}

type wireType struct {
	Namespace  string   `msgpack:"namespace"`
	Name       string   `msgpack:"name"`
	Arity      int      `msgpack:"arity"`
	Parent     uint32   `msgpack:"parent"`
	Nested     []uint32 `msgpack:"nested"`
	Fields     []uint32 `msgpack:"fields"`
	Methods    []uint32 `msgpack:"methods"`
	Attributes []string `msgpack:"attributes"`
	Flags      uint16   `msgpack:"flags"`
}

type wireTypeSig struct {
	Module    string `msgpack:"module"`
	Namespace string `msgpack:"namespace"`
	Name      string `msgpack:"name"`
	Arity     int    `msgpack:"arity"`
}

type wireMethod struct {
	Declaring  uint32        `msgpack:"declaring"`
	Name       string        `msgpack:"name"`
	Arity      int           `msgpack:"arity"`
	Params     []wireTypeSig `msgpack:"params"`
	Attributes []string      `msgpack:"attributes"`
	Flags      uint16        `msgpack:"flags"`
	Body       *wireBody     `msgpack:"body"`
}

type wireField struct {
	Declaring  uint32      `msgpack:"declaring"`
	Name       string      `msgpack:"name"`
	Static     bool        `msgpack:"static"`
	Type       wireTypeSig `msgpack:"type"`
	Visibility uint8       `msgpack:"visibility"`
}

type wireMethodSig struct {
	Type   wireTypeSig   `msgpack:"type"`
	Name   string        `msgpack:"name"`
	Params []wireTypeSig `msgpack:"params"`
}

type wireFieldSig struct {
	Type wireTypeSig `msgpack:"type"`
	Name string      `msgpack:"name"`
}

type wireInstr struct {
	Opcode      uint16         `msgpack:"opcode"`
	OperandKind uint8          `msgpack:"operand_kind"`
	ConstI32    int32          `msgpack:"const_i32,omitempty"`
	Type        *wireTypeSig   `msgpack:"type,omitempty"`
	Method      *wireMethodSig `msgpack:"method,omitempty"`
	Field       *wireFieldSig  `msgpack:"field,omitempty"`
	Target      uint32         `msgpack:"target,omitempty"`
	Raw         []byte         `msgpack:"raw,omitempty"`
	Form        uint8          `msgpack:"form"`
}

type wireLocal struct {
	Name string `msgpack:"name"`
	Type string `msgpack:"type"`
}

type wireHandler struct {
	TryStart     uint32 `msgpack:"try_start"`
	TryEnd       uint32 `msgpack:"try_end"`
	HandlerStart uint32 `msgpack:"handler_start"`
	HandlerEnd   uint32 `msgpack:"handler_end"`
	CatchType    string `msgpack:"catch_type"`
}

type wireBody struct {
	Instrs   []wireInstr   `msgpack:"instrs"`
	Order    []uint32      `msgpack:"order"`
	Locals   []wireLocal   `msgpack:"locals"`
	Handlers []wireHandler `msgpack:"handlers"`
}
