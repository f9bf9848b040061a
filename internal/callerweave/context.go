// Package callerweave implements the two-pass caller-side instrumenter
// (§4.5): pass A discovers bodyless eligible methods and pre-allocates
// their counters, pass B scans every body in the module for call
// instructions targeting those methods, and a final splice pass inserts
// the counter prelude before each matching call site.
package callerweave

import (
	"github.com/chexiongsheng/InvokeTracker/internal/instr"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata/sig"
)

// ContextEntry records where a discovered bodyless method's counter lives.
type ContextEntry struct {
	Field sig.FieldSig
}

// CallSite is one call instruction found in pass B whose callee matched a
// discovered canonical signature.
type CallSite struct {
	CalleeKey    string
	CallerModule *metadata.Module
	Caller       metadata.MethodID
	Instr        instr.InstrID
}

// Context is the InstrumentationContext of §3: a mapping from canonical
// callee signature to (counter field, helper type), and the ordered list of
// call sites discovered, each tagged with its callee signature key.
// Scoped to one weave run: the orchestrator creates a fresh Context for each
// module it weaves, including each module of a batch run.
type Context struct {
	entries map[string]ContextEntry
	Sites   []CallSite
}

// NewContext returns an empty InstrumentationContext.
func NewContext() *Context {
	return &Context{entries: make(map[string]ContextEntry)}
}

// Lookup returns the recorded entry for a canonical callee signature key.
func (c *Context) Lookup(key string) (ContextEntry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

// Register records a discovered bodyless method's counter location. A
// second registration under the same key is a no-op: the first discovery
// wins, matching the counter store allocator's own get-or-create semantics.
func (c *Context) Register(key string, entry ContextEntry) {
	if _, exists := c.entries[key]; exists {
		return
	}
	c.entries[key] = entry
}

// KeyOf builds the canonical callee signature key for a method declared on
// owner within mod.
func KeyOf(mod *metadata.Module, ownerID metadata.TypeID, method *metadata.Method) string {
	return sig.MethodSig{Type: mod.SigOf(ownerID), Name: method.Name, Params: method.Params}.Key()
}
