package counters

import (
	"github.com/chexiongsheng/InvokeTracker/internal/metadata"
	"github.com/chexiongsheng/InvokeTracker/internal/naming"
)

// Allocator is the counter store allocator for one weave run: it owns the
// HelperIndex and the module its helpers get appended to.
type Allocator struct {
	Module *metadata.Module
	Prefix string
	Index  *HelperIndex

	// FieldsCreated counts new counter fields allocated through this
	// Allocator, for the orchestrator's run summary.
	FieldsCreated int
}

// NewAllocator binds an Allocator to a module, field prefix, and index.
func NewAllocator(mod *metadata.Module, prefix string, idx *HelperIndex) *Allocator {
	if idx == nil {
		idx = NewHelperIndex()
	}
	return &Allocator{Module: mod, Prefix: prefix, Index: idx}
}

// GetOrCreateHelper returns the helper type for target, creating it (and
// appending it as a new top-level type of the module) on first use. The
// helper is public, sealed, abstract, non-generic, and lives in target's
// namespace regardless of target's own generic arity.
func (a *Allocator) GetOrCreateHelper(target *metadata.Type) metadata.TypeID {
	helperName := naming.HelperName(naming.SanitizeTypeName(target.Name))
	helperFQN := fqn(target.Namespace, helperName)

	if id, ok := a.Index.byFQN[helperFQN]; ok {
		return id
	}
	if id, ok := a.findExistingTopLevel(helperFQN); ok {
		a.Index.byFQN[helperFQN] = id
		return id
	}

	id := a.Module.NewType(metadata.Type{
		Namespace: target.Namespace,
		Name:      helperName,
		Arity:     0,
		Flags:     metadata.TypeFlagSealed | metadata.TypeFlagAbstract,
	})
	a.Module.AddTopLevelType(id)
	a.Index.byFQN[helperFQN] = id
	return id
}

// findExistingTopLevel looks for a pre-existing top-level type matching
// helperFQN, non-generic — covers the case where an earlier tool run (or a
// hand-authored module) already declared the helper.
func (a *Allocator) findExistingTopLevel(helperFQN string) (metadata.TypeID, bool) {
	snapshot := append([]metadata.TypeID(nil), a.Module.TopLevel...)
	for _, id := range snapshot {
		t := a.Module.Type(id)
		if t == nil || t.Arity != 0 {
			continue
		}
		if fqn(t.Namespace, t.Name) == helperFQN {
			return id, true
		}
	}
	return metadata.NoTypeID, false
}

// GetOrCreateCounterField returns the counter field for method on helper,
// creating a public static unsigned-32-bit field on first use. A field with
// the same sanitized name already present is returned as-is (this is also
// how two overloads whose names collide only in sanitization-collapsed
// characters end up silently sharing one counter).
func (a *Allocator) GetOrCreateCounterField(helper metadata.TypeID, method *metadata.Method) metadata.FieldID {
	fieldName := naming.FieldName(a.Prefix, method.Name)
	t := a.Module.Type(helper)
	if t == nil {
		return metadata.NoFieldID
	}
	for _, fid := range t.Fields {
		if f := a.Module.Field(fid); f != nil && f.Name == fieldName {
			return fid
		}
	}

	fid := a.Module.NewField(metadata.Field{
		Declaring:  helper,
		Name:       fieldName,
		Static:     true,
		Type:       a.Module.UInt32Ref(),
		Visibility: metadata.VisibilityPublic,
	})
	t.Fields = append(t.Fields, fid)
	a.FieldsCreated++
	return fid
}
