package metadata

// Walk visits every type reachable from m's top-level list, nested types
// depth-first pre-order before an enclosing type's own methods are visited
// elsewhere, matching §4.2's "process nested types recursively before
// instrumenting methods of the enclosing type". The top-level slice is
// snapshotted once before the walk begins, so appending a helper type to
// TopLevel mid-walk (the counter store allocator does this) never
// retriggers a visit or invalidates iteration.
func (m *Module) Walk(visit func(TypeID)) {
	snapshot := append([]TypeID(nil), m.TopLevel...)
	for _, id := range snapshot {
		m.walkOne(id, visit)
	}
}

func (m *Module) walkOne(id TypeID, visit func(TypeID)) {
	visit(id)
	t := m.Type(id)
	if t == nil {
		return
	}
	nested := append([]TypeID(nil), t.Nested...)
	for _, child := range nested {
		m.walkOne(child, visit)
	}
}
