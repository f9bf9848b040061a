// Package counters implements the counter store allocator: for each
// eligible type it gets-or-creates a companion helper type and adds static
// 32-bit counter fields to it, keeping a HelperIndex so repeated lookups
// within one weave run return the same helper (§4.3).
package counters

import "github.com/chexiongsheng/InvokeTracker/internal/metadata"

// HelperIndex maps a helper type's fully-qualified name to its TypeID.
// Process-scoped to one weave run; discarded after Save.
type HelperIndex struct {
	byFQN map[string]metadata.TypeID
}

// NewHelperIndex returns an empty index.
func NewHelperIndex() *HelperIndex {
	return &HelperIndex{byFQN: make(map[string]metadata.TypeID)}
}

// Len reports how many distinct helper types have been allocated.
func (h *HelperIndex) Len() int { return len(h.byFQN) }

func fqn(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}
