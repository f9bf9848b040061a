// Package guard implements the idempotence guard and backup manager (§4.6):
// detecting a prior weave run by its field-name marker, and copying the
// input module (and its symbol file) aside before any modification.
package guard

import (
	"github.com/chexiongsheng/InvokeTracker/internal/metadata"
	"github.com/chexiongsheng/InvokeTracker/internal/naming"
)

// AlreadyInstrumented reports whether any field on any top-level type of
// mod carries the idempotence marker: a name beginning with prefix. This is
// checked before any other phase runs, even if a prior run aborted mid-way.
func AlreadyInstrumented(mod *metadata.Module, prefix string) bool {
	for _, typeID := range mod.TopLevel {
		t := mod.Type(typeID)
		if t == nil {
			continue
		}
		for _, fieldID := range t.Fields {
			f := mod.Field(fieldID)
			if f != nil && naming.HasPrefix(f.Name, prefix) {
				return true
			}
		}
	}
	return false
}
