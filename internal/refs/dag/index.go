package dag

import (
	"sort"

	"github.com/chexiongsheng/InvokeTracker/internal/refs"
)

// ModuleID is a dense index into a batch's target set, assigned in
// deterministic (sorted-by-name) order.
type ModuleID uint32

// ModuleIndex maps module names to dense IDs and back.
type ModuleIndex struct {
	NameToID map[string]ModuleID
	IDToName []string
}

// BuildIndex collects every target's name plus every name it references
// into one dense, deterministically ordered index.
func BuildIndex(metas []refs.TargetMeta) ModuleIndex {
	uniq := make(map[string]struct{}, len(metas))
	for _, meta := range metas {
		if meta.Name != "" {
			uniq[meta.Name] = struct{}{}
		}
		for _, dep := range meta.References {
			if dep != "" {
				uniq[dep] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(uniq))
	for name := range uniq {
		names = append(names, name)
	}
	sort.Strings(names)

	nameToID := make(map[string]ModuleID, len(names))
	for i, name := range names {
		nameToID[name] = ModuleID(i)
	}

	return ModuleIndex{NameToID: nameToID, IDToName: names}
}
