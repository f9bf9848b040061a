package dag

import (
	"sort"

	"github.com/chexiongsheng/InvokeTracker/internal/diag"
	"github.com/chexiongsheng/InvokeTracker/internal/refs"
)

// Graph is an adjacency list over the dense IDs of a ModuleIndex: Edges[id]
// lists the modules that depend on id, so removing id decrements their
// in-degree (the direction Kahn's algorithm consumes).
type Graph struct {
	Edges   [][]ModuleID
	Indeg   []int
	Present []bool
}

// Node pairs one target's metadata with the reporter its diagnostics go to
// and whether it was already excluded from the graph before construction
// (e.g. it failed to load).
type Node struct {
	Meta     refs.TargetMeta
	Reporter diag.Reporter
	Broken   bool
	FirstErr *diag.Diagnostic
}

// Slot records, per dense ID, which input Node (if any) occupies it.
type Slot struct {
	Node    Node
	Present bool
}

// BuildGraph builds the reference graph for a batch of targets, reporting
// duplicates, self-references, and references to modules outside the batch
// as diag.TypeScanFailure/diag.ReferenceUnresolved diagnostics rather than
// failing the whole batch.
func BuildGraph(idx ModuleIndex, nodes []Node) (Graph, []Slot) {
	n := len(idx.IDToName)
	g := Graph{
		Edges:   make([][]ModuleID, n),
		Indeg:   make([]int, n),
		Present: make([]bool, n),
	}
	slots := make([]Slot, n)

	seen := make(map[ModuleID]bool, len(nodes))
	for _, node := range nodes {
		if node.Meta.Name == "" {
			continue
		}
		id, ok := idx.NameToID[node.Meta.Name]
		if !ok {
			continue
		}
		if seen[id] {
			diag.ReportWarning(node.Reporter, diag.TypeScanFailure,
				diag.Location{Module: node.Meta.Name},
				"duplicate module name in batch, keeping first occurrence").Emit()
			continue
		}
		seen[id] = true
		g.Present[id] = true
		slots[id] = Slot{Node: node, Present: true}
	}

	for _, node := range nodes {
		id, ok := idx.NameToID[node.Meta.Name]
		if !ok || !slots[id].Present {
			continue
		}

		deps := make([]string, len(node.Meta.References))
		copy(deps, node.Meta.References)
		sort.Strings(deps)

		for _, dep := range deps {
			if dep == node.Meta.Name {
				diag.ReportWarning(node.Reporter, diag.ReferenceUnresolved,
					diag.Location{Module: node.Meta.Name},
					"module references itself, ignoring self-reference").Emit()
				continue
			}
			depID, ok := idx.NameToID[dep]
			if !ok {
				continue
			}
			if !g.Present[depID] {
				// Dependency is outside this batch: it was already woven in
				// an earlier run, or it genuinely cannot be found. Either
				// way this module's own ordering does not wait on it.
				diag.ReportWarning(node.Reporter, diag.TypeScanFailure,
					diag.Location{Module: node.Meta.Name},
					"referenced module "+dep+" not present in this batch, skipping its types during reference resolution").Emit()
				continue
			}
			g.Edges[depID] = append(g.Edges[depID], id)
			g.Indeg[id]++
		}
	}

	return g, slots
}

// ReportCycles emits one diagnostic per module left stranded by a cyclic
// reference graph.
func ReportCycles(idx ModuleIndex, slots []Slot, topo *Topo) {
	if topo == nil || !topo.Cyclic {
		return
	}
	for _, id := range topo.Cycles {
		slot := slots[id]
		if !slot.Present {
			continue
		}
		diag.ReportError(slot.Node.Reporter, diag.ReferenceUnresolved,
			diag.Location{Module: idx.IDToName[id]},
			"module participates in a reference cycle, cannot determine a weave order").Emit()
	}
}

// ReportBrokenDeps emits a diagnostic for every present module that depends,
// directly or transitively, on a module that failed before weaving began.
func ReportBrokenDeps(idx ModuleIndex, slots []Slot, g Graph) {
	broken := make(map[ModuleID]bool, len(slots))
	for id, slot := range slots {
		if slot.Present && slot.Node.Broken {
			broken[ModuleID(id)] = true
		}
	}
	if len(broken) == 0 {
		return
	}

	changed := true
	for changed {
		changed = false
		for id, deps := range g.Edges {
			if !broken[ModuleID(id)] {
				continue
			}
			for _, dependent := range deps {
				if !broken[dependent] {
					broken[dependent] = true
					changed = true
				}
			}
		}
	}

	for id := range broken {
		slot := slots[id]
		if !slot.Present || slot.Node.Broken {
			continue
		}
		diag.ReportWarning(slot.Node.Reporter, diag.ReferenceUnresolved,
			diag.Location{Module: idx.IDToName[id]},
			"a module this one references failed earlier in the batch, its referenced types may be unresolved").Emit()
	}
}
