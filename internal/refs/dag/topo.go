package dag

import "fortio.org/safecast"

// mustModuleID converts a slice index to a ModuleID; n is bounded by the
// number of targets in one invocation, far below uint32 range.
func mustModuleID(id int) ModuleID {
	v, err := safecast.Conv[uint32](id)
	if err != nil {
		panic(err)
	}
	return ModuleID(v)
}

// Topo is the result of ordering a reference Graph.
type Topo struct {
	// Order lists every present module once, dependencies before dependents.
	Order []ModuleID
	// Batches groups Order into levels that could be woven concurrently;
	// batch 0 has no unresolved dependency, batch 1 depends only on batch 0, etc.
	Batches [][]ModuleID
	// Cyclic is true when at least one module could not be placed because it
	// sits on a reference cycle.
	Cyclic bool
	// Cycles lists the module IDs left over once Kahn's algorithm stalls;
	// every entry here sits on (or behind) a cycle.
	Cycles []ModuleID
}

// ToposortKahn orders the present modules of g by reference (dependency)
// order using Kahn's algorithm, batching modules with no remaining
// unresolved in-degree at each step.
func ToposortKahn(g Graph) *Topo {
	n := len(g.Edges)
	indeg := make([]int, n)
	copy(indeg, g.Indeg)

	topo := &Topo{}
	remaining := 0
	for id := 0; id < n; id++ {
		if g.Present[id] {
			remaining++
		}
	}

	for remaining > 0 {
		var batch []ModuleID
		for id := 0; id < n; id++ {
			if !g.Present[id] {
				continue
			}
			if indeg[id] == 0 {
				batch = append(batch, mustModuleID(id))
			}
		}
		if len(batch) == 0 {
			// Nothing left with indegree 0: every remaining present module
			// sits on or behind a cycle.
			for id := 0; id < n; id++ {
				if g.Present[id] && indeg[id] > 0 {
					topo.Cycles = append(topo.Cycles, mustModuleID(id))
				}
			}
			topo.Cyclic = true
			return topo
		}

		for _, id := range batch {
			g.Present[id] = false
			indeg[id] = -1 // mark consumed, never re-batched
			remaining--
			for _, dep := range g.Edges[id] {
				if indeg[dep] > 0 {
					indeg[dep]--
				}
			}
		}

		topo.Batches = append(topo.Batches, batch)
		topo.Order = append(topo.Order, batch...)
	}

	return topo
}
