package weave

import (
	"context"
	"path/filepath"

	"github.com/chexiongsheng/InvokeTracker/internal/diag"
	"github.com/chexiongsheng/InvokeTracker/internal/modio"
	"github.com/chexiongsheng/InvokeTracker/internal/refs"
	"github.com/chexiongsheng/InvokeTracker/internal/refs/dag"
	"github.com/chexiongsheng/InvokeTracker/internal/trace"
)

// BatchSummary is the aggregate result of weaving a batch of targets in
// dependency order, one Summary per module in the order they were woven.
type BatchSummary struct {
	Order      []string
	Summaries  map[string]*Summary
	Cyclic     bool
	CycleNames []string
}

// RunBatch weaves every target in optsList, ordering them so a module is
// woven only after the same-batch modules it references (SPEC_FULL's batch
// mode supplement): cross-module counter-field references created by an
// earlier module in the batch stay resolvable by EnsureReference/search
// without a second load pass. Targets on a reference cycle are woven last,
// in the order given, after the cycle is reported.
func RunBatch(ctx context.Context, optsList []Options, tracer trace.Tracer, bag *diag.Bag) (*BatchSummary, error) {
	if bag == nil {
		bag = diag.NewBag(1024)
	}
	reporter := diag.MultiReporter{diag.NewDedupReporter(diag.BagReporter{Bag: bag}), tracerReporter{tracer: tracer}}

	metas := make([]refs.TargetMeta, len(optsList))
	byPath := make(map[string]Options, len(optsList))
	allDirs := make([]string, 0, len(optsList))
	for i, opts := range optsList {
		peek, err := modio.Load(ctx, opts.ModulePath, opts.SymbolPath, opts.SearchDirs, diag.NopReporter{})
		if err != nil {
			return nil, err
		}
		metas[i] = refs.TargetMeta{Path: opts.ModulePath, Name: peek.Module.Name, References: peek.Module.References}
		byPath[peek.Module.Name] = opts
		allDirs = append(allDirs, filepath.Dir(opts.ModulePath))
	}

	idx := dag.BuildIndex(metas)
	nodes := make([]dag.Node, len(metas))
	for i, m := range metas {
		nodes[i] = dag.Node{Meta: m, Reporter: reporter}
	}
	graph, slots := dag.BuildGraph(idx, nodes)
	topo := dag.ToposortKahn(graph)
	if topo.Cyclic {
		dag.ReportCycles(idx, slots, topo)
	}
	dag.ReportBrokenDeps(idx, slots, graph)

	result := &BatchSummary{Summaries: make(map[string]*Summary, len(optsList))}

	weaveByName := func(name string) error {
		opts, ok := byPath[name]
		if !ok {
			return nil
		}
		opts.SearchDirs = append(append([]string{}, opts.SearchDirs...), allDirs...)
		summary, err := Run(ctx, opts, tracer, bag)
		if err != nil {
			return err
		}
		result.Order = append(result.Order, name)
		result.Summaries[name] = summary
		return nil
	}

	for _, id := range topo.Order {
		if err := weaveByName(idx.IDToName[id]); err != nil {
			return result, err
		}
	}
	if topo.Cyclic {
		result.Cyclic = true
		for _, id := range topo.Cycles {
			result.CycleNames = append(result.CycleNames, idx.IDToName[id])
			if err := weaveByName(idx.IDToName[id]); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}
