package weave

import (
	"context"
	"path/filepath"

	"github.com/chexiongsheng/InvokeTracker/internal/bodyweave"
	"github.com/chexiongsheng/InvokeTracker/internal/callerweave"
	"github.com/chexiongsheng/InvokeTracker/internal/counters"
	"github.com/chexiongsheng/InvokeTracker/internal/diag"
	"github.com/chexiongsheng/InvokeTracker/internal/filter"
	"github.com/chexiongsheng/InvokeTracker/internal/guard"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata"
	"github.com/chexiongsheng/InvokeTracker/internal/modio"
	"github.com/chexiongsheng/InvokeTracker/internal/observ"
	"github.com/chexiongsheng/InvokeTracker/internal/trace"
)

// Run executes one weave invocation end to end: Loader → Idempotence Guard
// → Backup → Filter/Counter Store Allocator setup → (caller-side discovery
// → site scan) → Body Instrumenter → Caller-Side splice → Saver (which runs
// the Symbol Reconciler), in the order §2's data-flow diagram specifies.
func Run(ctx context.Context, opts Options, tracer trace.Tracer, bag *diag.Bag) (*Summary, error) {
	if bag == nil {
		bag = diag.NewBag(1024)
	}
	reporter := diag.MultiReporter{diag.NewDedupReporter(diag.BagReporter{Bag: bag}), tracerReporter{tracer: tracer}}

	timer := observ.NewTimer()
	summary := &Summary{ModulePath: opts.ModulePath, DryRun: opts.DryRun}

	loadSpan := trace.Begin(tracer, trace.ScopePass, "load", 0)
	loadIdx := timer.Begin("load")
	loadResult, err := modio.Load(ctx, opts.ModulePath, opts.SymbolPath, opts.SearchDirs, reporter)
	timer.End(loadIdx, "")
	loadSpan.End("")
	if err != nil {
		return finish(summary, bag, timer), err
	}
	mod := loadResult.Module

	guardIdx := timer.Begin("guard")
	already := guard.AlreadyInstrumented(mod, opts.Prefix)
	timer.End(guardIdx, "")
	if already {
		diag.ReportInfo(reporter, diag.AlreadyInstrumented,
			diag.Location{Module: mod.Name}, "module already instrumented, nothing to do").Emit()
		summary.AlreadyInstrumented = true
		return finish(summary, bag, timer), nil
	}

	if err := backupIfConfigured(opts, loadResult, summary, reporter); err != nil {
		return finish(summary, bag, timer), err
	}

	filterIdx := timer.Begin("filter")
	filt := filter.New(opts.Include, opts.Exclude, opts.InstrumentCompilerGenerated)
	idx := counters.NewHelperIndex()
	alloc := counters.NewAllocator(mod, opts.Prefix, idx)
	timer.End(filterIdx, "")

	callerIdx := timer.Begin("caller-side-discover")
	icx := callerweave.NewContext()
	callerweave.Discover(mod, alloc, filt, icx)
	callerweave.Scan(mod, icx)
	timer.End(callerIdx, "")

	bodyIdx := timer.Begin("body-instrument")
	bodyInstr := bodyweave.New(mod, alloc, reporter)
	mod.Walk(func(typeID metadata.TypeID) {
		t := mod.Type(typeID)
		if t == nil || !filt.TypeEligible(t) {
			return
		}
		summary.TypesConsidered++
		for _, methodID := range t.Methods {
			method := mod.Method(methodID)
			if !filt.MethodEligibleForBody(method) {
				continue
			}
			if bodyInstr.Instrument(typeID, methodID) {
				summary.MethodsInstrumented++
			}
		}
	})
	timer.End(bodyIdx, "")

	spliceIdx := timer.Begin("caller-side-splice")
	summary.CallSitesInstrumented = callerweave.Splice(icx, reporter)
	timer.End(spliceIdx, "")

	summary.HelpersCreated = idx.Len()
	summary.FieldsCreated = alloc.FieldsCreated

	if opts.DryRun {
		diag.ReportInfo(reporter, diag.DryRunReport,
			diag.Location{Module: mod.Name}, "dry run, no changes written").Emit()
		return finish(summary, bag, timer), nil
	}

	saveIdx := timer.Begin("save")
	err = modio.Save(mod, opts.ModulePath, modio.SaveOptions{
		OutputPath:       opts.Output,
		WriteSymbols:     loadResult.SymbolsLoaded,
		SymbolExt:        filepath.Ext(opts.ModulePath),
		SymbolConvention: loadResult.SymbolConvention,
	}, reporter)
	timer.End(saveIdx, "")
	if err != nil {
		return finish(summary, bag, timer), err
	}

	diag.ReportInfo(reporter, diag.WeaveSummary, diag.Location{Module: mod.Name}, "weave run complete").Emit()
	return finish(summary, bag, timer), nil
}

func backupIfConfigured(opts Options, loadResult *modio.LoadResult, summary *Summary, reporter diag.Reporter) error {
	if opts.NoBackup || opts.BackupDir == "" || opts.DryRun {
		return nil
	}
	mgr := guard.NewManager(opts.BackupDir)

	bak, err := mgr.Backup(opts.ModulePath)
	if err != nil {
		diag.ReportError(reporter, diag.BackupFailure,
			diag.Location{Module: opts.ModulePath}, "failed to create backup").Emit()
		return err
	}
	summary.BackupPath = bak

	if loadResult.SymbolsLoaded {
		symBak, err := mgr.Backup(loadResult.SymbolPath)
		if err != nil {
			diag.ReportWarning(reporter, diag.BackupFailure,
				diag.Location{Module: opts.ModulePath}, "failed to back up symbol file").Emit()
		} else {
			summary.SymbolBackupPath = symBak
		}
	}
	return nil
}

func finish(summary *Summary, bag *diag.Bag, timer *observ.Timer) *Summary {
	for _, d := range bag.Items() {
		switch {
		case d.Severity >= diag.SevError:
			summary.Errors++
		case d.Severity >= diag.SevWarning:
			summary.Warnings++
		}
	}
	summary.Timing = timer.Report()
	return summary
}
