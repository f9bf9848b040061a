package modio

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/chexiongsheng/InvokeTracker/internal/diag"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata"
	"github.com/chexiongsheng/InvokeTracker/internal/symreconcile"
)

// SaveOptions controls where and whether the Saver writes symbols.
type SaveOptions struct {
	// OutputPath overrides the in-place save location; empty means
	// overwrite modulePath.
	OutputPath string
	// WriteSymbols is false when the Loader fell back to a no-symbol load.
	WriteSymbols bool
	// SymbolExt is the module's own extension, used to compute the
	// short-convention symbol path for the reconciler.
	SymbolExt string
	// SymbolConvention is what the Loader detected at load time.
	SymbolConvention symreconcile.Convention
}

// Save writes mod to disk (msgpack-encoded) at opts.OutputPath or
// modulePath, then writes a matching symbol file if opts.WriteSymbols, then
// asks the Symbol File Reconciler to rename the output to match the
// originally detected convention.
func Save(mod *metadata.Module, modulePath string, opts SaveOptions, reporter diag.Reporter) error {
	target := opts.OutputPath
	if target == "" {
		target = modulePath
	}

	w := toWire(mod)
	data, err := msgpack.Marshal(&w)
	if err != nil {
		diag.ReportError(reporter, diag.SaveFailure,
			diag.Location{Module: modulePath}, "failed to encode module").Emit()
		return fmt.Errorf("encode module %s: %w", target, err)
	}

	if err := os.WriteFile(target, data, 0o644); err != nil {
		diag.ReportError(reporter, diag.SaveFailure,
			diag.Location{Module: modulePath}, "failed to write module").Emit()
		return fmt.Errorf("write module %s: %w", target, err)
	}

	if !opts.WriteSymbols {
		return nil
	}

	symTarget := symreconcile.LongPath(target)
	if err := os.WriteFile(symTarget, []byte{}, 0o644); err != nil {
		diag.ReportWarning(reporter, diag.SymbolWriteFailure,
			diag.Location{Module: modulePath}, "failed to write symbol file").Emit()
		return nil
	}

	if err := symreconcile.Reconcile(target, opts.SymbolExt, opts.SymbolConvention, symTarget); err != nil {
		diag.ReportWarning(reporter, diag.SymbolWriteFailure,
			diag.Location{Module: modulePath}, "failed to reconcile symbol file naming convention").Emit()
	}
	return nil
}
