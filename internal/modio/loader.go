package modio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/chexiongsheng/InvokeTracker/internal/diag"
	"github.com/chexiongsheng/InvokeTracker/internal/metadata"
	"github.com/chexiongsheng/InvokeTracker/internal/symreconcile"
)

// LoadResult carries what the Loader learned about symbols and references
// alongside the loaded Module, for the Saver and Symbol Reconciler to act
// on later in the same run.
type LoadResult struct {
	Module *metadata.Module

	SymbolPath       string
	SymbolsLoaded    bool
	SymbolConvention symreconcile.Convention

	// ResolvedReferences maps each reference name to the path it was found
	// at under the configured search directories.
	ResolvedReferences map[string]string
}

// Load reads modulePath (and its symbol file, auto-detected unless
// explicitSymbolPath is given) into a mutable metadata.Module. A missing
// module is diag.InputNotFound and fatal; a present-but-incompatible
// symbol file is diag.SymbolMismatch and recovered by loading without
// symbols.
func Load(ctx context.Context, modulePath, explicitSymbolPath string, searchDirs []string, reporter diag.Reporter) (*LoadResult, error) {
	data, err := os.ReadFile(modulePath)
	if err != nil {
		if os.IsNotExist(err) {
			diag.ReportError(reporter, diag.InputNotFound,
				diag.Location{Module: modulePath}, "target module not found").Emit()
		}
		return nil, fmt.Errorf("read module %s: %w", modulePath, err)
	}

	var w wireModule
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode module %s: %w", modulePath, err)
	}
	mod := fromWire(w)

	result := &LoadResult{Module: mod}

	symPath, convention := detectSymbolPath(modulePath, explicitSymbolPath)
	if convention != symreconcile.ConventionNone {
		if symbolsCompatible(modulePath, symPath) {
			result.SymbolPath = symPath
			result.SymbolConvention = convention
			result.SymbolsLoaded = true
		} else {
			diag.ReportWarning(reporter, diag.SymbolMismatch,
				diag.Location{Module: modulePath},
				"symbol file does not match module, falling back to no-symbol load").Emit()
		}
	}

	if len(mod.References) > 0 {
		result.ResolvedReferences = PrefetchReferences(ctx, filepath.Dir(modulePath), mod.References, searchDirs)
		for _, ref := range mod.References {
			if _, ok := result.ResolvedReferences[ref]; !ok {
				diag.ReportWarning(reporter, diag.TypeScanFailure,
					diag.Location{Module: modulePath},
					"referenced module "+ref+" could not be resolved via search directories, its types will be skipped").Emit()
			}
		}
	}

	return result, nil
}
