package modio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/chexiongsheng/InvokeTracker/internal/symreconcile"
)

// detectSymbolPath applies the two recognized symbol-file conventions when
// explicit is empty: "<base>.sym" and "<base>.<ext>.sym". It returns the
// path that exists, or the short-convention path (so callers can still
// report "not found") when neither does.
func detectSymbolPath(modulePath, explicit string) (path string, convention symreconcile.Convention) {
	if explicit != "" {
		return explicit, symreconcile.ConventionLong
	}

	ext := filepath.Ext(modulePath)
	short := symreconcile.ShortPath(modulePath, ext)
	long := symreconcile.LongPath(modulePath)

	if _, err := os.Stat(short); err == nil {
		return short, symreconcile.ConventionShort
	}
	if _, err := os.Stat(long); err == nil {
		return long, symreconcile.ConventionLong
	}
	return short, symreconcile.ConventionNone
}

// symbolsCompatible is a lightweight heuristic standing in for a real
// symbol/module hash cross-check: symbols are considered compatible with a
// module if their base filename (ignoring the convention's extra
// extension segment) matches the module's.
func symbolsCompatible(modulePath, symbolPath string) bool {
	moduleBase := strings.TrimSuffix(filepath.Base(modulePath), filepath.Ext(modulePath))
	symBase := filepath.Base(symbolPath)
	symBase = strings.TrimSuffix(symBase, ".sym")
	symBase = strings.TrimSuffix(symBase, filepath.Ext(modulePath))
	return strings.HasPrefix(symBase, moduleBase)
}
