// Package symreconcile implements the symbol file reconciler (§4.7): after
// Save, if the loader detected the short naming convention but the writer
// produced the long one, the long file is renamed to match so downstream
// loaders that only probe one convention still find symbols.
package symreconcile

import (
	"os"
)

// Convention is a symbol file's naming scheme relative to its module.
type Convention uint8

const (
	// ConventionNone means no symbol file was detected at load time.
	ConventionNone Convention = iota
	// ConventionShort is "<base>.sym".
	ConventionShort
	// ConventionLong is "<base>.<ext>.sym".
	ConventionLong
)

// ShortPath computes the short-convention symbol path for a module path and
// its extension (including the leading dot, e.g. ".bin").
func ShortPath(modulePath, ext string) string {
	base := modulePath
	if ext != "" && len(modulePath) > len(ext) && modulePath[len(modulePath)-len(ext):] == ext {
		base = modulePath[:len(modulePath)-len(ext)]
	}
	return base + ".sym"
}

// LongPath computes the long-convention symbol path.
func LongPath(modulePath string) string {
	return modulePath + ".sym"
}

// Reconcile renames writtenPath to the short convention when detected is
// ConventionShort but the writer actually produced the long-convention
// file, deleting any stale short-convention file first. It is a no-op for
// every other combination.
func Reconcile(modulePath, ext string, detected Convention, writtenPath string) error {
	if detected != ConventionShort {
		return nil
	}
	short := ShortPath(modulePath, ext)
	if writtenPath == short {
		return nil
	}

	if _, err := os.Stat(short); err == nil {
		if err := os.Remove(short); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	return os.Rename(writtenPath, short)
}
