// Package config assembles a weave run's configuration from command-line
// flags and an optional invoketracker.toml project file. Flags always win
// over file values; the file only supplies defaults for a repeatable setup
// that lives next to the target module.
package config

// Config is the fully resolved configuration for one weave invocation.
type Config struct {
	// ModulePath is the input module to weave (required).
	ModulePath string
	// SymbolPath overrides the conventional symbol-file location.
	SymbolPath string
	// Output overrides the default in-place save location.
	Output string
	// Prefix overrides the default counter field prefix ("_invokeCount_").
	Prefix string
	// Include is the namespace include list; empty means "all not excluded".
	Include []string
	// Exclude is the namespace exclude list; takes precedence over Include.
	Exclude []string
	// NoBackup disables backup creation entirely.
	NoBackup bool
	// BackupDir is the directory backups and their .bak.path sidecars go to.
	BackupDir string
	// InstrumentCompilerGenerated includes synthesized members that would
	// otherwise be skipped by the compiler-generated heuristic.
	InstrumentCompilerGenerated bool
	// SearchDirs is the reference-resolution search list.
	SearchDirs []string
	// DryRun runs every phase except Save and reports the predicted effect.
	DryRun bool
}

// DefaultPrefix is FIELD_PREFIX when neither a flag nor a project file sets one.
const DefaultPrefix = "_invokeCount_"

// Resolve merges flag-sourced values over file-sourced defaults. Any scalar
// Config field left at its zero value in flags falls back to the file's
// value. The Include, Exclude and SearchDirs lists are concatenated instead:
// file entries first, then flag entries (Exclude is also prefixed with
// DefaultExcludes).
func Resolve(flags Config, file *File) Config {
	cfg := flags
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}

	if file == nil {
		cfg.Exclude = append(append([]string{}, DefaultExcludes()...), cfg.Exclude...)
		return cfg
	}

	if cfg.Prefix == DefaultPrefix && file.Prefix != "" {
		cfg.Prefix = file.Prefix
	}
	if cfg.Output == "" {
		cfg.Output = file.Output
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = file.BackupDir
	}
	if !cfg.NoBackup {
		cfg.NoBackup = file.NoBackup
	}
	if !cfg.InstrumentCompilerGenerated {
		cfg.InstrumentCompilerGenerated = file.InstrumentCompilerGenerated
	}

	merged := append([]string{}, DefaultExcludes()...)
	merged = append(merged, file.Exclude...)
	merged = append(merged, cfg.Exclude...)
	cfg.Exclude = merged

	include := append([]string{}, file.Include...)
	include = append(include, cfg.Include...)
	cfg.Include = include

	searchDirs := append([]string{}, file.SearchDirs...)
	searchDirs = append(searchDirs, cfg.SearchDirs...)
	cfg.SearchDirs = searchDirs

	return cfg
}
