package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// File is the decoded shape of an optional invoketracker.toml project file,
// sitting next to a target module so a repeatable configuration doesn't have
// to be retyped on the command line every run.
type File struct {
	Prefix                      string   `toml:"prefix"`
	Output                      string   `toml:"output"`
	Include                     []string `toml:"include"`
	Exclude                     []string `toml:"exclude"`
	NoBackup                    bool     `toml:"no_backup"`
	BackupDir                   string   `toml:"backup_dir"`
	InstrumentCompilerGenerated bool     `toml:"instrument_compiler_generated"`
	SearchDirs                  []string `toml:"search_dirs"`
}

type fileDoc struct {
	Weave File `toml:"weave"`
}

// LoadFile parses the [weave] section of an invoketracker.toml file.
func LoadFile(path string) (*File, error) {
	var doc fileDoc
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("weave") {
		return &File{}, nil
	}
	return &doc.Weave, nil
}
