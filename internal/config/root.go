package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the project file the weaver looks for next to a target
// module (or in one of its parent directories).
const ManifestName = "invoketracker.toml"

// FindProjectFile walks up from startDir to locate invoketracker.toml.
func FindProjectFile(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadNearest locates and decodes the nearest invoketracker.toml to startDir,
// if any. A missing file is not an error: ok is false and file is nil.
func LoadNearest(startDir string) (file *File, ok bool, err error) {
	path, ok, err := FindProjectFile(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	file, err = LoadFile(path)
	if err != nil {
		return nil, true, err
	}
	return file, true, nil
}
