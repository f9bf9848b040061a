package config

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed data/default_excludes.txt
var defaultExcludesData string

var (
	defaultExcludesOnce sync.Once
	defaultExcludes     []string
)

// DefaultExcludes returns the built-in namespace exclude list: the
// runtime/editor/system namespaces that should never be instrumented.
func DefaultExcludes() []string {
	defaultExcludesOnce.Do(func() {
		for _, line := range strings.Split(defaultExcludesData, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			defaultExcludes = append(defaultExcludes, line)
		}
	})
	return defaultExcludes
}
