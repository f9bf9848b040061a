package modio

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// PrefetchReferences resolves each name in mod.References against
// searchDirs (and the module's own directory), concurrently stat-ing
// candidates so a large reference table does not serialize on disk
// latency. It returns a name→path map for every reference that was found;
// unresolved references are simply absent, matching the Loader's
// "unresolvable references must not abort load" contract.
//
// The metadata graph itself is never touched concurrently here — this is
// pure read-only path discovery ahead of the single-threaded weave proper.
func PrefetchReferences(ctx context.Context, moduleDir string, references []string, searchDirs []string) map[string]string {
	dirs := append([]string{moduleDir}, searchDirs...)
	results := make([]string, len(references))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, name := range references {
		i, name := i, name
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			results[i] = findReference(dirs, name)
			return nil
		})
	}
	_ = g.Wait() // best-effort: a find failure just leaves that slot empty

	found := make(map[string]string, len(references))
	for i, name := range references {
		if results[i] != "" {
			found[name] = results[i]
		}
	}
	return found
}

func findReference(dirs []string, name string) string {
	candidates := []string{name, name + ".dll", name + ".bin", name + ".mod"}
	for _, dir := range dirs {
		for _, cand := range candidates {
			p := filepath.Join(dir, cand)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p
			}
		}
	}
	return ""
}
