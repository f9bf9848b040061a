package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveAppliesDefaultPrefixWhenFlagsEmpty(t *testing.T) {
	cfg := Resolve(Config{ModulePath: "game.mod"}, nil)
	if cfg.Prefix != DefaultPrefix {
		t.Fatalf("Prefix = %q, want default %q", cfg.Prefix, DefaultPrefix)
	}
}

func TestResolveFlagsWinOverFile(t *testing.T) {
	file := &File{Prefix: "_fileCount_", Output: "file-out.mod"}
	flags := Config{ModulePath: "game.mod", Prefix: "_flagCount_"}

	cfg := Resolve(flags, file)
	if cfg.Prefix != "_flagCount_" {
		t.Fatalf("Prefix = %q, want flag value to win", cfg.Prefix)
	}
	if cfg.Output != "file-out.mod" {
		t.Fatalf("Output = %q, want file value since flags left it empty", cfg.Output)
	}
}

func TestResolveMergesExcludeAndIncludeLists(t *testing.T) {
	file := &File{Exclude: []string{"Vendor"}, Include: []string{"Game"}}
	flags := Config{ModulePath: "game.mod", Exclude: []string{"Generated"}}

	cfg := Resolve(flags, file)

	wantExclude := map[string]bool{"Vendor": true, "Generated": true}
	for _, ex := range cfg.Exclude {
		delete(wantExclude, ex)
	}
	if len(wantExclude) != 0 {
		t.Fatalf("Exclude = %v, missing entries %v", cfg.Exclude, wantExclude)
	}

	if len(cfg.Include) != 1 || cfg.Include[0] != "Game" {
		t.Fatalf("Include = %v, want [Game]", cfg.Include)
	}
}

func TestResolveWithoutFileStillAppliesDefaultExcludes(t *testing.T) {
	cfg := Resolve(Config{ModulePath: "game.mod"}, nil)
	defaults := DefaultExcludes()
	if len(defaults) == 0 {
		t.Fatalf("DefaultExcludes() returned nothing to verify against")
	}
	found := false
	for _, ex := range cfg.Exclude {
		if ex == defaults[0] {
			found = true
		}
	}
	if !found {
		t.Fatalf("Exclude = %v, want it to include the built-in default %q", cfg.Exclude, defaults[0])
	}
}

func TestFindProjectFileWalksUpToParent(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "modules")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}
	manifest := filepath.Join(root, ManifestName)
	if err := os.WriteFile(manifest, []byte("[weave]\nprefix = \"_x_\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	path, ok, err := FindProjectFile(nested)
	if err != nil {
		t.Fatalf("FindProjectFile failed: %v", err)
	}
	if !ok {
		t.Fatalf("FindProjectFile did not locate the manifest in a parent directory")
	}
	if path != manifest {
		t.Fatalf("FindProjectFile = %q, want %q", path, manifest)
	}
}

func TestLoadNearestReturnsNotOkWithoutError(t *testing.T) {
	dir := t.TempDir()
	file, ok, err := LoadNearest(dir)
	if err != nil {
		t.Fatalf("LoadNearest returned an error for a missing manifest: %v", err)
	}
	if ok || file != nil {
		t.Fatalf("LoadNearest should report ok=false, file=nil when no manifest exists")
	}
}

func TestLoadFileParsesWeaveSection(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, ManifestName)
	contents := "[weave]\nprefix = \"_custom_\"\nexclude = [\"Vendor\"]\n"
	if err := os.WriteFile(manifest, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	file, err := LoadFile(manifest)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if file.Prefix != "_custom_" {
		t.Fatalf("Prefix = %q, want _custom_", file.Prefix)
	}
	if len(file.Exclude) != 1 || file.Exclude[0] != "Vendor" {
		t.Fatalf("Exclude = %v, want [Vendor]", file.Exclude)
	}
}
