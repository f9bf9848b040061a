package symreconcile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestShortPathStripsModuleExtension(t *testing.T) {
	got := ShortPath("/tmp/game.bin", ".bin")
	if want := "/tmp/game.sym"; got != want {
		t.Fatalf("ShortPath = %q, want %q", got, want)
	}
}

func TestShortPathLeavesNonMatchingExtensionAlone(t *testing.T) {
	got := ShortPath("/tmp/game.bin", ".dll")
	if want := "/tmp/game.bin.sym"; got != want {
		t.Fatalf("ShortPath = %q, want %q", got, want)
	}
}

func TestLongPathAppendsSymSuffix(t *testing.T) {
	got := LongPath("/tmp/game.bin")
	if want := "/tmp/game.bin.sym"; got != want {
		t.Fatalf("LongPath = %q, want %q", got, want)
	}
}

func TestReconcileIsNoopWhenDetectedNotShort(t *testing.T) {
	dir := t.TempDir()
	modulePath := filepath.Join(dir, "game.bin")
	longSym := LongPath(modulePath)
	if err := os.WriteFile(longSym, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := Reconcile(modulePath, ".bin", ConventionNone, longSym); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if _, err := os.Stat(longSym); err != nil {
		t.Fatalf("long symbol file should be untouched when detected is ConventionNone: %v", err)
	}
}

func TestReconcileIsNoopWhenWrittenPathAlreadyShort(t *testing.T) {
	dir := t.TempDir()
	modulePath := filepath.Join(dir, "game.bin")
	short := ShortPath(modulePath, ".bin")
	if err := os.WriteFile(short, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := Reconcile(modulePath, ".bin", ConventionShort, short); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if _, err := os.Stat(short); err != nil {
		t.Fatalf("short symbol file should remain in place: %v", err)
	}
}

func TestReconcileRenamesLongToShortAndRemovesStaleShort(t *testing.T) {
	dir := t.TempDir()
	modulePath := filepath.Join(dir, "game.bin")
	long := LongPath(modulePath)
	short := ShortPath(modulePath, ".bin")

	if err := os.WriteFile(long, []byte("new"), 0o644); err != nil {
		t.Fatalf("setup long: %v", err)
	}
	if err := os.WriteFile(short, []byte("stale"), 0o644); err != nil {
		t.Fatalf("setup stale short: %v", err)
	}

	if err := Reconcile(modulePath, ".bin", ConventionShort, long); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if _, err := os.Stat(long); !os.IsNotExist(err) {
		t.Fatalf("long symbol file should have been renamed away, stat err = %v", err)
	}
	data, err := os.ReadFile(short)
	if err != nil {
		t.Fatalf("short symbol file missing after reconcile: %v", err)
	}
	if string(data) != "new" {
		t.Fatalf("short symbol file content = %q, want the renamed long file's content %q", data, "new")
	}
}

func TestReconcileHandlesMissingStaleShort(t *testing.T) {
	dir := t.TempDir()
	modulePath := filepath.Join(dir, "game.bin")
	long := LongPath(modulePath)
	short := ShortPath(modulePath, ".bin")

	if err := os.WriteFile(long, []byte("new"), 0o644); err != nil {
		t.Fatalf("setup long: %v", err)
	}

	if err := Reconcile(modulePath, ".bin", ConventionShort, long); err != nil {
		t.Fatalf("Reconcile with no preexisting short file: %v", err)
	}
	if _, err := os.Stat(short); err != nil {
		t.Fatalf("short symbol file should exist after reconcile: %v", err)
	}
}
