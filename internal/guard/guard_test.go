package guard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chexiongsheng/InvokeTracker/internal/metadata"
)

func TestAlreadyInstrumentedDetectsMarkerField(t *testing.T) {
	mod := metadata.New("Demo")
	typeID := mod.NewType(metadata.Type{Namespace: "Demo", Name: "Player_InvokeCounters"})
	mod.AddTopLevelType(typeID)
	fieldID := mod.NewField(metadata.Field{Declaring: typeID, Name: "_invokeCount_DoWork"})
	mod.Type(typeID).Fields = append(mod.Type(typeID).Fields, fieldID)

	if !AlreadyInstrumented(mod, "_invokeCount_") {
		t.Fatalf("AlreadyInstrumented should detect a field carrying the prefix marker")
	}
}

func TestAlreadyInstrumentedFalseOnFreshModule(t *testing.T) {
	mod := metadata.New("Demo")
	typeID := mod.NewType(metadata.Type{Namespace: "Demo", Name: "Player"})
	mod.AddTopLevelType(typeID)
	fieldID := mod.NewField(metadata.Field{Declaring: typeID, Name: "health"})
	mod.Type(typeID).Fields = append(mod.Type(typeID).Fields, fieldID)

	if AlreadyInstrumented(mod, "_invokeCount_") {
		t.Fatalf("AlreadyInstrumented should be false when no field carries the marker")
	}
}

func TestManagerBackupAndRestoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "game.mod")
	original := []byte("original module bytes")
	if err := os.WriteFile(src, original, 0o644); err != nil {
		t.Fatalf("failed to seed input file: %v", err)
	}

	backupDir := filepath.Join(dir, "backups")
	mgr := NewManager(backupDir)
	if !mgr.Enabled() {
		t.Fatalf("Manager with a non-empty dir must be enabled")
	}

	bakPath, err := mgr.Backup(src)
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}

	if err := os.WriteFile(src, []byte("mutated module bytes"), 0o644); err != nil {
		t.Fatalf("failed to mutate input file: %v", err)
	}

	if err := Restore(bakPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	restored, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("failed to read restored file: %v", err)
	}
	if string(restored) != string(original) {
		t.Fatalf("restored contents = %q, want %q", restored, original)
	}
}

func TestManagerDisabledWithoutDir(t *testing.T) {
	mgr := NewManager("")
	if mgr.Enabled() {
		t.Fatalf("Manager with an empty dir must be disabled")
	}
	bak, err := mgr.Backup("whatever")
	if err != nil || bak != "" {
		t.Fatalf("Backup on a disabled Manager should be a no-op, got (%q, %v)", bak, err)
	}
}
