package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/chexiongsheng/InvokeTracker/internal/diag"
	"github.com/chexiongsheng/InvokeTracker/internal/trace"
	"github.com/chexiongsheng/InvokeTracker/internal/weave"
)

func TestFlagsToConfigReadsAllWeaveFlags(t *testing.T) {
	cmd := weaveCmd
	cmd.Flags().Set("symbols", "game.sym")
	cmd.Flags().Set("output", "out.mod")
	cmd.Flags().Set("prefix", "_count_")
	cmd.Flags().Set("include", "Game.Core")
	cmd.Flags().Set("exclude", "Game.Generated")
	cmd.Flags().Set("no-backup", "true")
	cmd.Flags().Set("backup-dir", "/tmp/backups")
	cmd.Flags().Set("instrument-compiler-generated", "true")
	cmd.Flags().Set("search-dir", "/deps")
	cmd.Flags().Set("dry-run", "true")

	cfg, err := flagsToConfig(cmd, "game.mod")
	if err != nil {
		t.Fatalf("flagsToConfig: %v", err)
	}

	if cfg.ModulePath != "game.mod" || cfg.SymbolPath != "game.sym" || cfg.Output != "out.mod" {
		t.Fatalf("cfg = %+v, paths not read correctly", cfg)
	}
	if cfg.Prefix != "_count_" {
		t.Fatalf("Prefix = %q, want _count_", cfg.Prefix)
	}
	if len(cfg.Include) != 1 || cfg.Include[0] != "Game.Core" {
		t.Fatalf("Include = %v, want [Game.Core]", cfg.Include)
	}
	if len(cfg.Exclude) != 1 || cfg.Exclude[0] != "Game.Generated" {
		t.Fatalf("Exclude = %v, want [Game.Generated]", cfg.Exclude)
	}
	if !cfg.NoBackup || cfg.BackupDir != "/tmp/backups" {
		t.Fatalf("NoBackup/BackupDir = %v/%q, want true//tmp/backups", cfg.NoBackup, cfg.BackupDir)
	}
	if !cfg.InstrumentCompilerGenerated {
		t.Fatalf("InstrumentCompilerGenerated = false, want true")
	}
	if len(cfg.SearchDirs) != 1 || cfg.SearchDirs[0] != "/deps" {
		t.Fatalf("SearchDirs = %v, want [/deps]", cfg.SearchDirs)
	}
	if !cfg.DryRun {
		t.Fatalf("DryRun = false, want true")
	}
}

func TestPrintSummaryReportsAlreadyInstrumentedShortCircuit(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	printSummary(cmd, &weave.Summary{ModulePath: "game.mod", AlreadyInstrumented: true})

	if !strings.Contains(buf.String(), "already instrumented") {
		t.Fatalf("output = %q, want an already-instrumented message", buf.String())
	}
	if strings.Contains(buf.String(), "types considered") {
		t.Fatalf("output = %q, should not print full stats when already instrumented", buf.String())
	}
}

func TestPrintSummaryReportsCounts(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	printSummary(cmd, &weave.Summary{
		ModulePath:            "game.mod",
		TypesConsidered:       10,
		MethodsInstrumented:   4,
		CallSitesInstrumented: 2,
		HelpersCreated:        1,
		FieldsCreated:         3,
		BackupPath:            "game.mod.bak",
	})

	out := buf.String()
	for _, want := range []string{"game.mod", "types considered", "4", "2", "1", "3", "game.mod.bak"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output = %q, missing %q", out, want)
		}
	}
}

func TestPrintSummaryNotesDryRun(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	printSummary(cmd, &weave.Summary{ModulePath: "game.mod", DryRun: true})

	if !strings.Contains(buf.String(), "dry run") {
		t.Fatalf("output = %q, want a dry-run notice", buf.String())
	}
}

func TestPrintDiagnosticsOnlyPrintsWarningsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{Severity: diag.SevInfo, Code: diag.WeaveSummary, At: diag.Location{Module: "Demo"}, Message: "info message"})
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.SaveFailure, At: diag.Location{Module: "Demo"}, Message: "warning message"})
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.InputNotFound, At: diag.Location{Module: "Demo"}, Message: "error message"})

	printDiagnostics(cmd, bag)

	out := buf.String()
	if strings.Contains(out, "info message") {
		t.Fatalf("output = %q, info-level diagnostics should not be printed", out)
	}
	if !strings.Contains(out, "warning message") || !strings.Contains(out, "error message") {
		t.Fatalf("output = %q, want both the warning and error lines", out)
	}
}

func TestResolveColorOnAndOffAreAbsolute(t *testing.T) {
	root := &cobra.Command{Use: "root"}
	root.PersistentFlags().String("color", "auto", "")
	child := &cobra.Command{Use: "weave"}
	root.AddCommand(child)

	root.PersistentFlags().Set("color", "on")
	if !resolveColor(child) {
		t.Fatalf("resolveColor with --color=on = false, want true")
	}

	root.PersistentFlags().Set("color", "off")
	if resolveColor(child) {
		t.Fatalf("resolveColor with --color=off = true, want false")
	}
}

func newTraceTestRoot() (*cobra.Command, *cobra.Command) {
	root := &cobra.Command{Use: "root"}
	root.PersistentFlags().String("trace", "", "")
	root.PersistentFlags().Bool("quiet", false, "")
	root.PersistentFlags().String("trace-level", "off", "")
	root.PersistentFlags().String("trace-mode", "ring", "")
	root.PersistentFlags().Int("trace-ring-size", 4096, "")
	root.PersistentFlags().Duration("trace-heartbeat", 0, "")

	child := &cobra.Command{Use: "weave"}
	root.AddCommand(child)
	return root, child
}

func TestSetupTracingReturnsNopWhenTraceDisabled(t *testing.T) {
	_, child := newTraceTestRoot()

	tracer, cleanup, err := setupTracing(child)
	if err != nil {
		t.Fatalf("setupTracing: %v", err)
	}
	if tracer.Enabled() {
		t.Fatalf("tracer should be disabled when trace-level is off and no trace path given")
	}
	cleanup()
}

func TestSetupTracingBuildsRingTracerWhenLevelSet(t *testing.T) {
	root, child := newTraceTestRoot()
	root.PersistentFlags().Set("trace-level", "debug")

	tracer, cleanup, err := setupTracing(child)
	if err != nil {
		t.Fatalf("setupTracing: %v", err)
	}
	if !tracer.Enabled() {
		t.Fatalf("tracer should be enabled when trace-level=debug")
	}
	cleanup()
}

func TestSetupTracingQuietForcesLevelError(t *testing.T) {
	root, child := newTraceTestRoot()
	root.PersistentFlags().Set("trace-level", "debug")
	root.PersistentFlags().Set("quiet", "true")

	tracer, cleanup, err := setupTracing(child)
	if err != nil {
		t.Fatalf("setupTracing: %v", err)
	}
	if tracer.Level() != trace.LevelError {
		t.Fatalf("Level() = %v, want LevelError when --quiet overrides trace-level=debug", tracer.Level())
	}
	cleanup()
}
