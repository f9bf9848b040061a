package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chexiongsheng/InvokeTracker/internal/config"
	"github.com/chexiongsheng/InvokeTracker/internal/diag"
	"github.com/chexiongsheng/InvokeTracker/internal/weave"
)

var weaveCmd = &cobra.Command{
	Use:   "weave [flags] <module>...",
	Short: "Instrument one or more modules with per-method invocation counters",
	Long: "Instrument one or more modules with per-method invocation counters. " +
		"Given more than one module, they are woven in reference order (batch mode) " +
		"so a module is woven only after the same-batch modules it references.",
	Args: cobra.MinimumNArgs(1),
	RunE: weaveExecution,
}

func init() {
	weaveCmd.Flags().String("symbols", "", "explicit symbol file path (auto-detected otherwise)")
	weaveCmd.Flags().String("output", "", "output path (default: overwrite the input module)")
	weaveCmd.Flags().String("prefix", "", "counter field prefix (default: "+config.DefaultPrefix+")")
	weaveCmd.Flags().StringSlice("include", nil, "namespace include list (repeatable)")
	weaveCmd.Flags().StringSlice("exclude", nil, "namespace exclude list (repeatable, wins over include)")
	weaveCmd.Flags().Bool("no-backup", false, "disable backup creation")
	weaveCmd.Flags().String("backup-dir", "", "directory for pre-weave backups")
	weaveCmd.Flags().Bool("instrument-compiler-generated", false, "also instrument compiler-generated members")
	weaveCmd.Flags().StringSlice("search-dir", nil, "reference-resolution search directory (repeatable)")
	weaveCmd.Flags().Bool("dry-run", false, "run every phase except save and report the predicted effect")
	weaveCmd.Flags().Bool("no-project-file", false, "ignore any invoketracker.toml near the target module")
}

func weaveExecution(cmd *cobra.Command, args []string) error {
	color.NoColor = !resolveColor(cmd)

	noProjectFile, _ := cmd.Flags().GetBool("no-project-file")

	optsList := make([]config.Config, len(args))
	for i, modulePath := range args {
		flags, err := flagsToConfig(cmd, modulePath)
		if err != nil {
			return err
		}

		var file *config.File
		if !noProjectFile {
			loaded, ok, loadErr := config.LoadNearest(filepath.Dir(modulePath))
			if loadErr != nil {
				return fmt.Errorf("loading invoketracker.toml: %w", loadErr)
			}
			if ok {
				file = loaded
			}
		}
		optsList[i] = config.Resolve(flags, file)
	}

	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	bag := diag.NewBag(1024)

	if len(optsList) == 1 {
		summary, err := weave.Run(cmd.Context(), optsList[0], tracer, bag)
		if err != nil {
			return fmt.Errorf("weave %s: %w", args[0], err)
		}
		printSummary(cmd, summary)
	} else {
		batch, err := weave.RunBatch(cmd.Context(), optsList, tracer, bag)
		if err != nil {
			return fmt.Errorf("weave batch: %w", err)
		}
		for _, name := range batch.Order {
			printSummary(cmd, batch.Summaries[name])
		}
		if batch.Cyclic {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: reference cycle among %v, woven in argument order\n", batch.CycleNames)
		}
	}

	printDiagnostics(cmd, bag)

	if bag.HasErrors() {
		return fmt.Errorf("weave: completed with errors")
	}
	return nil
}

func flagsToConfig(cmd *cobra.Command, modulePath string) (config.Config, error) {
	symbols, err := cmd.Flags().GetString("symbols")
	if err != nil {
		return config.Config{}, err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return config.Config{}, err
	}
	prefix, err := cmd.Flags().GetString("prefix")
	if err != nil {
		return config.Config{}, err
	}
	include, err := cmd.Flags().GetStringSlice("include")
	if err != nil {
		return config.Config{}, err
	}
	exclude, err := cmd.Flags().GetStringSlice("exclude")
	if err != nil {
		return config.Config{}, err
	}
	noBackup, err := cmd.Flags().GetBool("no-backup")
	if err != nil {
		return config.Config{}, err
	}
	backupDir, err := cmd.Flags().GetString("backup-dir")
	if err != nil {
		return config.Config{}, err
	}
	instrumentCompilerGenerated, err := cmd.Flags().GetBool("instrument-compiler-generated")
	if err != nil {
		return config.Config{}, err
	}
	searchDirs, err := cmd.Flags().GetStringSlice("search-dir")
	if err != nil {
		return config.Config{}, err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return config.Config{}, err
	}

	return config.Config{
		ModulePath:                  modulePath,
		SymbolPath:                  symbols,
		Output:                      output,
		Prefix:                      prefix,
		Include:                     include,
		Exclude:                     exclude,
		NoBackup:                    noBackup,
		BackupDir:                   backupDir,
		InstrumentCompilerGenerated: instrumentCompilerGenerated,
		SearchDirs:                  searchDirs,
		DryRun:                      dryRun,
	}, nil
}

// resolveColor decides whether output should be colorized: "on" and "off"
// are absolute, "auto" colorizes only when stdout is a terminal.
func resolveColor(cmd *cobra.Command) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
}

func printSummary(cmd *cobra.Command, s *weave.Summary) {
	out := cmd.OutOrStdout()
	bold := color.New(color.Bold)

	if s.AlreadyInstrumented {
		fmt.Fprintf(out, "%s: already instrumented, nothing to do\n", s.ModulePath)
		return
	}

	bold.Fprintf(out, "weave %s\n", s.ModulePath)
	fmt.Fprintf(out, "  types considered:        %d\n", s.TypesConsidered)
	fmt.Fprintf(out, "  methods instrumented:    %d\n", s.MethodsInstrumented)
	fmt.Fprintf(out, "  call sites instrumented: %d\n", s.CallSitesInstrumented)
	fmt.Fprintf(out, "  helpers created:         %d\n", s.HelpersCreated)
	fmt.Fprintf(out, "  fields created:          %d\n", s.FieldsCreated)
	if s.BackupPath != "" {
		fmt.Fprintf(out, "  backup:                  %s\n", s.BackupPath)
	}
	if s.DryRun {
		color.New(color.FgYellow).Fprintln(out, "  dry run: no changes written")
	}
}

func printDiagnostics(cmd *cobra.Command, bag *diag.Bag) {
	out := cmd.OutOrStdout()
	for _, d := range bag.Items() {
		line := fmt.Sprintf("  [%s] %s: %s", d.Severity, d.At, d.Message)
		switch {
		case d.Severity >= diag.SevError:
			color.New(color.FgRed).Fprintln(out, line)
		case d.Severity >= diag.SevWarning:
			color.New(color.FgYellow).Fprintln(out, line)
		}
	}
}
