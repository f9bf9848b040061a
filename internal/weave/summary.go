package weave

import "github.com/chexiongsheng/InvokeTracker/internal/observ"

// Summary is the Orchestrator's report of one weave run.
type Summary struct {
	ModulePath string

	AlreadyInstrumented bool
	DryRun              bool

	TypesConsidered       int
	MethodsInstrumented   int
	CallSitesInstrumented int
	HelpersCreated        int
	FieldsCreated         int

	BackupPath       string
	SymbolBackupPath string

	Warnings int
	Errors   int

	Timing observ.Report
}
