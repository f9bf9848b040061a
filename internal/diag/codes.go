package diag

import "fmt"

// Code identifies the behavioral kind of a diagnostic (spec §7).
type Code uint16

const (
	// UnknownCode is the zero value; no diagnostic should carry it.
	UnknownCode Code = 0

	// I/O and module-resolution diagnostics (1000-1999).
	InputNotFound        Code = 1000
	SymbolMismatch       Code = 1001
	SaveFailure          Code = 1002
	TypeScanFailure       Code = 1003
	ReferenceUnresolved   Code = 1004
	SymbolWriteFailure    Code = 1005
	BackupFailure         Code = 1006

	// Weave-decision diagnostics (2000-2999).
	AlreadyInstrumented  Code = 2000
	InstrumentationFailure Code = 2001
	DegenerateBody        Code = 2002
	FilteredOut           Code = 2003
	HelperCollision       Code = 2004

	// Informational / summary diagnostics (3000-3999).
	WeaveSummary  Code = 3000
	SymbolRenamed Code = 3001
	DryRunReport  Code = 3002
)

var codeTitle = map[Code]string{
	UnknownCode:            "unknown error",
	InputNotFound:          "target module not found",
	SymbolMismatch:         "symbol file does not match module, falling back to no-symbol load",
	SaveFailure:            "failed to save woven module",
	TypeScanFailure:        "failed to enumerate types of a dependency module",
	ReferenceUnresolved:    "reference could not be resolved",
	SymbolWriteFailure:     "failed to write symbol file",
	BackupFailure:          "failed to create or restore a backup",
	AlreadyInstrumented:    "module already instrumented, nothing to do",
	InstrumentationFailure: "failed to instrument a method or call site",
	DegenerateBody:         "method body has no instructions, skipped",
	FilteredOut:            "type or method excluded by filter",
	HelperCollision:        "sanitized name collides with an existing counter field",
	WeaveSummary:           "weave run summary",
	SymbolRenamed:          "symbol file renamed to match original convention",
	DryRunReport:           "dry run, no changes written",
}

// Title returns a short human description of the code.
func (c Code) Title() string {
	if t, ok := codeTitle[c]; ok {
		return t
	}
	return codeTitle[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[W%04d] %s", uint16(c), c.Title())
}
