// Package weave implements the orchestrator (§4.8 / §2 item 8): it composes
// the Loader, Filter, Counter Store Allocator, Body Instrumenter,
// Caller-Side Instrumenter, Idempotence Guard, Backup Manager, Symbol File
// Reconciler, and Saver in the order the data flow in §2 specifies, and
// returns a run summary.
package weave

import "github.com/chexiongsheng/InvokeTracker/internal/config"

// Options is the fully resolved input to one weave run, a type alias of
// config.Config.
type Options = config.Config
