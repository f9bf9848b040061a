// Package refs models the static reference graph between modules handed to
// the weaver in one invocation (batch mode, SPEC_FULL §Supplemented Features
// 2): each target module's metadata reference table names zero or more other
// modules, and a module can only be woven after the modules it imports
// counter fields from have themselves been woven, so that the newly created
// helper-type references are resolvable without a second load pass.
package refs

// TargetMeta describes one module passed to a weave run for graph ordering
// purposes: its path and the names of modules it references.
type TargetMeta struct {
	Path       string
	Name       string
	References []string
}
