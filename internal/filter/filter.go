// Package filter decides, per type and per method, whether the weaver may
// touch it: namespace include/exclude lists, the compiler-generated-name
// heuristic, and the has-a-body split that routes a method to either the
// body instrumenter or the caller-side instrumenter.
package filter

import (
	"strings"

	"github.com/chexiongsheng/InvokeTracker/internal/metadata"
	"github.com/chexiongsheng/InvokeTracker/internal/naming"
)

// Filter holds one weave run's namespace and compiler-generated policy.
type Filter struct {
	Include                     []string
	Exclude                     []string
	InstrumentCompilerGenerated bool
}

// New builds a Filter from resolved include/exclude lists.
func New(include, exclude []string, instrumentCompilerGenerated bool) *Filter {
	return &Filter{
		Include:                     include,
		Exclude:                     exclude,
		InstrumentCompilerGenerated: instrumentCompilerGenerated,
	}
}

// TypeEligible reports whether t may be considered for instrumentation at
// all (its methods are still individually filtered afterward).
func (f *Filter) TypeEligible(t *metadata.Type) bool {
	if t == nil {
		return false
	}
	if f.isCompilerGeneratedType(t) {
		return false
	}
	return f.namespaceAllowed(t.FQN())
}

func (f *Filter) isCompilerGeneratedType(t *metadata.Type) bool {
	if f.InstrumentCompilerGenerated {
		return false
	}
	return naming.IsCompilerGeneratedName(t.Name) || t.Flags.Has(metadata.TypeFlagCompilerGeneratedAttr)
}

func (f *Filter) isCompilerGeneratedMethod(m *metadata.Method) bool {
	if f.InstrumentCompilerGenerated {
		return false
	}
	return naming.IsCompilerGeneratedName(m.Name) || m.Flags.Has(metadata.MethodFlagCompilerGeneratedAttr)
}

// namespaceAllowed applies the exclude-then-include rule: exclude wins,
// empty include means "everything not excluded", matching is a namespace
// prefix match against the fully qualified type name.
func (f *Filter) namespaceAllowed(fqn string) bool {
	for _, ex := range f.Exclude {
		if namespacePrefixMatch(fqn, ex) {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, in := range f.Include {
		if namespacePrefixMatch(fqn, in) {
			return true
		}
	}
	return false
}

func namespacePrefixMatch(fqn, prefix string) bool {
	if prefix == "" {
		return false
	}
	if fqn == prefix {
		return true
	}
	return strings.HasPrefix(fqn, prefix+".")
}

// MethodEligibleForBody reports whether m should receive direct body
// instrumentation: it has a body, is not abstract, and is not
// compiler-generated.
func (f *Filter) MethodEligibleForBody(m *metadata.Method) bool {
	if m == nil || !m.HasBody() {
		return false
	}
	if m.Flags.Has(metadata.MethodFlagAbstract) {
		return false
	}
	return !f.isCompilerGeneratedMethod(m)
}

// MethodEligibleForCallerSide reports whether m should instead be counted
// at its call sites: it is abstract, or otherwise lacks a body (interface
// members, extern/native imports).
func (f *Filter) MethodEligibleForCallerSide(m *metadata.Method) bool {
	if m == nil {
		return false
	}
	if !m.Flags.Has(metadata.MethodFlagAbstract) && m.HasBody() {
		return false
	}
	return !f.isCompilerGeneratedMethod(m)
}
