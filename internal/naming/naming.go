// Package naming implements the helper-type and counter-field naming rules
// of the weaver: the same sanitize-and-compose logic is needed by the
// counter store allocator (to create fields), the filter (to recognize
// compiler-generated names), and testkit (to predict expected names in
// invariant checks), so it lives in one place rather than three.
package naming

import "strings"

// HelperSuffix is appended to a sanitized type name to build its helper
// type's simple name.
const HelperSuffix = "_InvokeCounters"

// SanitizeTypeName replaces a type's generic-arity delimiter (the backtick
// separating a generic type's simple name from its arity digit, e.g. Box`1)
// with an underscore, so Box`1 becomes Box_1. Non-generic names pass through
// unchanged.
func SanitizeTypeName(simpleName string) string {
	return strings.ReplaceAll(simpleName, "`", "_")
}

// HelperName computes the simple name of the helper type for a target type,
// given its already-sanitized simple name (arity delimiter replaced).
func HelperName(sanitizedSimpleName string) string {
	return sanitizedSimpleName + HelperSuffix
}

var methodNameReplacer = strings.NewReplacer("<", "_", ">", "_", ".", "_", "|", "_")

// SanitizeMethodName replaces the four characters the source convention
// sanitizes (<, >, ., |) with underscores. The backtick is deliberately not
// replaced here: see the design-notes entry in DESIGN.md documenting the
// resulting overload-collision behavior as observed, not fixed.
func SanitizeMethodName(simpleName string) string {
	return methodNameReplacer.Replace(simpleName)
}

// FieldName computes a method's counter field name under the given prefix.
func FieldName(prefix, methodSimpleName string) string {
	return prefix + SanitizeMethodName(methodSimpleName)
}

// IsCompilerGeneratedName reports whether a simple name carries the
// angle-bracket marker compiler-synthesized members use (e.g. closures,
// async state machines, property backing accessors named by some toolchains).
func IsCompilerGeneratedName(simpleName string) bool {
	return strings.ContainsRune(simpleName, '<') || strings.ContainsRune(simpleName, '>')
}

// HasPrefix reports whether name begins with prefix — the idempotence
// marker test applied to every field of every top-level type.
func HasPrefix(name, prefix string) bool {
	return strings.HasPrefix(name, prefix)
}
