package metadata

import "github.com/chexiongsheng/InvokeTracker/internal/metadata/sig"

// Field is a declared field of a Type. Counter fields are created only by
// the counter store allocator; every other field is input-only.
type Field struct {
	Declaring  TypeID
	Name       string
	Static     bool
	Type       sig.TypeSig
	Visibility Visibility
}
