package diag

// NewError builds a fatal Diagnostic.
func NewError(code Code, at Location, msg string) Diagnostic {
	return New(SevError, code, at, msg)
}

// NewWarning builds a warning Diagnostic.
func NewWarning(code Code, at Location, msg string) Diagnostic {
	return New(SevWarning, code, at, msg)
}

// NewInfo builds an informational Diagnostic.
func NewInfo(code Code, at Location, msg string) Diagnostic {
	return New(SevInfo, code, at, msg)
}
