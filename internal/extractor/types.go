package extractor

// ScopeKind identifies the kind of scope a docstring candidate
// belongs to.
type ScopeKind string

const (
	ScopeModule        ScopeKind = "module"
	ScopeClass         ScopeKind = "class"
	ScopeFunction      ScopeKind = "function"
	ScopeAsyncFunction ScopeKind = "async_function"
)

// Candidate pairs a scope with its docstring, if any. One candidate
// is produced per scope in document order: a parent scope's candidate
// precedes its nested scopes', siblings appear in source order.
type Candidate struct {
	// Kind is the scope kind (module, class, function, async_function).
	Kind ScopeKind

	// Name is the qualified scope name, "<module>" for the module scope.
	Name string

	// Text is the decoded docstring content without quotes or
	// prefixes. Nil when the scope's first statement is not a bare
	// string literal (the scope has no docstring).
	Text *string

	// StartLine is the 1-based line of the opening quote when Text is
	// set, otherwise the line the scope is defined on.
	StartLine int

	// EndLine is the 1-based line of the closing quote when Text is
	// set, otherwise equal to StartLine.
	EndLine int
}

// HasDocstring reports whether the scope's first statement was a
// string literal.
func (c Candidate) HasDocstring() bool {
	return c.Text != nil
}
