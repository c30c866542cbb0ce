// Package extractor parses Python source with tree-sitter and
// produces one docstring candidate per scope (module, class,
// function) in document order.
package extractor

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

var (
	// ErrParse indicates the source contains syntax the parser could
	// not build a tree from.
	ErrParse = errors.New("syntax error")

	// ErrEncoding indicates the source is not valid UTF-8.
	ErrEncoding = errors.New("invalid UTF-8 encoding")
)

// Extractor extracts docstring candidates from Python source files.
type Extractor struct {
	language *sitter.Language
}

// New creates an Extractor backed by the tree-sitter Python grammar.
func New() *Extractor {
	return &Extractor{
		language: sitter.NewLanguage(python.Language()),
	}
}

// frame is one entry of the explicit traversal worklist. Scopes carry
// the qualified-name prefix of their enclosing scope so nested
// definitions inside conditionals or loops resolve correctly.
type frame struct {
	node   *sitter.Node
	prefix string
}

// Extract parses source and returns docstring candidates in document
// order: the module candidate first, then every class and function
// definition depth-first, parents before their nested scopes. Scopes
// whose first statement is not a bare string literal yield a
// candidate with nil Text.
func (e *Extractor) Extract(source []byte) ([]Candidate, error) {
	if !utf8.Valid(source) {
		return nil, ErrEncoding
	}

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(e.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, ErrParse
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstErrorNode(root); bad != nil {
			return nil, fmt.Errorf("%w at line %d", ErrParse, bad.StartPosition().Row+1)
		}
		return nil, ErrParse
	}

	candidates := []Candidate{e.scopeCandidate(root, ScopeModule, "<module>", source)}

	// Explicit stack instead of recursion: deeply nested input must
	// not grow the Go call stack. Children are pushed in reverse so
	// the pop order is document order.
	stack := []frame{{node: root, prefix: ""}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		prefix := f.prefix
		node := f.node

		switch node.Kind() {
		case "class_definition":
			name := qualify(prefix, fieldText(node, "name", source))
			candidates = append(candidates, e.scopeCandidate(node, ScopeClass, name, source))
			prefix = name
		case "function_definition":
			kind := ScopeFunction
			if isAsync(node) {
				kind = ScopeAsyncFunction
			}
			name := qualify(prefix, fieldText(node, "name", source))
			candidates = append(candidates, e.scopeCandidate(node, kind, name, source))
			prefix = name
		}

		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: node.Child(uint(i)), prefix: prefix})
		}
	}

	return candidates, nil
}

// scopeCandidate builds the candidate for one scope node, locating
// its docstring if the first body statement is a bare string literal.
func (e *Extractor) scopeCandidate(node *sitter.Node, kind ScopeKind, name string, source []byte) Candidate {
	body := node
	if kind != ScopeModule {
		body = node.ChildByFieldName("body")
	}

	cand := Candidate{
		Kind:      kind,
		Name:      name,
		StartLine: int(node.StartPosition().Row) + 1,
		EndLine:   int(node.StartPosition().Row) + 1,
	}

	stmt := firstStatement(body)
	if stmt == nil || stmt.Kind() != "expression_statement" {
		return cand
	}

	expr := stmt.NamedChild(0)
	// Parentheses around a literal don't change what it is: unwrap so
	// a parenthesized concatenation still counts as a docstring.
	for expr != nil && expr.Kind() == "parenthesized_expression" {
		expr = expr.NamedChild(0)
	}
	if expr == nil {
		return cand
	}

	text, startLine, endLine, ok := stringLiteralText(expr, source)
	if !ok {
		return cand
	}

	cand.Text = &text
	cand.StartLine = startLine
	cand.EndLine = endLine
	return cand
}

// firstStatement returns the first named statement of a block,
// skipping comments.
func firstStatement(body *sitter.Node) *sitter.Node {
	if body == nil {
		return nil
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(uint(i))
		if child.Kind() == "comment" {
			continue
		}
		return child
	}
	return nil
}

// stringLiteralText decodes a string or concatenated_string node into
// its logical content. Adjacent literals with no operator between
// them form one logical literal. Returns ok=false for expressions
// that are not plain string literals (calls, f-strings, bytes).
func stringLiteralText(expr *sitter.Node, source []byte) (text string, startLine, endLine int, ok bool) {
	var segments []*sitter.Node
	switch expr.Kind() {
	case "string":
		segments = []*sitter.Node{expr}
	case "concatenated_string":
		for i := 0; i < int(expr.NamedChildCount()); i++ {
			child := expr.NamedChild(uint(i))
			if child.Kind() == "comment" {
				continue
			}
			if child.Kind() != "string" {
				return "", 0, 0, false
			}
			segments = append(segments, child)
		}
	default:
		return "", 0, 0, false
	}

	if len(segments) == 0 {
		return "", 0, 0, false
	}

	var b strings.Builder
	for _, seg := range segments {
		part, partOK := stringSegmentText(seg, source)
		if !partOK {
			return "", 0, 0, false
		}
		b.WriteString(part)
	}

	first := segments[0]
	last := segments[len(segments)-1]
	return b.String(), int(first.StartPosition().Row) + 1, int(last.EndPosition().Row) + 1, true
}

// stringSegmentText decodes a single string token: strips the prefix
// and quote delimiters, then decodes escapes unless the literal is
// raw. Literals containing interpolation are rejected.
func stringSegmentText(str *sitter.Node, source []byte) (string, bool) {
	var start, end *sitter.Node
	for i := 0; i < int(str.ChildCount()); i++ {
		child := str.Child(uint(i))
		switch child.Kind() {
		case "string_start":
			start = child
		case "string_end":
			end = child
		case "interpolation":
			return "", false
		}
	}
	if start == nil || end == nil {
		return "", false
	}

	prefix, _ := literalPrefix(string(source[start.StartByte():start.EndByte()]))
	if !isPlainString(prefix) {
		return "", false
	}

	inner := string(source[start.EndByte():end.StartByte()])
	if isRawPrefix(prefix) {
		return inner, true
	}
	return decodeEscapes(inner), true
}

// isAsync reports whether a function_definition carries the async
// keyword.
func isAsync(node *sitter.Node) bool {
	first := node.Child(0)
	return first != nil && first.Kind() == "async"
}

// fieldText reads the text of a named field, empty when absent.
func fieldText(node *sitter.Node, field string, source []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return string(source[child.StartByte():child.EndByte()])
}

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// firstErrorNode locates the first error node in the tree using the
// same worklist traversal as Extract.
func firstErrorNode(root *sitter.Node) *sitter.Node {
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if node.IsError() || node.IsMissing() {
			return node
		}
		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			stack = append(stack, node.Child(uint(i)))
		}
	}
	return nil
}
