package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Extractor:
// - Module docstring detection
// - Class, function, and async function docstrings with qualified names
// - Document order: parent scope before nested, siblings in source order
// - Scopes without docstrings yield candidates with nil Text
// - Scopes nested in conditionals/loops are visited exactly once
// - One-line and triple-quoted docstrings, both quote characters
// - Raw string prefixes keep backslashes verbatim
// - Implicit adjacent-literal concatenation forms one logical text
// - Escape decoding incl. line continuation joining physical lines
// - f-strings and non-string first statements are not docstrings
// - Syntax errors and invalid UTF-8 are terminal errors

func TestExtractor_ModuleDocstring(t *testing.T) {
	t.Parallel()

	source := `"""Module summary.

More detail here.
"""

x = 1
`
	candidates, err := New().Extract([]byte(source))
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	mod := candidates[0]
	assert.Equal(t, ScopeModule, mod.Kind)
	assert.Equal(t, "<module>", mod.Name)
	require.True(t, mod.HasDocstring())
	assert.Equal(t, "Module summary.\n\nMore detail here.\n", *mod.Text)
	assert.Equal(t, 1, mod.StartLine)
	assert.Equal(t, 4, mod.EndLine)
}

func TestExtractor_DocumentOrder(t *testing.T) {
	t.Parallel()

	source := `"""Module."""


class Outer:
    """Outer class."""

    def first(self):
        """First method."""

    def second(self):
        """Second method."""

        def inner():
            """Nested function."""


def standalone():
    """Standalone."""
`
	candidates, err := New().Extract([]byte(source))
	require.NoError(t, err)

	var names []string
	for _, c := range candidates {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"<module>",
		"Outer",
		"Outer.first",
		"Outer.second",
		"Outer.second.inner",
		"standalone",
	}, names)
}

func TestExtractor_ScopeKinds(t *testing.T) {
	t.Parallel()

	source := `class C:
    """Class."""

    async def fetch(self):
        """Async method."""


def f():
    """Function."""
`
	candidates, err := New().Extract([]byte(source))
	require.NoError(t, err)
	require.Len(t, candidates, 4)

	kinds := map[string]ScopeKind{}
	for _, c := range candidates {
		kinds[c.Name] = c.Kind
	}
	assert.Equal(t, ScopeModule, kinds["<module>"])
	assert.Equal(t, ScopeClass, kinds["C"])
	assert.Equal(t, ScopeAsyncFunction, kinds["C.fetch"])
	assert.Equal(t, ScopeFunction, kinds["f"])
}

func TestExtractor_MissingDocstring(t *testing.T) {
	t.Parallel()

	source := `import os


def no_doc():
    return 1


def assigned():
    x = "not a docstring"
    return x
`
	candidates, err := New().Extract([]byte(source))
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	for _, c := range candidates {
		assert.False(t, c.HasDocstring(), "%s should have no docstring", c.Name)
		assert.Nil(t, c.Text)
		assert.Greater(t, c.StartLine, 0)
	}
}

func TestExtractor_NestedInConditional(t *testing.T) {
	t.Parallel()

	// Scopes inside module-level conditionals and loops are visited
	// exactly once.
	source := `if True:
    def conditional():
        """Defined conditionally."""

for _ in range(1):
    class LoopClass:
        """Defined in a loop."""
`
	candidates, err := New().Extract([]byte(source))
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	assert.Equal(t, "conditional", candidates[1].Name)
	require.True(t, candidates[1].HasDocstring())
	assert.Equal(t, "Defined conditionally.", *candidates[1].Text)

	assert.Equal(t, "LoopClass", candidates[2].Name)
	require.True(t, candidates[2].HasDocstring())
	assert.Equal(t, "Defined in a loop.", *candidates[2].Text)
}

func TestExtractor_QuoteStyles(t *testing.T) {
	t.Parallel()

	source := `def single():
    'one-line single quotes'


def double():
    "one-line double quotes"


def triple_single():
    '''triple
    single'''
`
	candidates, err := New().Extract([]byte(source))
	require.NoError(t, err)
	require.Len(t, candidates, 4)

	assert.Equal(t, "one-line single quotes", *candidates[1].Text)
	assert.Equal(t, "one-line double quotes", *candidates[2].Text)
	assert.Equal(t, "triple\n    single", *candidates[3].Text)
}

func TestExtractor_RawString(t *testing.T) {
	t.Parallel()

	source := `def f():
    r"""Matches \d+ and \n stays verbatim."""
`
	candidates, err := New().Extract([]byte(source))
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	require.True(t, candidates[1].HasDocstring())
	assert.Equal(t, `Matches \d+ and \n stays verbatim.`, *candidates[1].Text)
}

func TestExtractor_ConcatenatedLiterals(t *testing.T) {
	t.Parallel()

	source := `def f():
    """First segment. """ """Second segment."""
`
	candidates, err := New().Extract([]byte(source))
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	require.True(t, candidates[1].HasDocstring())
	assert.Equal(t, "First segment. Second segment.", *candidates[1].Text)
	assert.Equal(t, 2, candidates[1].StartLine)
	assert.Equal(t, 2, candidates[1].EndLine)
}

func TestExtractor_ConcatenatedMultiline(t *testing.T) {
	t.Parallel()

	source := `def f():
    ("first part "
     "second part")
`
	candidates, err := New().Extract([]byte(source))
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	// Parenthesized concatenation is still a bare string expression.
	require.True(t, candidates[1].HasDocstring())
	assert.Equal(t, "first part second part", *candidates[1].Text)
	assert.Equal(t, 2, candidates[1].StartLine)
	assert.Equal(t, 3, candidates[1].EndLine)
}

func TestExtractor_EscapeDecoding(t *testing.T) {
	t.Parallel()

	source := `def f():
    "tab:\there newline:\nnext unicode:\u00e9 octal:\101 hex:\x41 high:\xe9"
`
	candidates, err := New().Extract([]byte(source))
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "tab:\there newline:\nnext unicode:\u00e9 octal:A hex:A high:\u00e9", *candidates[1].Text)
}

func TestExtractor_LineContinuation(t *testing.T) {
	t.Parallel()

	// A backslash at physical end-of-line joins two source lines into
	// one logical line.
	source := "def f():\n    \"\"\"first half \\\nsecond half\"\"\"\n"

	candidates, err := New().Extract([]byte(source))
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	require.True(t, candidates[1].HasDocstring())
	assert.Equal(t, "first half second half", *candidates[1].Text)
	assert.NotContains(t, *candidates[1].Text, "\n")
}

func TestExtractor_FStringIsNotDocstring(t *testing.T) {
	t.Parallel()

	source := `def f():
    f"""computed {1 + 1}"""
`
	candidates, err := New().Extract([]byte(source))
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.False(t, candidates[1].HasDocstring())
}

func TestExtractor_CallIsNotDocstring(t *testing.T) {
	t.Parallel()

	source := `def f():
    str("not a docstring")
`
	candidates, err := New().Extract([]byte(source))
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.False(t, candidates[1].HasDocstring())
}

func TestExtractor_SyntaxError(t *testing.T) {
	t.Parallel()

	source := `def broken(:
    pass
`
	candidates, err := New().Extract([]byte(source))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.Nil(t, candidates)
}

func TestExtractor_InvalidUTF8(t *testing.T) {
	t.Parallel()

	source := []byte{0x22, 0x22, 0x22, 0xff, 0xfe, 0x22, 0x22, 0x22}
	candidates, err := New().Extract(source)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncoding)
	assert.Nil(t, candidates)
}

func TestExtractor_EmptyFile(t *testing.T) {
	t.Parallel()

	candidates, err := New().Extract([]byte(""))
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	assert.Equal(t, ScopeModule, candidates[0].Kind)
	assert.False(t, candidates[0].HasDocstring())
}

func TestExtractor_Idempotent(t *testing.T) {
	t.Parallel()

	source := []byte(`"""Module."""


def f():
    """Doc line one.

    ` + strings.Repeat("x", 80) + `
    """
`)

	e := New()
	first, err := e.Extract(source)
	require.NoError(t, err)
	second, err := e.Extract(source)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.Equal(t, first[i].StartLine, second[i].StartLine)
		if first[i].Text != nil {
			require.NotNil(t, second[i].Text)
			assert.Equal(t, *first[i].Text, *second[i].Text)
		}
	}
}

func TestExtractor_DecoratedFunction(t *testing.T) {
	t.Parallel()

	source := `import functools


@functools.cache
def cached():
    """Decorated function docstring."""
`
	candidates, err := New().Extract([]byte(source))
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "cached", candidates[1].Name)
	require.True(t, candidates[1].HasDocstring())
	assert.Equal(t, "Decorated function docstring.", *candidates[1].Text)
}
