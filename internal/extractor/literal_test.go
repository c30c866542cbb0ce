package extractor

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEscapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no escapes", "plain text", "plain text"},
		{"newline", `a\nb`, "a\nb"},
		{"tab", `a\tb`, "a\tb"},
		{"backslash", `a\\b`, `a\b`},
		{"quotes", `\'x\"`, `'x"`},
		{"bell and friends", `\a\b\f\r\v`, "\a\b\f\r\v"},
		{"octal", `\101\10\1`, "A\x08\x01"},
		{"hex", `\x41\x7a`, "Az"},
		{"hex above ascii", `\xe9`, "é"},
		{"adjacent hex stay separate", `\xc3\xa9`, "Ã©"},
		{"octal above ascii", `\351`, "é"},
		{"short hex kept literally", `\x4`, `\x4`},
		{"unicode 4", `\u00e9`, "é"},
		{"unicode 8", `\U0001F600`, "😀"},
		{"unknown escape kept", `\d+\w`, `\d+\w`},
		{"line continuation", "one \\\ntwo", "one two"},
		{"crlf continuation", "one \\\r\ntwo", "one two"},
		{"trailing backslash", `end\`, `end\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, decodeEscapes(tt.in))
		})
	}
}

func TestDecodeEscapes_HighEscapesAreCodePoints(t *testing.T) {
	t.Parallel()

	// `\xNN` and octal escapes name code points, not raw bytes: the
	// decoded text must stay valid UTF-8 and count one rune per escape.
	got := decodeEscapes(`\xc3\xa9`)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 2, utf8.RuneCountInString(got))

	got = decodeEscapes(`\xe9`)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "é", got)
}

func TestLiteralPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		start  string
		prefix string
		quote  string
	}{
		{`"""`, "", `"""`},
		{`'`, "", `'`},
		{`r"""`, "r", `"""`},
		{`R'`, "R", `'`},
		{`u"`, "u", `"`},
		{`rb'''`, "rb", `'''`},
	}

	for _, tt := range tests {
		prefix, quote := literalPrefix(tt.start)
		assert.Equal(t, tt.prefix, prefix, "prefix of %q", tt.start)
		assert.Equal(t, tt.quote, quote, "quote of %q", tt.start)
	}
}

func TestPrefixClassification(t *testing.T) {
	t.Parallel()

	assert.True(t, isRawPrefix("r"))
	assert.True(t, isRawPrefix("Rb"))
	assert.False(t, isRawPrefix("u"))
	assert.False(t, isRawPrefix(""))

	assert.True(t, isPlainString(""))
	assert.True(t, isPlainString("r"))
	assert.True(t, isPlainString("u"))
	assert.False(t, isPlainString("f"))
	assert.False(t, isPlainString("rb"))
	assert.False(t, isPlainString("B"))
}
