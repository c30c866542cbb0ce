package extractor

import (
	"strings"
	"unicode/utf8"
)

// decodeEscapes decodes Python string escape sequences to their
// character values. A backslash before a newline is a line
// continuation and joins the two physical lines. Escapes Python does
// not recognize are kept literally, matching CPython's behavior for
// str literals.
func decodeEscapes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			i++
			continue
		}

		next := s[i+1]
		switch next {
		case '\n':
			// Line continuation: both characters vanish.
			i += 2
		case '\r':
			// CRLF continuation.
			i += 2
			if i < len(s) && s[i] == '\n' {
				i++
			}
		case '\\', '\'', '"':
			b.WriteByte(next)
			i += 2
		case 'a':
			b.WriteByte('\a')
			i += 2
		case 'b':
			b.WriteByte('\b')
			i += 2
		case 'f':
			b.WriteByte('\f')
			i += 2
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'v':
			b.WriteByte('\v')
			i += 2
		case 'x':
			if v, n := hexValue(s[i+2:], 2); n == 2 {
				writeRune(&b, v)
				i += 4
			} else {
				b.WriteByte(c)
				i++
			}
		case 'u':
			if v, n := hexValue(s[i+2:], 4); n == 4 {
				writeRune(&b, v)
				i += 6
			} else {
				b.WriteByte(c)
				i++
			}
		case 'U':
			if v, n := hexValue(s[i+2:], 8); n == 8 {
				writeRune(&b, v)
				i += 10
			} else {
				b.WriteByte(c)
				i++
			}
		default:
			if next >= '0' && next <= '7' {
				v, n := octalValue(s[i+1:])
				writeRune(&b, v)
				i += 1 + n
			} else {
				// Unrecognized escape: keep the backslash.
				b.WriteByte(c)
				i++
			}
		}
	}

	return b.String()
}

func writeRune(b *strings.Builder, v int) {
	if v > utf8.MaxRune {
		b.WriteRune(utf8.RuneError)
		return
	}
	b.WriteRune(rune(v))
}

// hexValue reads up to max hex digits and returns the value and the
// number of digits consumed.
func hexValue(s string, max int) (int, int) {
	v := 0
	n := 0
	for n < max && n < len(s) {
		d := hexDigit(s[n])
		if d < 0 {
			break
		}
		v = v<<4 | d
		n++
	}
	return v, n
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// octalValue reads up to three octal digits.
func octalValue(s string) (int, int) {
	v := 0
	n := 0
	for n < 3 && n < len(s) && s[n] >= '0' && s[n] <= '7' {
		v = v<<3 | int(s[n]-'0')
		n++
	}
	return v, n
}

// literalPrefix splits a string token's opening delimiter (e.g.
// `r"""`, `B'`, `'''`) into its prefix letters and quote characters.
func literalPrefix(start string) (prefix, quote string) {
	for i := 0; i < len(start); i++ {
		if start[i] == '"' || start[i] == '\'' {
			return start[:i], start[i:]
		}
	}
	return start, ""
}

// isRawPrefix reports whether the prefix letters mark a raw string.
func isRawPrefix(prefix string) bool {
	return strings.ContainsAny(prefix, "rR")
}

// isPlainString reports whether a literal with the given prefix can
// be a docstring. f-strings and bytes literals never are.
func isPlainString(prefix string) bool {
	return !strings.ContainsAny(prefix, "fFbB")
}
