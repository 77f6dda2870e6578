package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// stringValue returns the cooked value of a JS string literal given its raw
// source text including quotes.
func stringValue(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	q := raw[0]
	if (q != '"' && q != '\'') || raw[len(raw)-1] != q {
		return raw
	}
	return unescapeJS(raw[1 : len(raw)-1])
}

// jsxStringValue strips the quotes of a JSX attribute string. JSX attribute
// strings carry no escape sequences.
func jsxStringValue(raw string) string {
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[len(raw)-1] == raw[0] {
		return raw[1 : len(raw)-1]
	}
	return raw
}

func unescapeJS(s string) string {
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
		i++
		switch e := s[i]; e {
		case 'n':
			b.WriteByte('\n')
			i++
		case 't':
			b.WriteByte('\t')
			i++
		case 'r':
			b.WriteByte('\r')
			i++
		case 'b':
			b.WriteByte('\b')
			i++
		case 'f':
			b.WriteByte('\f')
			i++
		case 'v':
			b.WriteByte('\v')
			i++
		case '0':
			b.WriteByte(0)
			i++
		case '\r':
			// line continuation, \r\n counts once
			i++
			if i < len(s) && s[i] == '\n' {
				i++
			}
		case '\n':
			i++
		case 'x':
			if r, n := hexRune(s[i+1:], 2); n > 0 {
				b.WriteRune(r)
				i += 1 + n
			} else {
				b.WriteByte(e)
				i++
			}
		case 'u':
			r, n := unicodeEscape(s[i+1:])
			if n == 0 {
				b.WriteByte(e)
				i++
				continue
			}
			i += 1 + n
			// surrogate pairs arrive as two escapes
			if r >= 0xD800 && r < 0xDC00 && strings.HasPrefix(s[i:], `\u`) {
				if lo, m := unicodeEscape(s[i+2:]); m > 0 && lo >= 0xDC00 && lo < 0xE000 {
					r = (r-0xD800)<<10 + (lo - 0xDC00) + 0x10000
					i += 2 + m
				}
			}
			if r >= 0xD800 && r < 0xE000 {
				r = utf8.RuneError
			}
			b.WriteRune(r)
		default:
			_, size := utf8.DecodeRuneInString(s[i:])
			b.WriteString(s[i : i+size])
			i += size
		}
	}
	return b.String()
}

// unicodeEscape decodes the part after \u: either XXXX or {X...}.
func unicodeEscape(s string) (rune, int) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0
		}
		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, 0
		}
		return rune(v), end + 1
	}
	return hexRune(s, 4)
}

func hexRune(s string, width int) (rune, int) {
	if len(s) < width {
		return 0, 0
	}
	v, err := strconv.ParseUint(s[:width], 16, 32)
	if err != nil {
		return 0, 0
	}
	return rune(v), width
}
