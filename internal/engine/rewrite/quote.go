package rewrite

import (
	"bytes"
	"encoding/json"
	"strings"
)

// QuoteLiteral serializes s as a JSON string and then re-quotes it with
// quote, so the replacement matches the literal it overwrites.
func QuoteLiteral(s string, quote byte) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// Encoding a string cannot fail.
		panic(err)
	}
	encoded := strings.TrimSuffix(buf.String(), "\n")
	if quote != '\'' {
		return encoded
	}

	body := encoded[1 : len(encoded)-1]
	var b strings.Builder
	b.Grow(len(body) + 2)
	b.WriteByte('\'')
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			if body[i+1] == '"' {
				b.WriteByte('"')
			} else {
				b.WriteByte('\\')
				b.WriteByte(body[i+1])
			}
			i++
		case c == '\'':
			b.WriteString(`\'`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// JSXAttributeValue renders s as a JSX attribute value. JSX attribute strings
// have no escape sequences, so s is written verbatim and the quote flips when
// s contains it. A value holding both quote characters becomes an expression
// container.
func JSXAttributeValue(s string, quote byte) string {
	if quote != '\'' {
		quote = '"'
	}
	other := byte('\'')
	if quote == '\'' {
		other = '"'
	}
	switch {
	case strings.IndexByte(s, quote) < 0:
		return string(quote) + s + string(quote)
	case strings.IndexByte(s, other) < 0:
		return string(other) + s + string(other)
	}
	return "{" + QuoteLiteral(s, '"') + "}"
}
