package xmltree

import (
	"io"
	"strings"

	"github.com/kagome-go/xmltree/internal/pool"
)

// writeEscapedText writes s as XML character data: '&' and '<' are
// always escaped; '>' is escaped only when it immediately follows
// "]]", to avoid accidentally producing a CDATA-section terminator.
func writeEscapedText(w io.Writer, s string) error {
	buf := pool.Get()
	defer pool.Put(buf)

	trailingBrackets := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '&':
			buf = append(buf, "&amp;"...)
			trailingBrackets = 0
		case '<':
			buf = append(buf, "&lt;"...)
			trailingBrackets = 0
		case '>':
			if trailingBrackets >= 2 {
				buf = append(buf, "&gt;"...)
			} else {
				buf = append(buf, '>')
			}
			trailingBrackets = 0
		case ']':
			buf = append(buf, ']')
			trailingBrackets++
		default:
			buf = append(buf, c)
			trailingBrackets = 0
		}
	}
	_, err := w.Write(buf)
	return err
}

// writeEscapedAttr writes s as the interior of an attribute value
// quoted with quote: '&' and '<' are escaped, the active quote
// character is escaped, and literal tab/newline/CR are normalized to
// character references so a later parse's attribute-value
// normalization can't alter the value.
func writeEscapedAttr(w io.Writer, s string, quote byte) error {
	buf := pool.Get()
	defer pool.Put(buf)

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '&':
			buf = append(buf, "&amp;"...)
		case c == '<':
			buf = append(buf, "&lt;"...)
		case c == quote && quote == '"':
			buf = append(buf, "&quot;"...)
		case c == quote && quote == '\'':
			buf = append(buf, "&apos;"...)
		case c == '\t':
			buf = append(buf, "&#x9;"...)
		case c == '\n':
			buf = append(buf, "&#xA;"...)
		case c == '\r':
			buf = append(buf, "&#xD;"...)
		default:
			buf = append(buf, c)
		}
	}
	_, err := w.Write(buf)
	return err
}

// chooseQuote applies the writer's quote policy: use preferred unless
// the value contains it, in which case fall back to the other quote
// character; if the value contains both, keep preferred and rely on
// writeEscapedAttr to escape it.
func chooseQuote(preferred AttrQuote, value string) byte {
	q := byte(preferred)
	if strings.IndexByte(value, q) < 0 {
		return q
	}
	other := byte('\'')
	if q == '\'' {
		other = '"'
	}
	if strings.IndexByte(value, other) < 0 {
		return other
	}
	return q
}
