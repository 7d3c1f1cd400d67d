// Package token implements the low-level, event-push XML tokenizer
// that sits underneath the tree-building parser. It understands
// quoting and comment/CDATA/DOCTYPE boundary detection only; entity
// expansion and attribute-value normalization are left to the caller,
// exactly as spec'd for the "external tokenizer" collaborator.
package token

import (
	"bytes"
	"fmt"

	"github.com/lestrrat-go/strcursor"
)

// Kind identifies the shape of an Event.
type Kind int

const (
	StartTag Kind = iota
	EndTag
	EmptyTag
	Text
	CDATA
	Comment
	PI
	Decl
	DocType
	Eof
)

func (k Kind) String() string {
	switch k {
	case StartTag:
		return "StartTag"
	case EndTag:
		return "EndTag"
	case EmptyTag:
		return "EmptyTag"
	case Text:
		return "Text"
	case CDATA:
		return "CDATA"
	case Comment:
		return "Comment"
	case PI:
		return "PI"
	case Decl:
		return "Decl"
	case DocType:
		return "DocType"
	case Eof:
		return "Eof"
	default:
		return "Unknown"
	}
}

// RawAttr is a single unparsed attribute: name plus its quoted value's
// interior, with quoting already stripped but no entity expansion or
// whitespace normalization applied.
type RawAttr struct {
	Name  string
	Value string
}

// Event is a single tokenizer event. Not all fields are meaningful for
// every Kind; see the Kind-specific comments in the Tokenizer scan
// methods.
type Event struct {
	Kind   Kind
	Offset int
	Raw    []byte
	Name   string // StartTag / EndTag / EmptyTag
	Attrs  []RawAttr
	Data   string // Text / CDATA / Comment / DocType body / Decl raw content
	Target string // PI target
}

// Position locates a byte in the input for error reporting.
type Position struct {
	Offset  int
	Line    int
	Column  int
	Snippet string
}

// SyntaxError is returned when the tokenizer encounters input it
// cannot make sense of at the byte level (unterminated tag, unclosed
// comment, and so on).
type SyntaxError struct {
	Msg string
	Pos Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d\n -> %q <-- around here",
		e.Msg, e.Pos.Line, e.Pos.Column, e.Pos.Snippet)
}

// Handler receives events pushed by a Tokenizer. Returning a non-nil
// error aborts tokenization; Run propagates it verbatim.
type Handler interface {
	HandleEvent(Event) error
}

// Tokenizer drives a strcursor.Cursor over a byte buffer, pushing
// Events to a Handler. It never looks back: once an event has been
// emitted, its bytes are gone.
type Tokenizer struct {
	cur *strcursor.Cursor
	h   Handler
}

// New creates a Tokenizer over b that will push events to h.
func New(b []byte, h Handler) *Tokenizer {
	return &Tokenizer{cur: strcursor.New(b), h: h}
}

func (t *Tokenizer) pos() Position {
	return Position{
		Offset:  t.cur.OffsetBytes(),
		Line:    t.cur.LineNumber(),
		Column:  t.cur.Column(),
		Snippet: t.cur.CurrentLine(),
	}
}

func (t *Tokenizer) errf(format string, args ...interface{}) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Pos: t.pos()}
}

func (t *Tokenizer) emit(ev Event) error {
	return t.h.HandleEvent(ev)
}

// Run scans the whole buffer, pushing one event per markup construct
// or text run, terminating with a single Eof event (or the first
// SyntaxError).
func (t *Tokenizer) Run() error {
	for {
		if t.cur.Done() {
			return t.emit(Event{Kind: Eof, Offset: t.cur.OffsetBytes()})
		}
		if t.cur.HasPrefix("<") {
			if err := t.scanMarkup(); err != nil {
				return err
			}
			continue
		}
		if err := t.scanText(); err != nil {
			return err
		}
	}
}

func (t *Tokenizer) scanText() error {
	offset := t.cur.OffsetBytes()
	rest := t.cur.Bytes()
	idx := bytes.IndexByte(rest, '<')
	if idx < 0 {
		idx = len(rest)
	}
	if idx == 0 {
		return t.errf("empty text run")
	}
	chunk := rest[:idx]
	t.cur.Advance(idx)
	return t.emit(Event{Kind: Text, Offset: offset, Raw: chunk, Data: string(chunk)})
}

func (t *Tokenizer) scanMarkup() error {
	switch {
	case t.cur.HasPrefix("<?xml") && isDeclBoundary(t.cur.Bytes()):
		return t.scanDecl()
	case t.cur.HasPrefix("<?"):
		return t.scanPI()
	case t.cur.HasPrefix("<!--"):
		return t.scanComment()
	case t.cur.HasPrefix("<![CDATA["):
		return t.scanCDATA()
	case t.cur.HasPrefix("<!DOCTYPE"):
		return t.scanDocType()
	case t.cur.HasPrefix("</"):
		return t.scanEndTag()
	default:
		return t.scanStartOrEmptyTag()
	}
}

// isDeclBoundary reports whether the bytes right after "<?xml" look
// like the start of an XML declaration (whitespace or "?") rather than
// a PI whose target merely starts with "xml" (e.g. "<?xml-stylesheet").
func isDeclBoundary(afterLT []byte) bool {
	if len(afterLT) < 6 {
		return len(afterLT) == 5 // just "<?xml" at EOF, let the parser fail later
	}
	c := afterLT[5]
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '?'
}

func (t *Tokenizer) scanDecl() error {
	offset := t.cur.OffsetBytes()
	t.cur.Advance(len("<?xml"))
	body, err := t.consumeUntil("?>")
	if err != nil {
		return t.errf("unterminated XML declaration")
	}
	return t.emit(Event{Kind: Decl, Offset: offset, Data: string(bytes.TrimSpace(body))})
}

func (t *Tokenizer) scanPI() error {
	offset := t.cur.OffsetBytes()
	t.cur.Advance(len("<?"))
	body, err := t.consumeUntil("?>")
	if err != nil {
		return t.errf("unterminated processing instruction")
	}
	target := body
	data := []byte{}
	for i, c := range body {
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			target = body[:i]
			data = bytes.TrimLeft(body[i:], " \t\r\n")
			break
		}
	}
	return t.emit(Event{Kind: PI, Offset: offset, Target: string(target), Data: string(data)})
}

func (t *Tokenizer) scanComment() error {
	offset := t.cur.OffsetBytes()
	t.cur.Advance(len("<!--"))
	body, err := t.consumeUntil("-->")
	if err != nil {
		return t.errf("unterminated comment")
	}
	return t.emit(Event{Kind: Comment, Offset: offset, Data: string(body)})
}

func (t *Tokenizer) scanCDATA() error {
	offset := t.cur.OffsetBytes()
	t.cur.Advance(len("<![CDATA["))
	body, err := t.consumeUntil("]]>")
	if err != nil {
		return t.errf("unterminated CDATA section")
	}
	return t.emit(Event{Kind: CDATA, Offset: offset, Data: string(body)})
}

// scanDocType consumes "<!DOCTYPE" up to the matching top-level '>',
// tracking nested '<'/'>' depth (for a bracketed internal subset) and
// skipping quoted spans so quoted '>' don't terminate early.
func (t *Tokenizer) scanDocType() error {
	offset := t.cur.OffsetBytes()
	t.cur.Advance(len("<!DOCTYPE"))
	depth := 1
	var buf bytes.Buffer
	var quote byte
	for {
		if t.cur.Done() {
			return t.errf("unterminated DOCTYPE declaration")
		}
		b := t.cur.PeekBytes(1)[0]
		t.cur.Advance(1)
		if quote != 0 {
			buf.WriteByte(b)
			if b == quote {
				quote = 0
			}
			continue
		}
		switch b {
		case '\'', '"':
			quote = b
			buf.WriteByte(b)
		case '<':
			depth++
			buf.WriteByte(b)
		case '>':
			depth--
			if depth == 0 {
				return t.emit(Event{Kind: DocType, Offset: offset, Data: string(bytes.TrimSpace(buf.Bytes()))})
			}
			buf.WriteByte(b)
		default:
			buf.WriteByte(b)
		}
	}
}

func (t *Tokenizer) scanEndTag() error {
	offset := t.cur.OffsetBytes()
	t.cur.Advance(len("</"))
	rest := t.cur.Bytes()
	idx := bytes.IndexByte(rest, '>')
	if idx < 0 {
		return t.errf("unterminated end tag")
	}
	name := bytes.TrimSpace(rest[:idx])
	t.cur.Advance(idx + 1)
	return t.emit(Event{Kind: EndTag, Offset: offset, Name: string(name)})
}

func (t *Tokenizer) scanStartOrEmptyTag() error {
	offset := t.cur.OffsetBytes()
	t.cur.Advance(1) // '<'
	name, err := t.scanName()
	if err != nil {
		return t.errf("malformed start tag: %s", err)
	}
	attrs, empty, err := t.scanAttrs()
	if err != nil {
		return err
	}
	kind := StartTag
	if empty {
		kind = EmptyTag
	}
	return t.emit(Event{Kind: kind, Offset: offset, Name: name, Attrs: attrs})
}

func (t *Tokenizer) scanName() (string, error) {
	rest := t.cur.Bytes()
	i := 0
	for i < len(rest) && !isNameBoundary(rest[i]) {
		i++
	}
	if i == 0 {
		return "", fmt.Errorf("expected a name")
	}
	t.cur.Advance(i)
	return string(rest[:i]), nil
}

func isNameBoundary(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '>', '/', '=':
		return true
	default:
		return false
	}
}

func (t *Tokenizer) skipBlanks() {
	rest := t.cur.Bytes()
	i := 0
	for i < len(rest) {
		switch rest[i] {
		case ' ', '\t', '\r', '\n':
			i++
			continue
		}
		break
	}
	if i > 0 {
		t.cur.Advance(i)
	}
}

func (t *Tokenizer) scanAttrs() ([]RawAttr, bool, error) {
	var attrs []RawAttr
	for {
		t.skipBlanks()
		if t.cur.Done() {
			return nil, false, t.errf("unterminated tag")
		}
		if t.cur.ConsumePrefix("/>") {
			return attrs, true, nil
		}
		if t.cur.ConsumePrefix(">") {
			return attrs, false, nil
		}
		name, err := t.scanName()
		if err != nil {
			return nil, false, t.errf("malformed attribute name: %s", err)
		}
		t.skipBlanks()
		if !t.cur.ConsumePrefix("=") {
			return nil, false, t.errf("expected '=' after attribute name %q", name)
		}
		t.skipBlanks()
		value, err := t.scanQuoted()
		if err != nil {
			return nil, false, t.errf("malformed value for attribute %q: %s", name, err)
		}
		attrs = append(attrs, RawAttr{Name: name, Value: value})
	}
}

func (t *Tokenizer) scanQuoted() (string, error) {
	if t.cur.Done() {
		return "", fmt.Errorf("unexpected end of input")
	}
	q := t.cur.PeekBytes(1)[0]
	if q != '\'' && q != '"' {
		return "", fmt.Errorf("expected a quote character")
	}
	t.cur.Advance(1)
	rest := t.cur.Bytes()
	idx := bytes.IndexByte(rest, q)
	if idx < 0 {
		return "", fmt.Errorf("unterminated quoted value")
	}
	value := string(rest[:idx])
	t.cur.Advance(idx + 1)
	return value, nil
}

// consumeUntil advances the cursor past the first occurrence of sep,
// returning the bytes strictly before it.
func (t *Tokenizer) consumeUntil(sep string) ([]byte, error) {
	rest := t.cur.Bytes()
	idx := bytes.Index(rest, []byte(sep))
	if idx < 0 {
		return nil, fmt.Errorf("delimiter %q not found", sep)
	}
	body := rest[:idx]
	t.cur.Advance(idx + len(sep))
	return body, nil
}
