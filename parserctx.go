package xmltree

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lestrrat-go/pdebug/v3"

	"github.com/kagome-go/xmltree/internal/token"
)

// parserCtx drives tree construction from tokenizer events. It holds
// an explicit stack of open element handles plus the current insertion
// point, per the "parser is a push driver" design: it never recurses
// into the tokenizer, it only reacts to events pushed to it.
type parserCtx struct {
	doc *Document
	src []byte

	stack []Handle
	cur   Handle // RootHandle when stack is empty

	seenDecl    bool
	seenDocType bool
	seenRoot    bool
	rootClosed  bool
}

func newParserCtx(src []byte) *parserCtx {
	return &parserCtx{
		doc: NewDocument(),
		src: src,
		cur: RootHandle,
	}
}

func (ctx *parserCtx) fail(offset int, err error) error {
	line, col, snippet := locate(ctx.src, offset)
	return &ParseError{Err: err, Offset: offset, Line: line, Column: col, Snippet: snippet}
}

// locate computes 1-based line/column and the enclosing line's text
// for a byte offset into src.
func locate(src []byte, offset int) (line, col int, snippet string) {
	if offset > len(src) {
		offset = len(src)
	}
	line = 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col = offset - lineStart + 1
	end := len(src)
	if idx := indexByteFrom(src, '\n', lineStart); idx >= 0 {
		end = idx
	}
	return line, col, string(src[lineStart:end])
}

func indexByteFrom(src []byte, b byte, from int) int {
	for i := from; i < len(src); i++ {
		if src[i] == b {
			return i
		}
	}
	return -1
}

// HandleEvent implements token.Handler.
func (ctx *parserCtx) HandleEvent(ev token.Event) error {
	if pdebug.Enabled {
		g := pdebug.FuncMarker()
		defer g.End()
		pdebug.Printf("HandleEvent: %s", ev.Kind)
	}

	switch ev.Kind {
	case token.Decl:
		return ctx.handleDecl(ev)
	case token.DocType:
		return ctx.handleDocType(ev)
	case token.PI:
		return ctx.handlePI(ev)
	case token.Comment:
		return ctx.handleComment(ev)
	case token.StartTag:
		return ctx.handleStartTag(ev, false)
	case token.EmptyTag:
		return ctx.handleStartTag(ev, true)
	case token.EndTag:
		return ctx.handleEndTag(ev)
	case token.Text:
		return ctx.handleText(ev)
	case token.CDATA:
		return ctx.handleCDATA(ev)
	case token.Eof:
		return ctx.handleEOF(ev)
	default:
		return ctx.fail(ev.Offset, ErrMalformedXML)
	}
}

func (ctx *parserCtx) handleDecl(ev token.Event) error {
	if ctx.seenDecl || ctx.seenDocType || ctx.seenRoot {
		return ctx.fail(ev.Offset, ErrMisplacedXMLDecl)
	}
	ctx.seenDecl = true
	attrs, err := parsePseudoAttrs(ev.Data)
	if err != nil {
		return ctx.fail(ev.Offset, err)
	}
	if v, ok := attrs["version"]; ok {
		ctx.doc.version = v
	}
	if v, ok := attrs["encoding"]; ok {
		ctx.doc.encoding = v
	}
	if v, ok := attrs["standalone"]; ok {
		switch v {
		case "yes":
			ctx.doc.standalone = StandaloneExplicitYes
		case "no":
			ctx.doc.standalone = StandaloneExplicitNo
		}
	} else {
		ctx.doc.standalone = StandaloneImplicitNo
	}
	return nil
}

func (ctx *parserCtx) handleDocType(ev token.Event) error {
	if ctx.seenDocType {
		return ctx.fail(ev.Offset, ErrDoubleDocType)
	}
	if ctx.seenRoot {
		return ctx.fail(ev.Offset, ErrMisplacedDocType)
	}
	ctx.seenDocType = true
	return ctx.doc.Root().PushChild(NewDocType(ev.Data))
}

func (ctx *parserCtx) handlePI(ev token.Event) error {
	return ctx.currentElement().PushChild(NewPI(ev.Target, ev.Data))
}

func (ctx *parserCtx) handleComment(ev token.Event) error {
	return ctx.currentElement().PushChild(NewComment(ev.Data))
}

func (ctx *parserCtx) currentElement() Element {
	return Element{doc: ctx.doc, h: ctx.cur}
}

func (ctx *parserCtx) handleStartTag(ev token.Event, empty bool) error {
	if len(ctx.stack) == 0 && ctx.rootClosed {
		return ctx.fail(ev.Offset, ErrMultipleRoots)
	}

	e, err := ctx.doc.CreateElement(ev.Name)
	if err != nil {
		return ctx.fail(ev.Offset, err)
	}

	seen := make(map[string]struct{}, len(ev.Attrs))
	for _, a := range ev.Attrs {
		if _, dup := seen[a.Name]; dup {
			return ctx.fail(ev.Offset, ErrDuplicateAttribute)
		}
		seen[a.Name] = struct{}{}

		value, err := expandRefs(a.Value, true)
		if err != nil {
			return ctx.fail(ev.Offset, err)
		}
		if err := e.SetAttribute(a.Name, value); err != nil {
			return ctx.fail(ev.Offset, err)
		}
	}

	if err := ctx.currentElement().PushChild(Node{Kind: KindElement, Handle: e.Handle()}); err != nil {
		return ctx.fail(ev.Offset, err)
	}

	if len(ctx.stack) == 0 {
		ctx.seenRoot = true
	}

	if empty {
		if len(ctx.stack) == 0 {
			ctx.rootClosed = true
		}
		return nil
	}

	ctx.stack = append(ctx.stack, e.Handle())
	ctx.cur = e.Handle()
	return nil
}

func (ctx *parserCtx) handleEndTag(ev token.Event) error {
	if len(ctx.stack) == 0 {
		return ctx.fail(ev.Offset, ErrMismatchedEndTag)
	}
	top := ctx.stack[len(ctx.stack)-1]
	if (Element{doc: ctx.doc, h: top}).Name() != ev.Name {
		return ctx.fail(ev.Offset, ErrMismatchedEndTag)
	}
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	if len(ctx.stack) == 0 {
		ctx.cur = RootHandle
		ctx.rootClosed = true
	} else {
		ctx.cur = ctx.stack[len(ctx.stack)-1]
	}
	return nil
}

func (ctx *parserCtx) handleText(ev token.Event) error {
	if ctx.cur == RootHandle {
		if strings.TrimSpace(ev.Data) == "" {
			return nil
		}
		return ctx.fail(ev.Offset, ErrMalformedXMLOutsideRoot)
	}
	decoded, err := expandRefs(ev.Data, false)
	if err != nil {
		return ctx.fail(ev.Offset, err)
	}
	return ctx.currentElement().PushChild(NewText(decoded))
}

func (ctx *parserCtx) handleCDATA(ev token.Event) error {
	if ctx.cur == RootHandle {
		return ctx.fail(ev.Offset, ErrMalformedXMLOutsideRoot)
	}
	return ctx.currentElement().PushChild(NewCDATA(ev.Data))
}

func (ctx *parserCtx) handleEOF(ev token.Event) error {
	if len(ctx.stack) != 0 {
		return ctx.fail(ev.Offset, ErrUnclosedTag)
	}
	return nil
}

// parsePseudoAttrs parses the space-separated name="value" pairs of an
// XML/text declaration body (already stripped of the leading "<?xml"
// and trailing "?>").
func parsePseudoAttrs(s string) (map[string]string, error) {
	out := map[string]string{}
	i := 0
	for i < len(s) {
		for i < len(s) && isXMLSpace(s[i]) {
			i++
		}
		if i >= len(s) {
			break
		}
		start := i
		for i < len(s) && s[i] != '=' && !isXMLSpace(s[i]) {
			i++
		}
		name := s[start:i]
		for i < len(s) && isXMLSpace(s[i]) {
			i++
		}
		if i >= len(s) || s[i] != '=' {
			return nil, ErrMalformedXML
		}
		i++
		for i < len(s) && isXMLSpace(s[i]) {
			i++
		}
		if i >= len(s) || (s[i] != '"' && s[i] != '\'') {
			return nil, ErrMalformedXML
		}
		q := s[i]
		i++
		vstart := i
		for i < len(s) && s[i] != q {
			i++
		}
		if i >= len(s) {
			return nil, ErrMalformedXML
		}
		out[name] = s[vstart:i]
		i++
	}
	return out, nil
}

func isXMLSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// expandRefs replaces every entity and character reference in s with
// its expansion. If normalizeWS is true, literal whitespace characters
// (not those produced by an expansion) are each replaced by a single
// space, per XML 1.0 attribute-value normalization; text nodes pass
// normalizeWS=false to preserve whitespace verbatim.
func expandRefs(s string, normalizeWS bool) (string, error) {
	if !strings.ContainsRune(s, '&') && (!normalizeWS || !containsLiteralWhitespace(s)) {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '&' {
			end := strings.IndexByte(s[i:], ';')
			if end < 0 {
				return "", ErrUnknownEntity
			}
			ref := s[i+1 : i+end]
			expansion, err := resolveReference(ref)
			if err != nil {
				return "", err
			}
			b.WriteString(expansion)
			i += end + 1
			continue
		}
		if normalizeWS && isXMLSpace(c) {
			b.WriteByte(' ')
			i++
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		if size == 0 {
			size = 1
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String(), nil
}

func containsLiteralWhitespace(s string) bool {
	for i := 0; i < len(s); i++ {
		if isXMLSpace(s[i]) {
			return true
		}
	}
	return false
}

func resolveReference(ref string) (string, error) {
	switch ref {
	case "amp":
		return "&", nil
	case "lt":
		return "<", nil
	case "gt":
		return ">", nil
	case "quot":
		return "\"", nil
	case "apos":
		return "'", nil
	}
	if len(ref) > 1 && ref[0] == '#' {
		var n int64
		var err error
		if len(ref) > 2 && (ref[1] == 'x' || ref[1] == 'X') {
			n, err = strconv.ParseInt(ref[2:], 16, 32)
		} else {
			n, err = strconv.ParseInt(ref[1:], 10, 32)
		}
		if err != nil {
			return "", ErrInvalidCharRef
		}
		r := rune(n)
		if n < 0 || !utf8.ValidRune(r) {
			return "", ErrInvalidCharRef
		}
		return string(r), nil
	}
	return "", ErrUnknownEntity
}
