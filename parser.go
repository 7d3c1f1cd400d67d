package xmltree

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/lestrrat-go/pdebug/v3"

	"github.com/kagome-go/xmltree/encoding"
	"github.com/kagome-go/xmltree/internal/token"
)

// Parse decodes src (in whatever encoding it declares or is detected
// to carry) and builds a *Document from it, or returns the first
// well-formedness error encountered. Parsing is fail-fast: on error
// the partially-built tree is discarded, not returned.
func Parse(src []byte) (*Document, error) {
	if pdebug.Enabled {
		g := pdebug.FuncMarker()
		defer g.End()
	}

	decoded, err := encoding.Detect(src)
	if err != nil {
		if mismatch, ok := err.(*encoding.ErrMismatch); ok {
			return nil, fmt.Errorf("%w: %s", ErrEncodingMismatch, mismatch)
		}
		if errors.Is(err, encoding.ErrUnsupported) {
			return nil, fmt.Errorf("%w: %s", ErrEncodingNotSupported, err)
		}
		return nil, fmt.Errorf("%w: %s", ErrCannotDecode, err)
	}

	ctx := newParserCtx(decoded.UTF8)
	if err := token.New(decoded.UTF8, ctx).Run(); err != nil {
		if se, ok := err.(*token.SyntaxError); ok {
			return nil, &ParseError{Err: fmt.Errorf("%w: %s", ErrMalformedXML, se.Msg), Offset: se.Pos.Offset, Line: se.Pos.Line, Column: se.Pos.Column, Snippet: se.Pos.Snippet}
		}
		return nil, err
	}
	return ctx.doc, nil
}

// ParseString is Parse over the UTF-8 bytes of s.
func ParseString(s string) (*Document, error) {
	return Parse([]byte(s))
}

// ParseReader reads r to completion and parses the result.
func ParseReader(r io.Reader) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, wrapIO(err, "read")
	}
	return Parse(b)
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapIO(err, "read "+path)
	}
	return Parse(b)
}
