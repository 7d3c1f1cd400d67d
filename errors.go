package xmltree

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel error kinds. Well-formedness errors found by Parse are
// wrapped in a *ParseError carrying a position; encoding-layer errors
// (CannotDecode, EncodingNotSupported, EncodingMismatch) are wrapped
// with detail but carry no position. Mutation-time occurrences
// (HasAParent, CyclicReference, MalformedName, MultipleRoots) are
// returned bare, since Element operations have no byte offset to
// report.
var (
	ErrCannotDecode                = errors.New("cannot decode input")
	ErrEncodingNotSupported        = errors.New("encoding not supported")
	ErrEncodingMismatch            = errors.New("declared encoding disagrees with detected encoding")
	ErrMalformedXML                = errors.New("not well-formed XML")
	ErrMisplacedXMLDecl            = errors.New("XML declaration must be the very first thing in the document")
	ErrMisplacedDocType            = errors.New("DOCTYPE must appear before the root element")
	ErrDoubleDocType               = errors.New("document may have at most one DOCTYPE")
	ErrMultipleRoots               = errors.New("document may have at most one root element")
	ErrMismatchedEndTag            = errors.New("end tag does not match the innermost open start tag")
	ErrUnclosedTag                 = errors.New("element was never closed")
	ErrDuplicateAttribute          = errors.New("duplicate attribute")
	ErrUnknownEntity               = errors.New("reference to an unknown entity")
	ErrInvalidCharRef              = errors.New("character reference does not name a valid code point")
	ErrMalformedName               = errors.New("not a well-formed XML name")
	ErrHasAParent                  = errors.New("node already belongs to another parent")
	ErrCyclicReference             = errors.New("operation would make a node its own ancestor")
	ErrContainsCDATAEnd            = errors.New("CDATA section body contains \"]]>\"")
	ErrCommentContainsDoubleHyphen = errors.New("comment body contains \"--\", which cannot be written back as XML")
	ErrMalformedXMLOutsideRoot     = errors.New("non-whitespace content outside the root element")
)

// ParseError decorates a well-formedness error with the position at
// which it was detected, in the manner of the teacher's ErrParseError.
type ParseError struct {
	Err     error
	Offset  int
	Line    int
	Column  int
	Snippet string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d (byte offset %d)\n -> %q <-- around here",
		e.Err, e.Line, e.Column, e.Offset, e.Snippet)
}

func (e *ParseError) Unwrap() error { return e.Err }

// wrapIO gives file/stream errors a consistent, greppable prefix
// without hiding the underlying error from errors.Is/As.
func wrapIO(err error, op string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "xmltree: %s", op)
}
