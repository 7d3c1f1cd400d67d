package xmltree

import "github.com/lestrrat-go/option"

// Option is the common currency for every option constructor in this
// package, in the manner of the teacher's v2/options.go.
type Option = option.Interface

type identVersion struct{}
type identEncodingName struct{}
type identStandalone struct{}
type identIndent struct{}
type identIndentString struct{}
type identWriteDecl struct{}
type identAttrQuote struct{}

// DocumentOption configures a new Document's prolog fields.
type DocumentOption interface {
	Option
	documentOption()
}

type documentOption struct{ Option }

func (*documentOption) documentOption() {}

// WriteOption configures Document.Write* output formatting.
type WriteOption interface {
	Option
	writeOption()
}

type writeOption struct{ Option }

func (*writeOption) writeOption() {}

// WithVersion sets the XML version recorded in the prolog (default
// "1.0").
func WithVersion(v string) DocumentOption {
	return &documentOption{option.New(identVersion{}, v)}
}

// WithEncodingName records the encoding name in the prolog. It has no
// effect on how Write* encodes output, which is always UTF-8; it only
// controls what the declaration claims and what a re-parse would
// compare against.
func WithEncodingName(v string) DocumentOption {
	return &documentOption{option.New(identEncodingName{}, v)}
}

// StandaloneValue is the tri-state of the "standalone" pseudo-attribute.
type StandaloneValue int

const (
	StandaloneUnspecified StandaloneValue = iota
	StandaloneYes
	StandaloneNo
)

// WithStandalone sets the document's standalone declaration.
func WithStandalone(v StandaloneValue) DocumentOption {
	return &documentOption{option.New(identStandalone{}, v)}
}

// WithIndent turns on indentation with the given per-level string
// (e.g. "  ") for Document.Write*.
func WithIndent(indentStr string) WriteOption {
	return &writeOption{option.New(identIndentString{}, indentStr)}
}

// WithoutIndent disables indentation (the default).
func WithoutIndent() WriteOption {
	return &writeOption{option.New(identIndent{}, false)}
}

// WithDeclaration controls whether Write* emits a leading
// <?xml ... ?> declaration.
func WithDeclaration(b bool) WriteOption {
	return &writeOption{option.New(identWriteDecl{}, b)}
}

// AttrQuote is the character used to quote attribute values that
// don't force the other choice.
type AttrQuote byte

const (
	QuoteDouble AttrQuote = '"'
	QuoteSingle AttrQuote = '\''
)

// WithAttrQuote sets the writer's preferred attribute-quote character.
func WithAttrQuote(q AttrQuote) WriteOption {
	return &writeOption{option.New(identAttrQuote{}, q)}
}

// WriteOptions is the resolved, defaulted form of a WriteOption list.
type WriteOptions struct {
	Indent    bool
	IndentStr string
	WriteDecl bool
	AttrQuote AttrQuote
}

// DefaultWriteOptions matches spec: no indentation, declaration
// emitted, double-quoted attributes.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		Indent:    false,
		IndentStr: "  ",
		WriteDecl: true,
		AttrQuote: QuoteDouble,
	}
}

func resolveWriteOptions(opts []WriteOption) WriteOptions {
	w := DefaultWriteOptions()
	for _, opt := range opts {
		switch opt.Ident().(type) {
		case identIndentString:
			w.Indent = true
			w.IndentStr = opt.Value().(string)
		case identIndent:
			w.Indent = opt.Value().(bool)
		case identWriteDecl:
			w.WriteDecl = opt.Value().(bool)
		case identAttrQuote:
			w.AttrQuote = opt.Value().(AttrQuote)
		}
	}
	return w
}
