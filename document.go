package xmltree

// StandaloneType mirrors StandaloneValue but reflects what was
// actually observed on parse, including "no declaration at all",
// which a freshly-constructed Document cannot express through
// WithStandalone.
type StandaloneType int

const (
	StandaloneNoDecl StandaloneType = iota
	StandaloneImplicitNo
	StandaloneExplicitYes
	StandaloneExplicitNo
)

// Document owns an arena of element records plus the prolog metadata
// and default write options that travel with it.
type Document struct {
	arena *arena

	version    string
	encoding   string
	standalone StandaloneType

	writeOpts WriteOptions
}

// NewDocument returns an empty document: just the container-root
// sentinel, no root element yet.
func NewDocument(opts ...DocumentOption) *Document {
	d := &Document{
		arena:     newArena(),
		version:   "1.0",
		writeOpts: DefaultWriteOptions(),
	}
	for _, opt := range opts {
		switch opt.Ident().(type) {
		case identVersion:
			d.version = opt.Value().(string)
		case identEncodingName:
			d.encoding = opt.Value().(string)
		case identStandalone:
			switch opt.Value().(StandaloneValue) {
			case StandaloneYes:
				d.standalone = StandaloneExplicitYes
			case StandaloneNo:
				d.standalone = StandaloneExplicitNo
			default:
				d.standalone = StandaloneImplicitNo
			}
		}
	}
	return d
}

// Version is the XML version recorded in the prolog.
func (d *Document) Version() string { return d.version }

// Encoding is the encoding name recorded in the prolog (informational
// only; output is always UTF-8).
func (d *Document) Encoding() string { return d.encoding }

// Standalone is the standalone declaration observed or configured.
func (d *Document) Standalone() StandaloneType { return d.standalone }

// SetWriteOptions updates the document's default write options (those
// used by WriteString/Write/WriteFile when no override is given): each
// option in opts overrides the matching current setting, and settings
// not named in opts keep their current values.
func (d *Document) SetWriteOptions(opts ...WriteOption) {
	d.writeOpts = resolveWriteOptionsFrom(d.writeOpts, opts)
}

func resolveWriteOptionsFrom(base WriteOptions, opts []WriteOption) WriteOptions {
	w := base
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

// RootElement returns the document's single top-level element, if one
// has been attached to the container root.
func (d *Document) RootElement() (Element, bool) {
	root := d.arena.lookup(RootHandle)
	for _, c := range root.children {
		if c.IsElement() {
			return Element{doc: d, h: c.Handle}, true
		}
	}
	return Element{}, false
}

// Root returns the document's container-root sentinel as an Element
// view. Its stored parent reference is itself, and its Parent method
// reports no parent; its children are the prolog nodes, doctype, and
// (at most one) root element.
func (d *Document) Root() Element {
	return Element{doc: d, h: RootHandle}
}

// IsEmpty reports whether the document's arena holds nothing but the
// container-root sentinel: no element has ever been created in it.
func (d *Document) IsEmpty() bool {
	return d.arena.len() == 1
}

// CreateElement allocates a new, detached element named name. It is
// not attached to any parent until pushed/inserted via an Element
// mutation method.
func (d *Document) CreateElement(name string) (Element, error) {
	if !isValidName(name) {
		return Element{}, ErrMalformedName
	}
	h := d.arena.allocate(newRecord(name, noParent))
	return Element{doc: d, h: h}, nil
}

// Clone deep-copies the document. The two documents share no mutable
// state; handles remain valid across the copy since the arena is
// copied index-for-index.
func (d *Document) Clone() *Document {
	return &Document{
		arena:      d.arena.clone(),
		version:    d.version,
		encoding:   d.encoding,
		standalone: d.standalone,
		writeOpts:  d.writeOpts,
	}
}
