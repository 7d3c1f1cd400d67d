package xmltree

// Builder is a fluent convenience over the Element API: it accumulates
// a pending name, attributes, and children, and commits them to the
// arena when Build (or PushTo, which calls Build) is called. Child
// builds its argument into the arena at the time Child is called.
type Builder struct {
	name      string
	prefix    string
	hasPrefix bool
	attrs     []AttrPair
	children  []Node
	err       error
}

// NewBuilder starts building an element named name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Prefix sets (or replaces) the "prefix:" component of the built
// element's name.
func (b *Builder) Prefix(prefix string) *Builder {
	b.hasPrefix = true
	b.prefix = prefix
	return b
}

// TextContent discards any children queued so far and sets the built
// element's sole content to a single Text child holding text,
// matching Element.SetTextContent's "replace all children" semantics.
func (b *Builder) TextContent(text string) *Builder {
	b.children = []Node{NewText(text)}
	return b
}

// Attr records an attribute to set once the element is built. Later
// calls with the same name overwrite earlier ones, matching
// Element.SetAttribute's overwrite semantics.
func (b *Builder) Attr(name, value string) *Builder {
	for i, a := range b.attrs {
		if a.Name == name {
			b.attrs[i].Value = value
			return b
		}
	}
	b.attrs = append(b.attrs, AttrPair{Name: name, Value: value})
	return b
}

// Text appends a text child.
func (b *Builder) Text(s string) *Builder {
	b.children = append(b.children, NewText(s))
	return b
}

// CDATA appends a CDATA child.
func (b *Builder) CDATA(s string) *Builder {
	b.children = append(b.children, NewCDATA(s))
	return b
}

// Comment appends a comment child.
func (b *Builder) Comment(s string) *Builder {
	b.children = append(b.children, NewComment(s))
	return b
}

// PI appends a processing-instruction child.
func (b *Builder) PI(target, data string) *Builder {
	b.children = append(b.children, NewPI(target, data))
	return b
}

// Child builds child and appends it as an element child of the
// receiver, in a single expression.
func (b *Builder) Child(doc *Document, child *Builder) *Builder {
	e, err := child.Build(doc)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	b.children = append(b.children, Node{Kind: KindElement, Handle: e.Handle()})
	return b
}

// Build allocates the element in doc's arena, sets its attributes and
// children, and returns it detached (not yet attached to any parent).
func (b *Builder) Build(doc *Document) (Element, error) {
	if b.err != nil {
		return Element{}, b.err
	}
	e, err := doc.CreateElement(b.name)
	if err != nil {
		return Element{}, err
	}
	if b.hasPrefix {
		if err := e.SetPrefix(b.prefix); err != nil {
			return Element{}, err
		}
	}
	for _, a := range b.attrs {
		if err := e.SetAttribute(a.Name, a.Value); err != nil {
			return Element{}, err
		}
	}
	for _, c := range b.children {
		if err := e.PushChild(c); err != nil {
			return Element{}, err
		}
	}
	return e, nil
}

// PushTo builds the element and appends it as a child of parent.
func (b *Builder) PushTo(doc *Document, parent Element) (Element, error) {
	e, err := b.Build(doc)
	if err != nil {
		return Element{}, err
	}
	if err := parent.PushChild(Node{Kind: KindElement, Handle: e.Handle()}); err != nil {
		return Element{}, err
	}
	return e, nil
}
