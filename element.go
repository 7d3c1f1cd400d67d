package xmltree

import "strings"

// Element is a lightweight view onto an arena record: a document
// reference plus a handle. All Element methods dereference through
// doc.arena for the duration of a single call, matching spec's
// "mutable reference for the duration of a single call" arena
// contract.
type Element struct {
	doc *Document
	h   Handle
}

// Handle returns e's arena handle.
func (e Element) Handle() Handle { return e.h }

// Document returns the document e belongs to.
func (e Element) Document() *Document { return e.doc }

func (e Element) rec() *record {
	return e.doc.arena.lookup(e.h)
}

// Name is the element's full name, including any "prefix:" component.
func (e Element) Name() string {
	return e.rec().fullName
}

// Prefix is the "prefix" component of Name, or "" if there is none.
func (e Element) Prefix() string {
	p, _ := splitName(e.rec().fullName)
	return p
}

// LocalName is the "local" component of Name, i.e. everything after
// the first ':'.
func (e Element) LocalName() string {
	_, l := splitName(e.rec().fullName)
	return l
}

func splitName(name string) (prefix, local string) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// Attribute returns the value of the attribute named name, if it has
// one.
func (e Element) Attribute(name string) (string, bool) {
	return e.rec().attrs.Get(name)
}

// Attributes returns the element's attributes as an ordered slice of
// name/value pairs, in insertion (i.e. write) order.
func (e Element) Attributes() []AttrPair {
	r := e.rec()
	out := make([]AttrPair, 0, r.attrs.Len())
	for k, v := range r.attrs.Range() {
		out = append(out, AttrPair{Name: k, Value: v})
	}
	return out
}

// AttrPair is one name/value pair, as returned by Attributes.
type AttrPair struct {
	Name  string
	Value string
}

// Children returns the element's ordered child-node sequence.
func (e Element) Children() []Node {
	r := e.rec()
	return append([]Node(nil), r.children...)
}

// Parent returns e's parent element, or (zero-value, false) if e is
// the container root or is currently detached.
func (e Element) Parent() (Element, bool) {
	if e.h == RootHandle {
		return Element{}, false
	}
	p := e.rec().parent
	if p == noParent {
		return Element{}, false
	}
	return Element{doc: e.doc, h: p}, true
}

// Find returns the first direct-child element named name, if any.
func (e Element) Find(name string) (Element, bool) {
	for _, c := range e.rec().children {
		if c.IsElement() {
			child := Element{doc: e.doc, h: c.Handle}
			if child.Name() == name {
				return child, true
			}
		}
	}
	return Element{}, false
}

// FindAll returns every direct-child element named name, in document
// order.
func (e Element) FindAll(name string) []Element {
	var out []Element
	for _, c := range e.rec().children {
		if c.IsElement() {
			child := Element{doc: e.doc, h: c.Handle}
			if child.Name() == name {
				out = append(out, child)
			}
		}
	}
	return out
}

// Text concatenates all immediate Text and CDATA children; it does
// not recurse into element descendants.
func (e Element) Text() string {
	var b strings.Builder
	for _, c := range e.rec().children {
		switch c.Kind {
		case KindText, KindCDATA:
			b.WriteString(c.Data)
		}
	}
	return b.String()
}
