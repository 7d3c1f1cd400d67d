package xmltree

// SetName replaces e's full name. It fails with ErrMalformedName
// without changing e if name does not satisfy the XML Name production.
func (e Element) SetName(name string) error {
	if !isValidName(name) {
		return ErrMalformedName
	}
	e.rec().fullName = name
	return nil
}

// SetPrefix replaces the "prefix:" component of e's name, keeping the
// local name. An empty prefix removes it.
func (e Element) SetPrefix(prefix string) error {
	_, local := splitName(e.rec().fullName)
	name := local
	if prefix != "" {
		name = prefix + ":" + local
	}
	if !isValidName(name) {
		return ErrMalformedName
	}
	e.rec().fullName = name
	return nil
}

// SetLocalName replaces the local-name component of e's name, keeping
// the prefix.
func (e Element) SetLocalName(local string) error {
	prefix, _ := splitName(e.rec().fullName)
	name := local
	if prefix != "" {
		name = prefix + ":" + local
	}
	if !isValidName(name) {
		return ErrMalformedName
	}
	e.rec().fullName = name
	return nil
}

// SetAttribute inserts or overwrites the named attribute, preserving
// its original position on overwrite. The value is stored as-is:
// normalization is the parser's job on input and the writer's job on
// output.
func (e Element) SetAttribute(name, value string) error {
	if !isValidName(name) {
		return ErrMalformedName
	}
	e.rec().attrs.Overwrite(name, value)
	return nil
}

// RemoveAttribute deletes the named attribute, returning its former
// value if it was present.
func (e Element) RemoveAttribute(name string) (string, bool) {
	return e.rec().attrs.Delete(name)
}

// SetTextContent discards all of e's existing children and replaces
// them with a single Text child holding text. Any elements that were
// among the removed children become detached, not destroyed.
func (e Element) SetTextContent(text string) {
	r := e.rec()
	for _, c := range r.children {
		if c.IsElement() {
			e.doc.arena.lookup(c.Handle).parent = noParent
		}
	}
	r.children = []Node{NewText(text)}
}

// PushChild appends node to e's child sequence. If node is an element
// that already has a different parent, it fails with ErrHasAParent.
// If node is an element that is an ancestor of e, it fails with
// ErrCyclicReference. If e is the container root and already has an
// element child, pushing another element fails with ErrMultipleRoots.
func (e Element) PushChild(node Node) error {
	if err := e.checkAttach(node); err != nil {
		return err
	}
	e.rec().children = append(e.rec().children, node)
	e.attachParent(node)
	return nil
}

// InsertChild inserts node at position pos in e's child sequence,
// shifting later children right. The same HasAParent/CyclicReference
// rules as PushChild apply. A pos outside [0, len(children)] appends
// node at the end.
func (e Element) InsertChild(pos int, node Node) error {
	if err := e.checkAttach(node); err != nil {
		return err
	}
	r := e.rec()
	if pos < 0 || pos > len(r.children) {
		pos = len(r.children)
	}
	r.children = append(r.children, Node{})
	copy(r.children[pos+1:], r.children[pos:])
	r.children[pos] = node
	e.attachParent(node)
	return nil
}

// RemoveChild removes and returns the child at position pos. If it
// was an element, its parent is reset to the unattached sentinel (it
// becomes detached, not destroyed: it remains addressable in the
// arena and can be reattached).
func (e Element) RemoveChild(pos int) (Node, error) {
	r := e.rec()
	if pos < 0 || pos >= len(r.children) {
		return Node{}, errIndexOutOfRange
	}
	node := r.children[pos]
	r.children = append(r.children[:pos], r.children[pos+1:]...)
	if node.IsElement() {
		e.doc.arena.lookup(node.Handle).parent = noParent
	}
	return node, nil
}

// Detach removes e from its parent's child sequence and resets its
// parent to the unattached sentinel. Detaching the container root or
// an already-detached element is a no-op.
func (e Element) Detach() {
	if e.h == RootHandle {
		return
	}
	r := e.rec()
	if r.parent == noParent {
		return
	}
	parent := Element{doc: e.doc, h: r.parent}
	pr := parent.rec()
	for i, c := range pr.children {
		if c.IsElement() && c.Handle == e.h {
			pr.children = append(pr.children[:i], pr.children[i+1:]...)
			break
		}
	}
	r.parent = noParent
}

func (e Element) attachParent(node Node) {
	if node.IsElement() {
		e.doc.arena.lookup(node.Handle).parent = e.h
	}
}

func (e Element) checkAttach(node Node) error {
	if !node.IsElement() {
		return nil
	}
	child := Element{doc: e.doc, h: node.Handle}
	// Cyclic ancestry is checked first: an element already connected to
	// e's own ancestor chain is, by definition, already parented too,
	// so testing HasAParent first would make CyclicReference
	// unreachable for any node actually attached to a document tree.
	if e.isDescendantOf(child) {
		return ErrCyclicReference
	}
	if child.rec().parent != noParent {
		return ErrHasAParent
	}
	if e.h == RootHandle {
		if _, ok := e.doc.RootElement(); ok {
			return ErrMultipleRoots
		}
	}
	return nil
}

// isDescendantOf reports whether e is in ancestor's subtree (or is
// ancestor itself), by walking e's parent chain up to the sentinel.
func (e Element) isDescendantOf(ancestor Element) bool {
	cur := e
	for cur.h != RootHandle {
		if cur.h == ancestor.h {
			return true
		}
		p, ok := cur.Parent()
		if !ok {
			break
		}
		cur = p
	}
	return cur.h == ancestor.h
}

var errIndexOutOfRange = newSimpleError("child index out of range")

type simpleError string

func newSimpleError(s string) error { return simpleError(s) }

func (e simpleError) Error() string { return string(e) }
