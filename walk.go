package xmltree

// WalkFunc is called once per element visited by Walk. Returning an
// error aborts the walk and Walk returns that error.
type WalkFunc func(Element) error

// Walk performs a depth-first, pre-order walk of e and its element
// descendants, calling f on each. It does not visit non-element
// children directly; use Element.Children for those.
func Walk(e Element, f WalkFunc) error {
	if err := f(e); err != nil {
		return err
	}
	for _, c := range e.Children() {
		if c.IsElement() {
			child := Element{doc: e.doc, h: c.Handle}
			if err := Walk(child, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// Descendants returns every element descendant of e (at any depth)
// named name, in document order. Unlike Find/FindAll, which only
// examine direct children, Descendants recurses into the whole
// subtree.
func (e Element) Descendants(name string) []Element {
	var out []Element
	for _, c := range e.Children() {
		if !c.IsElement() {
			continue
		}
		child := Element{doc: e.doc, h: c.Handle}
		if child.Name() == name {
			out = append(out, child)
		}
		out = append(out, child.Descendants(name)...)
	}
	return out
}
