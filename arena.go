package xmltree

import "github.com/kagome-go/xmltree/internal/orderedmap"

// noParent marks a record that is not currently anyone's child: a
// freshly created element that has never been attached, or one that
// has just been detached. It is distinct from RootHandle so that an
// element actually attached as the document's root (whose parent is
// the container-root sentinel, handle 0) can't be confused with one
// that was never attached at all.
const noParent Handle = ^Handle(0)

// record is the arena-owned data behind an element handle: its name,
// its attributes in insertion order, its ordered children, and a back
// reference to its parent (RootHandle for the container-root sentinel
// itself, noParent for unattached elements).
type record struct {
	fullName string
	attrs    *orderedmap.Map[string, string]
	children []Node
	parent   Handle
}

func newRecord(name string, parent Handle) *record {
	return &record{
		fullName: name,
		attrs:    orderedmap.New[string, string](),
		parent:   parent,
	}
}

// arena owns every element record in a Document. It is append-only:
// handles remain valid, and dense, for the lifetime of the document.
type arena struct {
	records []*record
}

func newArena() *arena {
	a := &arena{}
	// Handle 0 is the container-root sentinel; its own parent is
	// itself, per the self-loop invariant.
	a.records = append(a.records, newRecord("", RootHandle))
	return a
}

// allocate appends rec and returns its new handle.
func (a *arena) allocate(rec *record) Handle {
	h := Handle(len(a.records))
	a.records = append(a.records, rec)
	return h
}

// lookup returns the record for h, or nil if h is out of range.
func (a *arena) lookup(h Handle) *record {
	if int(h) >= len(a.records) {
		return nil
	}
	return a.records[h]
}

// len reports how many records the arena has allocated, including the
// sentinel.
func (a *arena) len() int {
	return len(a.records)
}

// clone deep-copies the arena so the two documents share no mutable
// state.
func (a *arena) clone() *arena {
	c := &arena{records: make([]*record, len(a.records))}
	for i, r := range a.records {
		nr := &record{
			fullName: r.fullName,
			attrs:    r.attrs.Clone(),
			parent:   r.parent,
			children: append([]Node(nil), r.children...),
		}
		c.records[i] = nr
	}
	return c
}
