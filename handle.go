package xmltree

// Handle is an opaque reference to an element record inside a
// Document's arena. Handles are only meaningful relative to the arena
// that allocated them; using one against a different Document is
// caller error and is not checked.
type Handle uint32

// RootHandle is the reserved handle of the container-root sentinel:
// the implicit element whose children are the document's prolog nodes,
// doctype, and (at most one) root element. Its stored parent reference
// is itself; Element.Parent reports no parent for it.
const RootHandle Handle = 0
