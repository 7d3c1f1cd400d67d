package xmltree

// NewText builds a Text child node. Text nodes hold already-decoded
// Unicode with entity references already expanded; leading and
// trailing whitespace is preserved verbatim.
func NewText(s string) Node {
	return Node{Kind: KindText, Data: s}
}
