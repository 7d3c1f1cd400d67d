package xmltree

// NewCDATA builds a CDATA child node. Its payload is raw Unicode and
// is never entity-escaped on write; it is rendered inside
// "<![CDATA[ ... ]]>". A payload containing "]]>" is rejected at
// write time, not at construction time.
func NewCDATA(s string) Node {
	return Node{Kind: KindCDATA, Data: s}
}
