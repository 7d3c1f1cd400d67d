package xmltree

// NewDocType builds a DocType child node from the body that would
// appear between "<!DOCTYPE" and its matching ">", internal subset
// included, stored verbatim.
func NewDocType(s string) Node {
	return Node{Kind: KindDocType, Data: s}
}
