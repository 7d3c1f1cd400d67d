package xmltree

import "strings"

// NewPI builds a processing-instruction child node from a target and
// its data, storing "target data" verbatim in the manner the parser
// would have captured it.
func NewPI(target, data string) Node {
	if data == "" {
		return Node{Kind: KindPI, Data: target}
	}
	return Node{Kind: KindPI, Data: target + " " + data}
}

// PITarget splits a PI node's stored data back into target and data.
func PITarget(n Node) (target, data string) {
	s := n.Data
	if i := strings.IndexAny(s, " \t\r\n"); i >= 0 {
		return s[:i], strings.TrimLeft(s[i:], " \t\r\n")
	}
	return s, ""
}
