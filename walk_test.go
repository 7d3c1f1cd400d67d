package xmltree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildNestedTree(t *testing.T) (*Document, Element) {
	t.Helper()
	doc := NewDocument()
	root, _ := doc.CreateElement("root")
	require.NoError(t, doc.Root().PushChild(Node{Kind: KindElement, Handle: root.Handle()}))

	a, _ := doc.CreateElement("a")
	require.NoError(t, root.PushChild(Node{Kind: KindElement, Handle: a.Handle()}))
	b, _ := doc.CreateElement("b")
	require.NoError(t, a.PushChild(Node{Kind: KindElement, Handle: b.Handle()}))
	c, _ := doc.CreateElement("a")
	require.NoError(t, root.PushChild(Node{Kind: KindElement, Handle: c.Handle()}))
	return doc, root
}

func TestWalkVisitsPreOrder(t *testing.T) {
	_, root := buildNestedTree(t)

	var names []string
	require.NoError(t, Walk(root, func(e Element) error {
		names = append(names, e.Name())
		return nil
	}))
	require.Equal(t, []string{"root", "a", "b", "a"}, names)
}

func TestWalkStopsOnError(t *testing.T) {
	_, root := buildNestedTree(t)

	boom := simpleError("boom")
	count := 0
	err := Walk(root, func(e Element) error {
		count++
		if e.Name() == "a" {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 2, count)
}

func TestDescendantsRecursesWholeSubtree(t *testing.T) {
	_, root := buildNestedTree(t)
	found := root.Descendants("a")
	require.Len(t, found, 2)
}
