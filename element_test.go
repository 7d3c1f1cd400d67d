package xmltree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateElementRejectsMalformedName(t *testing.T) {
	doc := NewDocument()
	_, err := doc.CreateElement("1bad")
	require.ErrorIs(t, err, ErrMalformedName)
}

func TestElementNamePrefixLocalName(t *testing.T) {
	doc := NewDocument()
	e, err := doc.CreateElement("soap:Envelope")
	require.NoError(t, err)

	require.Equal(t, "soap:Envelope", e.Name())
	require.Equal(t, "soap", e.Prefix())
	require.Equal(t, "Envelope", e.LocalName())
}

func TestSetAttributeOverwritesInPlace(t *testing.T) {
	doc := NewDocument()
	e, _ := doc.CreateElement("r")
	require.NoError(t, e.SetAttribute("a", "1"))
	require.NoError(t, e.SetAttribute("b", "2"))
	require.NoError(t, e.SetAttribute("a", "3"))

	attrs := e.Attributes()
	require.Len(t, attrs, 2)
	require.Equal(t, AttrPair{Name: "a", Value: "3"}, attrs[0], "overwrite preserves original position")
	require.Equal(t, AttrPair{Name: "b", Value: "2"}, attrs[1])
}

func TestRemoveAttribute(t *testing.T) {
	doc := NewDocument()
	e, _ := doc.CreateElement("r")
	require.NoError(t, e.SetAttribute("a", "1"))

	v, ok := e.RemoveAttribute("a")
	require.True(t, ok)
	require.Equal(t, "1", v)

	_, ok = e.Attribute("a")
	require.False(t, ok)
}

func TestPushChildEstablishesParentBidirectionally(t *testing.T) {
	doc := NewDocument()
	parent, _ := doc.CreateElement("parent")
	child, _ := doc.CreateElement("child")

	require.NoError(t, parent.PushChild(Node{Kind: KindElement, Handle: child.Handle()}))

	got, ok := child.Parent()
	require.True(t, ok)
	require.Equal(t, parent.Handle(), got.Handle())

	require.Len(t, parent.Children(), 1)
	require.Equal(t, child.Handle(), parent.Children()[0].Handle)
}

func TestPushChildRejectsAlreadyParented(t *testing.T) {
	doc := NewDocument()
	a, _ := doc.CreateElement("a")
	b, _ := doc.CreateElement("b")
	child, _ := doc.CreateElement("child")

	require.NoError(t, a.PushChild(Node{Kind: KindElement, Handle: child.Handle()}))
	err := b.PushChild(Node{Kind: KindElement, Handle: child.Handle()})
	require.ErrorIs(t, err, ErrHasAParent)
}

func TestPushChildRejectsCycle(t *testing.T) {
	doc := NewDocument()
	a, _ := doc.CreateElement("a")
	b, _ := doc.CreateElement("b")
	require.NoError(t, a.PushChild(Node{Kind: KindElement, Handle: b.Handle()}))

	err := b.PushChild(Node{Kind: KindElement, Handle: a.Handle()})
	require.ErrorIs(t, err, ErrCyclicReference)
}

func TestDetachReturnsElementToSentinelParent(t *testing.T) {
	doc := NewDocument()
	parent, _ := doc.CreateElement("parent")
	child, _ := doc.CreateElement("child")
	require.NoError(t, parent.PushChild(Node{Kind: KindElement, Handle: child.Handle()}))

	child.Detach()

	require.Empty(t, parent.Children())
	_, ok := child.Parent()
	require.False(t, ok, "detached element's parent is the sentinel")

	// A detached element remains addressable and reattachable.
	require.NoError(t, parent.PushChild(Node{Kind: KindElement, Handle: child.Handle()}))
	require.Len(t, parent.Children(), 1)
}

func TestSetTextContentReplacesChildrenAndDetachesElements(t *testing.T) {
	doc := NewDocument()
	e, _ := doc.CreateElement("r")
	require.NoError(t, e.PushChild(NewComment("old")))
	child, _ := doc.CreateElement("child")
	require.NoError(t, e.PushChild(Node{Kind: KindElement, Handle: child.Handle()}))

	e.SetTextContent("new text")

	require.Equal(t, "new text", e.Text())
	require.Len(t, e.Children(), 1)
	_, ok := child.Parent()
	require.False(t, ok, "displaced child element becomes detached, not destroyed")
}

func TestPushChildRejectsStealingAttachedRoot(t *testing.T) {
	doc, err := ParseString(`<r><a/></r>`)
	require.NoError(t, err)
	root, ok := doc.RootElement()
	require.True(t, ok)

	z, err := doc.CreateElement("z")
	require.NoError(t, err)

	err = z.PushChild(Node{Kind: KindElement, Handle: root.Handle()})
	require.ErrorIs(t, err, ErrHasAParent)

	require.Empty(t, z.Children())
	rootAgain, ok := doc.RootElement()
	require.True(t, ok)
	require.Equal(t, root.Handle(), rootAgain.Handle(), "the original root is untouched")
}

func TestPushChildRejectsCycleWithinAttachedDocument(t *testing.T) {
	doc, err := ParseString(`<r><a><b/></a></r>`)
	require.NoError(t, err)
	root, ok := doc.RootElement()
	require.True(t, ok)
	a, ok := root.Find("a")
	require.True(t, ok)
	b, ok := a.Find("b")
	require.True(t, ok)

	err = b.PushChild(Node{Kind: KindElement, Handle: root.Handle()})
	require.ErrorIs(t, err, ErrCyclicReference, "root is an ancestor of b, even though root already has a parent")

	require.Empty(t, b.Children())
}

func TestRemoveChildOutOfRange(t *testing.T) {
	doc := NewDocument()
	e, _ := doc.CreateElement("r")
	_, err := e.RemoveChild(0)
	require.Error(t, err)
}

func TestFindAndFindAll(t *testing.T) {
	doc := NewDocument()
	root, _ := doc.CreateElement("root")
	for i := 0; i < 3; i++ {
		item, _ := doc.CreateElement("item")
		require.NoError(t, root.PushChild(Node{Kind: KindElement, Handle: item.Handle()}))
	}
	other, _ := doc.CreateElement("other")
	require.NoError(t, root.PushChild(Node{Kind: KindElement, Handle: other.Handle()}))

	found, ok := root.Find("item")
	require.True(t, ok)
	require.Equal(t, "item", found.Name())

	require.Len(t, root.FindAll("item"), 3)
	require.Len(t, root.FindAll("missing"), 0)
}

func TestElementText(t *testing.T) {
	doc := NewDocument()
	e, _ := doc.CreateElement("r")
	require.NoError(t, e.PushChild(NewText("hello ")))
	require.NoError(t, e.PushChild(NewCDATA("world")))

	require.Equal(t, "hello world", e.Text())
}
