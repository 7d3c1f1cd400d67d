package xmltree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustBuildSimpleDoc(t *testing.T) *Document {
	t.Helper()
	doc := NewDocument()
	root, err := doc.CreateElement("root")
	require.NoError(t, err)
	require.NoError(t, doc.Root().PushChild(Node{Kind: KindElement, Handle: root.Handle()}))
	require.NoError(t, root.SetAttribute("id", "1"))
	require.NoError(t, root.PushChild(NewText("hello")))
	return doc
}

func TestWriteStringProducesDeclarationAndElement(t *testing.T) {
	doc := mustBuildSimpleDoc(t)
	out, err := doc.WriteString()
	require.NoError(t, err)
	require.Equal(t, "<?xml version=\"1.0\"?>\n<root id=\"1\">hello</root>", out)
}

func TestWriteStringWithoutDeclaration(t *testing.T) {
	doc := mustBuildSimpleDoc(t)
	out, err := doc.WriteString(WithDeclaration(false))
	require.NoError(t, err)
	require.Equal(t, "<root id=\"1\">hello</root>", out)
}

func TestWriteEmptyElementSelfCloses(t *testing.T) {
	doc := NewDocument()
	e, _ := doc.CreateElement("br")
	require.NoError(t, doc.Root().PushChild(Node{Kind: KindElement, Handle: e.Handle()}))

	out, err := doc.WriteString(WithDeclaration(false))
	require.NoError(t, err)
	require.Equal(t, "<br/>", out)
}

func TestWriteEscapesTextAndAttributes(t *testing.T) {
	doc := NewDocument()
	e, _ := doc.CreateElement("r")
	require.NoError(t, doc.Root().PushChild(Node{Kind: KindElement, Handle: e.Handle()}))
	require.NoError(t, e.SetAttribute("q", `a"b`))
	require.NoError(t, e.PushChild(NewText("<tom & jerry> ]]>")))

	out, err := doc.WriteString(WithDeclaration(false))
	require.NoError(t, err)
	require.Equal(t, `<r q='a"b'>&lt;tom &amp; jerry> ]]&gt;</r>`, out)
}

func TestWriteTextOnlyEscapesGTAfterDoubleBracket(t *testing.T) {
	doc := NewDocument()
	e, _ := doc.CreateElement("r")
	require.NoError(t, doc.Root().PushChild(Node{Kind: KindElement, Handle: e.Handle()}))
	require.NoError(t, e.PushChild(NewText("a>b]>c]]>d")))

	out, err := doc.WriteString(WithDeclaration(false))
	require.NoError(t, err)
	require.Equal(t, "<r>a>b]>c]]&gt;d</r>", out)
}

func TestWriteIndentsPureElementContent(t *testing.T) {
	doc := NewDocument()
	root, _ := doc.CreateElement("root")
	require.NoError(t, doc.Root().PushChild(Node{Kind: KindElement, Handle: root.Handle()}))
	child, _ := doc.CreateElement("child")
	require.NoError(t, root.PushChild(Node{Kind: KindElement, Handle: child.Handle()}))

	out, err := doc.WriteString(WithDeclaration(false), WithIndent("  "))
	require.NoError(t, err)
	require.Equal(t, "<root>\n  <child/>\n</root>", out)
}

func TestWriteDoesNotIndentMixedContent(t *testing.T) {
	doc := NewDocument()
	root, _ := doc.CreateElement("root")
	require.NoError(t, doc.Root().PushChild(Node{Kind: KindElement, Handle: root.Handle()}))
	require.NoError(t, root.PushChild(NewText("x")))
	child, _ := doc.CreateElement("child")
	require.NoError(t, root.PushChild(Node{Kind: KindElement, Handle: child.Handle()}))

	out, err := doc.WriteString(WithDeclaration(false), WithIndent("  "))
	require.NoError(t, err)
	require.Equal(t, "<root>x<child/></root>", out)
}

func TestWriteRejectsCDATAContainingTerminator(t *testing.T) {
	doc := NewDocument()
	e, _ := doc.CreateElement("r")
	require.NoError(t, doc.Root().PushChild(Node{Kind: KindElement, Handle: e.Handle()}))
	require.NoError(t, e.PushChild(NewCDATA("oops ]]> here")))

	_, err := doc.WriteString()
	require.ErrorIs(t, err, ErrContainsCDATAEnd)
}

func TestWriteRejectsCommentContainingDoubleHyphen(t *testing.T) {
	doc := NewDocument()
	e, _ := doc.CreateElement("r")
	require.NoError(t, doc.Root().PushChild(Node{Kind: KindElement, Handle: e.Handle()}))
	require.NoError(t, e.PushChild(NewComment("a--b")))

	_, err := doc.WriteString()
	require.ErrorIs(t, err, ErrCommentContainsDoubleHyphen)
}

func TestWriteAttrQuoteFallsBackWhenPreferredAppears(t *testing.T) {
	doc := NewDocument()
	e, _ := doc.CreateElement("r")
	require.NoError(t, doc.Root().PushChild(Node{Kind: KindElement, Handle: e.Handle()}))
	require.NoError(t, e.SetAttribute("q", `has "double" quotes`))

	out, err := doc.WriteString(WithDeclaration(false), WithAttrQuote(QuoteDouble))
	require.NoError(t, err)
	require.Equal(t, `<r q='has "double" quotes'/>`, out)
}
