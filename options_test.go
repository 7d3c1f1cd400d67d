package xmltree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultWriteOptions(t *testing.T) {
	wo := DefaultWriteOptions()
	require.False(t, wo.Indent)
	require.True(t, wo.WriteDecl)
	require.Equal(t, QuoteDouble, wo.AttrQuote)
}

func TestWithIndentImpliesIndentTrue(t *testing.T) {
	wo := resolveWriteOptions([]WriteOption{WithIndent("\t")})
	require.True(t, wo.Indent)
	require.Equal(t, "\t", wo.IndentStr)
}

func TestWithoutIndentOverridesDocumentDefault(t *testing.T) {
	doc := NewDocument()
	doc.SetWriteOptions(WithIndent("  "))
	wo := resolveWriteOptionsFrom(doc.writeOpts, []WriteOption{WithoutIndent()})
	require.False(t, wo.Indent)
}

func TestWithAttrQuoteOverridesDefault(t *testing.T) {
	wo := resolveWriteOptions([]WriteOption{WithAttrQuote(QuoteSingle)})
	require.Equal(t, QuoteSingle, wo.AttrQuote)
}
