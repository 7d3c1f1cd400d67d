package xmltree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArenaAllocateAndLookup(t *testing.T) {
	a := newArena()
	require.Equal(t, 1, a.len(), "sentinel occupies index 0")

	h := a.allocate(newRecord("foo", RootHandle))
	require.Equal(t, Handle(1), h)

	r := a.lookup(h)
	require.Equal(t, "foo", r.fullName)
	require.Equal(t, RootHandle, r.parent)
}

func TestArenaRootSentinelSelfParents(t *testing.T) {
	a := newArena()
	root := a.lookup(RootHandle)
	require.Equal(t, RootHandle, root.parent, "the sentinel is its own parent")
}

func TestArenaCloneIsIndependent(t *testing.T) {
	a := newArena()
	h := a.allocate(newRecord("foo", RootHandle))

	b := a.clone()
	b.lookup(h).fullName = "bar"

	require.Equal(t, "foo", a.lookup(h).fullName, "cloning must not alias the original records")
	require.Equal(t, "bar", b.lookup(h).fullName)
}

func TestArenaHandlesAreStableAcrossAllocations(t *testing.T) {
	a := newArena()
	h1 := a.allocate(newRecord("a", RootHandle))
	h2 := a.allocate(newRecord("b", RootHandle))

	require.NotEqual(t, h1, h2)
	require.Equal(t, "a", a.lookup(h1).fullName)
	require.Equal(t, "b", a.lookup(h2).fullName)
}
