package interner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternDeduplicatesEqualContent(t *testing.T) {
	in := New()
	a := in.InternString("clk")
	b := in.InternString("clk")
	assert.Equal(t, a, b)
	assert.True(t, a.Equal(b))
}

func TestInternFoldIsCaseInsensitive(t *testing.T) {
	in := New()
	a := in.InternFold("CLK")
	b := in.InternFold("clk")
	assert.Equal(t, a, b)
	assert.Equal(t, "clk", a.String())
}

func TestInternDistinctContentGetsDistinctViews(t *testing.T) {
	in := New()
	a := in.InternString("clk")
	b := in.InternString("rst")
	assert.False(t, a.Equal(b))
}

func TestOversizeRequestDoesNotDisturbCurrentPageFrontier(t *testing.T) {
	in := New()

	before := in.InternString("a")
	pageBefore := in.current
	usedBefore := in.current.used

	oversize := strings.Repeat("x", 2*pageSize+1)
	view := in.InternString(oversize)
	require.Equal(t, oversize, view.String())

	// the current page - and its frontier - must be exactly as it was
	// before the oversize request: the dedicated page splices in behind it.
	assert.Same(t, pageBefore, in.current)
	assert.Equal(t, usedBefore, in.current.used)

	// a small intern made after the oversize request still lands on the
	// same page as one made before it.
	after := in.InternString("b")
	assert.Same(t, pageBefore, in.current)
	require.Equal(t, "a", before.String())
	require.Equal(t, "b", after.String())
}

func TestMergeSplicesOthersPagesAndEmptiesOther(t *testing.T) {
	in := New()
	other := New()

	keep := other.InternString(strings.Repeat("y", 10))

	in.Merge(other)

	// the view obtained from other before the merge is still readable:
	// its backing page is now reachable from in's history.
	assert.Equal(t, strings.Repeat("y", 10), keep.String())

	// other is left empty and unusable as an independent interner.
	assert.Nil(t, other.current)
	assert.Nil(t, other.table)
}

func TestMergeDoesNotDeduplicateAcrossInterners(t *testing.T) {
	in := New()
	other := New()

	other.InternString("clk")
	in.Merge(other)

	// re-interning equal content through the receiver still allocates a
	// fresh view: Merge extends lifetime only, it never merges the
	// content-hash table.
	a := in.InternString("clk")
	assert.Equal(t, "clk", a.String())
}

func TestMergeWithNilOtherIsNoop(t *testing.T) {
	in := New()
	before := in.current
	in.Merge(nil)
	assert.Same(t, before, in.current)
}
