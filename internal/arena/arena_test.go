package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/styler/internal/diag"
)

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	_, err := New(0)
	require.Error(t, err)
	assert.IsType(t, diag.ArgumentFault{}, err)

	_, err = New(-5)
	require.Error(t, err)
}

func TestAllocateAssignsSequentialIndices(t *testing.T) {
	a, err := New(4)
	require.NoError(t, err)

	i0, err := a.Allocate(KindIdentifierExpression, 0, 3)
	require.NoError(t, err)
	i1, err := a.Allocate(KindLiteralExpression, 3, 5)
	require.NoError(t, err)

	assert.Equal(t, 0, i0)
	assert.Equal(t, 1, i1)
	assert.Equal(t, 2, a.NodeCount())
}

func TestAllocateRejectsNegativeOrInvertedRange(t *testing.T) {
	a, err := New(2)
	require.NoError(t, err)

	_, err = a.Allocate(KindIdentifierExpression, -1, 2)
	require.Error(t, err)

	_, err = a.Allocate(KindIdentifierExpression, 5, 2)
	require.Error(t, err)
}

func TestRangeOfReturnsAllocatedBounds(t *testing.T) {
	a, err := New(2)
	require.NoError(t, err)
	idx, err := a.Allocate(KindClassType, 10, 20)
	require.NoError(t, err)

	start, end, err := a.RangeOf(idx)
	require.NoError(t, err)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)
}

func TestNullIndexIsRejectedEverywhere(t *testing.T) {
	a, err := New(2)
	require.NoError(t, err)
	idx, err := a.Allocate(KindIdentifierExpression, 0, 1)
	require.NoError(t, err)

	_, err = a.KindOf(NullIndex)
	require.Error(t, err)

	err = a.AppendChild(NullIndex, idx)
	require.Error(t, err)

	err = a.AppendChild(idx, NullIndex)
	require.Error(t, err)
}

func TestOutOfBoundsIndexIsRejected(t *testing.T) {
	a, err := New(2)
	require.NoError(t, err)
	_, err = a.Allocate(KindIdentifierExpression, 0, 1)
	require.NoError(t, err)

	_, _, err = a.RangeOf(99)
	require.Error(t, err)
}

func TestAppendChildPreservesCallOrder(t *testing.T) {
	a, err := New(4)
	require.NoError(t, err)
	parent, err := a.Allocate(KindBlockStatement, 0, 100)
	require.NoError(t, err)

	var kids []int
	for i := 0; i < 5; i++ {
		child, cerr := a.Allocate(KindExpressionStatement, i, i+1)
		require.NoError(t, cerr)
		require.NoError(t, a.AppendChild(parent, child))
		kids = append(kids, child)
	}

	got, err := a.ChildrenOf(parent)
	require.NoError(t, err)
	assert.Equal(t, kids, got)
}

// TestAppendChildRelocatesNonTailSlices exercises the case where a second
// parent's children are interleaved with a first parent's, forcing the
// first parent's slice to relocate to the tail on its next append.
func TestAppendChildRelocatesNonTailSlices(t *testing.T) {
	a, err := New(8)
	require.NoError(t, err)
	p1, err := a.Allocate(KindBlockStatement, 0, 1)
	require.NoError(t, err)
	p2, err := a.Allocate(KindBlockStatement, 1, 2)
	require.NoError(t, err)

	c1, _ := a.Allocate(KindExpressionStatement, 0, 1)
	require.NoError(t, a.AppendChild(p1, c1))
	c2, _ := a.Allocate(KindExpressionStatement, 1, 2)
	require.NoError(t, a.AppendChild(p2, c2)) // p1's slice is no longer at the tail
	c3, _ := a.Allocate(KindExpressionStatement, 2, 3)
	require.NoError(t, a.AppendChild(p1, c3)) // forces relocation

	p1Children, err := a.ChildrenOf(p1)
	require.NoError(t, err)
	assert.Equal(t, []int{c1, c3}, p1Children)

	p2Children, err := a.ChildrenOf(p2)
	require.NoError(t, err)
	assert.Equal(t, []int{c2}, p2Children)
}

func TestChildrenOfEmptyParentReturnsNil(t *testing.T) {
	a, err := New(2)
	require.NoError(t, err)
	parent, err := a.Allocate(KindBlockStatement, 0, 1)
	require.NoError(t, err)

	kids, err := a.ChildrenOf(parent)
	require.NoError(t, err)
	assert.Nil(t, kids)
}

func TestGrowthPreservesExistingData(t *testing.T) {
	a, err := New(2)
	require.NoError(t, err)

	var indices []int
	for i := 0; i < 50; i++ {
		idx, aerr := a.Allocate(KindIdentifierExpression, i, i+1)
		require.NoError(t, aerr)
		indices = append(indices, idx)
	}

	for i, idx := range indices {
		start, end, rerr := a.RangeOf(idx)
		require.NoError(t, rerr)
		assert.Equal(t, i, start)
		assert.Equal(t, i+1, end)
	}
}

func TestMemoryUsageScalesWithCapacity(t *testing.T) {
	a, err := New(100)
	require.NoError(t, err)
	assert.Equal(t, 100*nodeRecordBytes, a.MemoryUsage())
}

func TestCloseRejectsFurtherReads(t *testing.T) {
	a, err := New(2)
	require.NoError(t, err)
	idx, err := a.Allocate(KindIdentifierExpression, 0, 1)
	require.NoError(t, err)

	a.Close()

	_, err = a.KindOf(idx)
	require.Error(t, err)
	assert.IsType(t, diag.ArenaClosedFault{}, err)

	_, err = a.Allocate(KindIdentifierExpression, 0, 1)
	require.Error(t, err)
}

func TestTypedAttributeRoundTrip(t *testing.T) {
	a, err := New(2)
	require.NoError(t, err)
	idx, err := a.Allocate(KindRecordDeclaration, 0, 10)
	require.NoError(t, err)

	require.NoError(t, a.SetTypeDeclAttrs(idx, TypeDeclAttrs{Name: "Point", IsSealed: true}))
	got, ok := a.TypeDeclAttrsOf(idx)
	require.True(t, ok)
	assert.Equal(t, "Point", got.Name)
	assert.True(t, got.IsSealed)

	other, err := a.Allocate(KindClassDeclaration, 10, 20)
	require.NoError(t, err)
	_, ok = a.TypeDeclAttrsOf(other)
	assert.False(t, ok)
}

func TestNodeKindCategoryPredicatesPartitionCleanly(t *testing.T) {
	assert.True(t, KindClassDeclaration.IsDeclaration())
	assert.False(t, KindClassDeclaration.IsStatement())
	assert.True(t, KindIfStatement.IsStatement())
	assert.True(t, KindBinaryExpression.IsExpression())
	assert.True(t, KindArrayType.IsType())
	assert.True(t, KindLineComment.IsTrivia())
	assert.False(t, KindLineComment.IsStatement())
}
