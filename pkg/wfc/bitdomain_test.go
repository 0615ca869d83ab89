package wfc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBitDomain(t *testing.T) {
	tests := []struct {
		name  string
		width int
	}{
		{"small", 5},
		{"word boundary", 64},
		{"multi word", 130},
		{"single bit", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewBitDomain(tt.width)
			require.True(t, d.IsEmpty())
			require.Equal(t, 0, d.Count())
			require.Equal(t, tt.width, d.Width())
		})
	}
}

func TestFullBitDomain(t *testing.T) {
	for _, width := range []int{1, 5, 64, 65, 130} {
		d := FullBitDomain(width)
		require.True(t, d.IsFull())
		require.Equal(t, width, d.Count())
		for i := 0; i < width; i++ {
			require.True(t, d.Get(i), "bit %d should be set", i)
		}
	}
}

func TestSetGetToggle(t *testing.T) {
	d := NewBitDomain(10)
	d.Set(3, true)
	require.True(t, d.Get(3))
	d.Toggle(3)
	require.False(t, d.Get(3))
	d.Toggle(3)
	require.True(t, d.Get(3))
}

func TestIntersectUnionDifference(t *testing.T) {
	a := NewBitDomain(8)
	a.Set(0, true)
	a.Set(1, true)
	a.Set(2, true)

	b := NewBitDomain(8)
	b.Set(1, true)
	b.Set(2, true)
	b.Set(3, true)

	require.Equal(t, []int{1, 2}, a.Intersection(b).ToSlice())
	require.Equal(t, []int{0, 1, 2, 3}, a.Union(b).ToSlice())
	require.Equal(t, []int{0}, a.Difference(b).ToSlice())
}

func TestUnionIntoIntersectIntoMutate(t *testing.T) {
	a := NewBitDomain(8)
	a.Set(0, true)
	b := NewBitDomain(8)
	b.Set(1, true)

	a.UnionInto(b)
	require.Equal(t, []int{0, 1}, a.ToSlice())

	a.IntersectInto(b)
	require.Equal(t, []int{1}, a.ToSlice())
}

func TestIsSubsetOf(t *testing.T) {
	a := NewBitDomain(8)
	a.Set(1, true)
	b := FullBitDomain(8)
	require.True(t, a.IsSubsetOf(b))
	require.False(t, b.IsSubsetOf(a))
}

func TestCloneIsIndependent(t *testing.T) {
	a := NewBitDomain(8)
	a.Set(0, true)
	b := a.Clone()
	b.Set(1, true)
	require.False(t, a.Get(1))
	require.True(t, b.Get(1))
}

func TestEqualsRequiresSameWidth(t *testing.T) {
	a := NewBitDomain(8)
	b := NewBitDomain(16)
	require.Panics(t, func() { a.Equals(b) })
}

func TestOutOfRangeIndexPanics(t *testing.T) {
	a := NewBitDomain(8)
	require.Panics(t, func() { a.Get(8) })
	require.Panics(t, func() { a.Get(-1) })
}

func TestHashEqualForEqualDomains(t *testing.T) {
	a := NewBitDomain(20)
	a.Set(3, true)
	a.Set(7, true)
	b := NewBitDomain(20)
	b.Set(3, true)
	b.Set(7, true)
	require.Equal(t, a.Hash(), b.Hash())

	b.Set(8, true)
	require.NotEqual(t, a.Hash(), b.Hash())
}

func TestFirstSetAndSingletonIndex(t *testing.T) {
	a := NewBitDomain(8)
	_, ok := a.FirstSet()
	require.False(t, ok)

	a.Set(5, true)
	v, ok := a.FirstSet()
	require.True(t, ok)
	require.Equal(t, 5, v)
	require.Equal(t, 5, a.SingletonIndex())
}

func TestIterSetIsAscendingAndRestartable(t *testing.T) {
	a := NewBitDomain(70)
	a.Set(0, true)
	a.Set(65, true)
	a.Set(10, true)

	it := a.IterSet()
	var seen []int
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		seen = append(seen, v)
	}
	require.Equal(t, []int{0, 10, 65}, seen)

	// A second iterator over the same domain restarts cleanly.
	it2 := a.IterSet()
	v, ok := it2.Next()
	require.True(t, ok)
	require.Equal(t, 0, v)
}
