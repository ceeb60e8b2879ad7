package qudit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openqudit/qvm/qudit"
)

func TestLabelsIsSorted(t *testing.T) {
	t.Parallel()
	require.True(t, qudit.Labels{0, 1, 2}.IsSorted())
	require.False(t, qudit.Labels{1, 0}.IsSorted())
	require.False(t, qudit.Labels{0, 0}.IsSorted())
}

func TestLabelsSortPermutation(t *testing.T) {
	t.Parallel()
	sigma, sorted := qudit.Labels{2, 0, 1}.SortPermutation()
	require.Equal(t, qudit.Labels{0, 1, 2}, sorted)
	require.Equal(t, []int{1, 2, 0}, sigma)
}

func TestLabelsSetOps(t *testing.T) {
	t.Parallel()
	a := qudit.Labels{0, 1, 2}
	b := qudit.Labels{1, 2, 3}
	require.Equal(t, qudit.Labels{1, 2}, qudit.Intersect(a, b))
	require.Equal(t, qudit.Labels{0, 1, 2, 3}, qudit.Union(a, b))
	require.Equal(t, qudit.Labels{0}, qudit.Difference(a, b))
}

func TestLabelsIndexOf(t *testing.T) {
	t.Parallel()
	l := qudit.Labels{5, 6, 7}
	require.Equal(t, 1, l.IndexOf(6))
	require.Equal(t, -1, l.IndexOf(9))
}

func TestLabelsClone(t *testing.T) {
	t.Parallel()
	l := qudit.Labels{1, 2}
	c := l.Clone()
	c[0] = 99
	require.Equal(t, 1, l[0])
}
