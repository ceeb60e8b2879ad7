package qudit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openqudit/qvm/qudit"
)

func TestNewRadicesRejectsEmpty(t *testing.T) {
	t.Parallel()
	_, err := qudit.NewRadices(nil)
	require.ErrorIs(t, err, qudit.ErrEmptyRadices)
}

func TestNewRadicesRejectsTooSmall(t *testing.T) {
	t.Parallel()
	_, err := qudit.NewRadices([]int{2, 1})
	require.ErrorIs(t, err, qudit.ErrInvalidRadix)
}

func TestNewRadicesCopiesInput(t *testing.T) {
	t.Parallel()
	src := []int{2, 3}
	r, err := qudit.NewRadices(src)
	require.NoError(t, err)
	src[0] = 99
	require.Equal(t, 2, r[0])
}

func TestRadicesDimAndLen(t *testing.T) {
	t.Parallel()
	r := qudit.MustRadices([]int{2, 3, 4})
	require.Equal(t, 24, r.Dim())
	require.Equal(t, 3, r.Len())
}

func TestRadicesEqual(t *testing.T) {
	t.Parallel()
	a := qudit.MustRadices([]int{2, 3})
	b := qudit.MustRadices([]int{2, 3})
	c := qudit.MustRadices([]int{3, 2})
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestRadicesConcat(t *testing.T) {
	t.Parallel()
	a := qudit.MustRadices([]int{2})
	b := qudit.MustRadices([]int{3, 4})
	require.Equal(t, qudit.Radices{2, 3, 4}, a.Concat(b))
}

func TestRadicesPermute(t *testing.T) {
	t.Parallel()
	r := qudit.MustRadices([]int{2, 3, 5})
	out, err := r.Permute([]int{2, 0, 1})
	require.NoError(t, err)
	require.Equal(t, qudit.Radices{5, 2, 3}, out)
}

func TestRadicesPermuteRejectsBadLength(t *testing.T) {
	t.Parallel()
	r := qudit.MustRadices([]int{2, 3})
	_, err := r.Permute([]int{0})
	require.ErrorIs(t, err, qudit.ErrRadixMismatch)
}

func TestRadicesPermuteRejectsDuplicate(t *testing.T) {
	t.Parallel()
	r := qudit.MustRadices([]int{2, 3})
	_, err := r.Permute([]int{0, 0})
	require.ErrorIs(t, err, qudit.ErrDuplicateQudit)
}

func TestMustRadicesPanics(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() { qudit.MustRadices(nil) })
}
