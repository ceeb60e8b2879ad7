package tensorop_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openqudit/qvm/tensorop"
)

func TestFRPRTranspose(t *testing.T) {
	t.Parallel()
	src := tensorop.NewView(2, 3)
	n := complex128(0)
	for j := 0; j < 3; j++ {
		for i := 0; i < 2; i++ {
			n++
			src.Set(i, j, n)
		}
	}

	plan, err := tensorop.PrepareFRPR(2, 3, 2, 3, 2, 3, []int{2, 3}, []int{1, 0}, 1, 1)
	require.NoError(t, err)

	dst := tensorop.NewView(3, 2)
	require.NoError(t, tensorop.ApplyFRPR(dst, src, plan))

	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			require.Equal(t, src.At(i, j), dst.At(j, i))
		}
	}
}

func TestFRPRTooManyLegs(t *testing.T) {
	t.Parallel()
	shape := make([]int, tensorop.MaxFRPRLegs+1)
	perm := make([]int, tensorop.MaxFRPRLegs+1)
	for i := range shape {
		shape[i] = 1
		perm[i] = i
	}
	_, err := tensorop.PrepareFRPR(1, 1, 1, 1, 1, 1, shape, perm, 0, 0)
	require.ErrorIs(t, err, tensorop.ErrFRPRTooLarge)
}

func TestFRPRInvalidPermutation(t *testing.T) {
	t.Parallel()
	_, err := tensorop.PrepareFRPR(2, 2, 2, 2, 2, 2, []int{2, 2}, []int{0, 0}, 1, 1)
	require.ErrorIs(t, err, tensorop.ErrInvalidPermutation)
}

func TestFRPRIdentityIsNoop(t *testing.T) {
	t.Parallel()
	src := tensorop.NewView(2, 2)
	src.Set(0, 1, 9)
	plan, err := tensorop.PrepareFRPR(2, 2, 2, 2, 2, 2, []int{2, 2}, []int{0, 1}, 1, 1)
	require.NoError(t, err)

	dst := tensorop.NewView(2, 2)
	require.NoError(t, tensorop.ApplyFRPR(dst, src, plan))
	require.Equal(t, src.At(0, 1), dst.At(0, 1))
}
