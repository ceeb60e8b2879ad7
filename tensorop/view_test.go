package tensorop_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openqudit/qvm/tensorop"
)

func TestViewIdentity(t *testing.T) {
	t.Parallel()
	v := tensorop.NewView(3, 3)
	require.NoError(t, v.Identity())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				require.Equal(t, complex(1, 0), v.At(i, j))
			} else {
				require.Equal(t, complex(0, 0), v.At(i, j))
			}
		}
	}
}

func TestViewIdentityRejectsNonSquare(t *testing.T) {
	t.Parallel()
	v := tensorop.NewView(2, 3)
	require.Error(t, v.Identity())
}

func TestViewSetAt(t *testing.T) {
	t.Parallel()
	v := tensorop.NewView(2, 2)
	v.Set(1, 0, complex(4, -1))
	require.Equal(t, complex(4, -1), v.At(1, 0))
	require.Equal(t, complex(0, 0), v.At(0, 1))
}

func TestViewSameShape(t *testing.T) {
	t.Parallel()
	a := tensorop.NewView(2, 3)
	b := tensorop.NewView(2, 3)
	c := tensorop.NewView(3, 2)
	require.True(t, a.SameShape(b))
	require.False(t, a.SameShape(c))
}

func TestCopyIntoRespectsStride(t *testing.T) {
	t.Parallel()
	src := tensorop.NewView(2, 2)
	src.Set(0, 0, 1)
	src.Set(1, 0, 2)
	src.Set(0, 1, 3)
	src.Set(1, 1, 4)

	padded := make([]complex128, 8)
	dst := tensorop.View{Data: padded, Rows: 2, Cols: 2, ColStride: 4}
	require.NoError(t, tensorop.CopyInto(dst, src))
	require.Equal(t, complex(1, 0), dst.At(0, 0))
	require.Equal(t, complex(2, 0), dst.At(1, 0))
	require.Equal(t, complex(3, 0), dst.At(0, 1))
	require.Equal(t, complex(4, 0), dst.At(1, 1))
}

func TestCopyIntoShapeMismatch(t *testing.T) {
	t.Parallel()
	src := tensorop.NewView(2, 2)
	dst := tensorop.NewView(2, 3)
	require.Error(t, tensorop.CopyInto(dst, src))
}

func TestOverlapsSameArray(t *testing.T) {
	t.Parallel()
	data := make([]complex128, 16)
	a := tensorop.View{Data: data, Offset: 0, Rows: 2, Cols: 2, ColStride: 4}
	b := tensorop.View{Data: data, Offset: 1, Rows: 2, Cols: 2, ColStride: 4}
	c := tensorop.View{Data: data, Offset: 8, Rows: 2, Cols: 2, ColStride: 4}
	require.True(t, a.Overlaps(b))
	require.False(t, a.Overlaps(c))
}

func TestOverlapsDifferentArrays(t *testing.T) {
	t.Parallel()
	a := tensorop.NewView(2, 2)
	b := tensorop.NewView(2, 2)
	require.False(t, a.Overlaps(b))
}
