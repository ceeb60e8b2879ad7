package tensorop

import "fmt"

// Kron computes dst = a kron b (tensor/Kronecker product): dst is
// (a.Rows*b.Rows) x (a.Cols*b.Cols), with dst[i*b.Rows+k, j*b.Cols+l] =
// a[i,j] * b[k,l]. This is the block-structured composition an
// ExpressionTree's Kron variant lowers to.
//
// Complexity: O(a.Rows*a.Cols*b.Rows*b.Cols).
func Kron(dst, a, b View) error {
	wantRows, wantCols := a.Rows*b.Rows, a.Cols*b.Cols
	if dst.Rows != wantRows || dst.Cols != wantCols {
		return fmt.Errorf("tensorop: Kron dst %dx%d, want %dx%d: %w", dst.Rows, dst.Cols, wantRows, wantCols, ErrDimensionMismatch)
	}
	if dst.Overlaps(a) || dst.Overlaps(b) {
		return fmt.Errorf("tensorop: Kron: %w", ErrOverlappingBuffers)
	}

	for i := 0; i < a.Rows; i++ {
		for j := 0; j < a.Cols; j++ {
			aij := a.At(i, j)
			for k := 0; k < b.Rows; k++ {
				for l := 0; l < b.Cols; l++ {
					dst.Set(i*b.Rows+k, j*b.Cols+l, aij*b.At(k, l))
				}
			}
		}
	}

	return nil
}

// KronGrad accumulates the product-rule derivative of C = A kron B for one
// parameter: dst = dA kron B + A kron dB, the Kron analogue of
// MatmulGrad's product rule.
func KronGrad(dst, a, da, b, db View) error {
	if err := Kron(dst, da, b); err != nil {
		return fmt.Errorf("tensorop: KronGrad (dA kron B): %w", err)
	}
	tmp := NewView(dst.Rows, dst.Cols)
	if err := Kron(tmp, a, db); err != nil {
		return fmt.Errorf("tensorop: KronGrad (A kron dB): %w", err)
	}
	addInto(dst, tmp)

	return nil
}
