package tensorop

import "fmt"

// View is a non-owning, column-major window into a caller-supplied
// complex128 slice: element (i, j) lives at Data[Offset+j*ColStride+i].
// Rows/Cols describe the logical shape; ColStride may exceed Rows when the
// backing arena pads columns for alignment.
//
// A View never allocates; constructing one is O(1), and every method on it
// is O(1) except those that explicitly say otherwise.
type View struct {
	Data      []complex128
	Offset    int
	Rows      int
	Cols      int
	ColStride int
}

// NewView constructs a tightly packed (ColStride == rows) View over a
// freshly allocated buffer. Convenience for tests and fixtures; production
// views are carved out of bytecode's arena with an explicit stride.
func NewView(rows, cols int) View {
	return View{
		Data:      make([]complex128, rows*cols),
		Rows:      rows,
		Cols:      cols,
		ColStride: rows,
	}
}

func (v View) index(i, j int) int {
	return v.Offset + j*v.ColStride + i
}

// At returns the element at (i, j). Panics on out-of-range indices, as do
// Set/Overlaps — View is an internal addressing primitive, not a
// user-facing API, so bounds violations are programmer errors rather than
// recoverable faults.
func (v View) At(i, j int) complex128 {
	return v.Data[v.index(i, j)]
}

// Set assigns val at (i, j).
func (v View) Set(i, j int, val complex128) {
	v.Data[v.index(i, j)] = val
}

// SameShape reports whether v and o have equal Rows and Cols.
func (v View) SameShape(o View) bool {
	return v.Rows == o.Rows && v.Cols == o.Cols
}

// Identity overwrites v with the rows x rows identity matrix. Requires a
// square view; used by the QVM's first-run prelude to initialize every
// Write destination before static code executes.
func (v View) Identity() error {
	if v.Rows != v.Cols {
		return fmt.Errorf("tensorop: Identity on %dx%d: %w", v.Rows, v.Cols, ErrDimensionMismatch)
	}
	v.Zero()
	for i := 0; i < v.Rows; i++ {
		v.Set(i, i, 1)
	}

	return nil
}

// Zero overwrites every entry of v with 0.
func (v View) Zero() {
	for j := 0; j < v.Cols; j++ {
		for i := 0; i < v.Rows; i++ {
			v.Set(i, j, 0)
		}
	}
}

// CopyInto copies v's contents into dst elementwise, honoring both views'
// strides. dst must have the same shape as v. Used by the write-into path
// to materialize an internal buffer into a caller-provided, independently
// strided destination.
func CopyInto(dst, src View) error {
	if !dst.SameShape(src) {
		return fmt.Errorf("tensorop: CopyInto %dx%d into %dx%d: %w", src.Rows, src.Cols, dst.Rows, dst.Cols, ErrDimensionMismatch)
	}
	for j := 0; j < src.Cols; j++ {
		for i := 0; i < src.Rows; i++ {
			dst.Set(i, j, src.At(i, j))
		}
	}

	return nil
}

// Overlaps reports whether v and o alias any element of the same backing
// array. Views carved from the same arena share the identical Data slice
// header, so same-array identity reduces to a pointer comparison of the
// first element; this is a conservative address-range test that lets
// callers assert the generator never emitted an FRPR whose source and
// destination overlap.
func (v View) Overlaps(o View) bool {
	if len(v.Data) == 0 || len(o.Data) == 0 {
		return false
	}
	if &v.Data[0] != &o.Data[0] {
		return false // different backing arrays can never alias
	}
	vLo, vHi := v.byteRange()
	oLo, oHi := o.byteRange()

	return vLo < oHi && oLo < vHi
}

func (v View) byteRange() (lo, hi int) {
	lo = v.Offset
	hi = v.Offset
	if v.Cols > 0 && v.Rows > 0 {
		hi = v.Offset + (v.Cols-1)*v.ColStride + v.Rows
	}

	return lo, hi
}
