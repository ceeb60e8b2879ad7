package vm

import (
	"github.com/openqudit/qvm/bytecode"
	"github.com/openqudit/qvm/tensorop"
)

// sizedBuffer is a BufferShape promoted with concrete strides and an
// absolute arena offset, both computed once by specialize at QVM
// construction time.
type sizedBuffer struct {
	rows, cols          int
	numParams           int
	paramOffset         int
	colStride, matStride int
	offset              int
}

// unitaryView returns the View over this buffer's own unitary matrix.
func (b sizedBuffer) unitaryView(arena []complex128) tensorop.View {
	return tensorop.View{Data: arena, Offset: b.offset, Rows: b.rows, Cols: b.cols, ColStride: b.colStride}
}

// gradView returns the View over the local-th (0-based, local to this
// buffer's own NumParams) gradient matrix. Callers translate a global
// parameter index to local via local = global - b.paramOffset.
func (b sizedBuffer) gradView(arena []complex128, local int) tensorop.View {
	off := b.offset + b.matStride*(1+local)

	return tensorop.View{Data: arena, Offset: off, Rows: b.rows, Cols: b.cols, ColStride: b.colStride}
}

// hessView returns the View over the packed Hessian slot (i, j), both
// local indices into this buffer's own NumParams.
func (b sizedBuffer) hessView(arena []complex128, i, j int) tensorop.View {
	idx := hessianIndex(i, j, b.numParams)
	off := b.offset + b.matStride*(1+b.numParams+idx)

	return tensorop.View{Data: arena, Offset: off, Rows: b.rows, Cols: b.cols, ColStride: b.colStride}
}

// footprint returns how many complex128 elements this buffer occupies in
// the arena at the given differentiation level.
func (b sizedBuffer) footprint(level DiffLevel) int {
	slabs := 1
	if level >= Gradient {
		slabs += b.numParams
	}
	if level >= Hessian {
		slabs += hessianSlots(b.numParams)
	}

	return slabs * b.matStride
}

// specialize turns a Program's BufferShapes into sizedBuffers with
// concrete strides and offsets, and reports the total arena size needed
// at the given differentiation level.
func specialize(shapes []bytecode.BufferShape, level DiffLevel, alignment int) ([]sizedBuffer, int) {
	sized := make([]sizedBuffer, len(shapes))
	offset := 0
	for i, s := range shapes {
		colStride := alignUp(s.Rows, alignment)
		matStride := colStride * s.Cols
		b := sizedBuffer{
			rows: s.Rows, cols: s.Cols,
			numParams: s.NumParams, paramOffset: s.ParamOffset,
			colStride: colStride, matStride: matStride,
			offset: offset,
		}
		sized[i] = b
		offset += b.footprint(level)
	}

	return sized, offset
}
