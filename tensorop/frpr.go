package tensorop

import "fmt"

// FRPRPlan is the prepared index plan for one fused reshape-permute-
// reshape. Reinterpreting the source matrix as a tensor of Shape legs
// (the first InRowLegs of which compose the row index, the remainder the
// column index), FRPR permutes those legs according to Perm and reshapes
// the result back into a matrix whose row index is composed from the
// first OutRowLegs legs of the permuted order.
//
// Ins[k]/Outs[k] are address strides (in elements, already folding in the
// source/destination column strides) for leg position k of the *output*
// ordering; Dims[k] is that leg's size. Apply walks the Cartesian product
// of Dims as a mixed-radix odometer, accumulating input/output offsets
// from Ins/Outs — the same "nested strided copy" shape a nesting of
// shape/perm naturally decomposes into.
type FRPRPlan struct {
	Ins, Outs, Dims []int
	InRows, InCols  int
	OutRows, OutCols int
}

// MaxFRPRLegs bounds the number of tensor legs a single FRPR instruction
// may address before PrepareFRPR reports ErrFRPRTooLarge.
const MaxFRPRLegs = 64

// PrepareFRPR validates shape/perm against the declared matrix dimensions
// and builds an FRPRPlan. inRowLegs/outRowLegs say how many leading legs
// of shape (resp. of the permuted shape) compose the row index; the
// remaining legs compose the column index.
//
// Complexity: O(len(shape)).
func PrepareFRPR(inRows, inCols, inColStride, outRows, outCols, outColStride int, shape []int, perm []int, inRowLegs, outRowLegs int) (FRPRPlan, error) {
	legs := len(shape)
	if legs > MaxFRPRLegs {
		return FRPRPlan{}, fmt.Errorf("tensorop: %d legs: %w", legs, ErrFRPRTooLarge)
	}
	if len(perm) != legs {
		return FRPRPlan{}, fmt.Errorf("tensorop: perm length %d != shape length %d: %w", len(perm), legs, ErrInvalidPermutation)
	}
	if err := validatePermutation(perm); err != nil {
		return FRPRPlan{}, err
	}
	if inRowLegs < 0 || inRowLegs > legs || outRowLegs < 0 || outRowLegs > legs {
		return FRPRPlan{}, fmt.Errorf("tensorop: row-leg split out of range: %w", ErrShapeMismatch)
	}
	if prod(shape[:inRowLegs]) != inRows || prod(shape[inRowLegs:]) != inCols {
		return FRPRPlan{}, fmt.Errorf("tensorop: input shape %v does not factor into %dx%d: %w", shape, inRows, inCols, ErrShapeMismatch)
	}

	shapeOut := make([]int, legs)
	for k, p := range perm {
		shapeOut[k] = shape[p]
	}
	if prod(shapeOut[:outRowLegs]) != outRows || prod(shapeOut[outRowLegs:]) != outCols {
		return FRPRPlan{}, fmt.Errorf("tensorop: output shape %v does not factor into %dx%d: %w", shapeOut, outRows, outCols, ErrShapeMismatch)
	}

	inAddrStride := addressStrides(shape, inRowLegs, inColStride)
	outAddrStrideByPos := addressStrides(shapeOut, outRowLegs, outColStride)

	ins := make([]int, legs)
	outs := make([]int, legs)
	for k, p := range perm {
		ins[k] = inAddrStride[p]
		outs[k] = outAddrStrideByPos[k]
	}

	return FRPRPlan{
		Ins: ins, Outs: outs, Dims: shapeOut,
		InRows: inRows, InCols: inCols, OutRows: outRows, OutCols: outCols,
	}, nil
}

// addressStrides returns, for each leg j of shape (split at rowLegs into a
// row group and a column group), the number of storage elements crossed
// by incrementing leg j by one, holding every other leg fixed. Within a
// group, legs are row-major: leg j's stride is the product of the sizes
// of the legs after it in the same group, times that group's storage
// stride (1 for the row group, colStride for the column group).
func addressStrides(shape []int, rowLegs, colStride int) []int {
	legs := len(shape)
	strides := make([]int, legs)
	run := 1
	for j := rowLegs - 1; j >= 0; j-- {
		strides[j] = run
		run *= shape[j]
	}
	run = 1
	for j := legs - 1; j >= rowLegs; j-- {
		strides[j] = run * colStride
		run *= shape[j]
	}

	return strides
}

func prod(xs []int) int {
	p := 1
	for _, x := range xs {
		p *= x
	}

	return p
}

func validatePermutation(perm []int) error {
	seen := make([]bool, len(perm))
	for _, p := range perm {
		if p < 0 || p >= len(perm) || seen[p] {
			return fmt.Errorf("tensorop: perm %v: %w", perm, ErrInvalidPermutation)
		}
		seen[p] = true
	}

	return nil
}

// ApplyFRPR executes a prepared plan, copying src into dst leg-by-leg.
// src/dst must match the plan's declared shapes and must not overlap.
func ApplyFRPR(dst, src View, plan FRPRPlan) error {
	if src.Rows != plan.InRows || src.Cols != plan.InCols {
		return fmt.Errorf("tensorop: ApplyFRPR src %dx%d, want %dx%d: %w", src.Rows, src.Cols, plan.InRows, plan.InCols, ErrShapeMismatch)
	}
	if dst.Rows != plan.OutRows || dst.Cols != plan.OutCols {
		return fmt.Errorf("tensorop: ApplyFRPR dst %dx%d, want %dx%d: %w", dst.Rows, dst.Cols, plan.OutRows, plan.OutCols, ErrShapeMismatch)
	}
	if dst.Overlaps(src) {
		return fmt.Errorf("tensorop: ApplyFRPR: %w", ErrOverlappingBuffers)
	}

	inBase, outBase := src.Offset, dst.Offset
	digits := make([]int, len(plan.Dims))
	for {
		inOff, outOff := inBase, outBase
		for k, d := range digits {
			inOff += plan.Ins[k] * d
			outOff += plan.Outs[k] * d
		}
		dst.Data[outOff] = src.Data[inOff]

		if !odometerIncrement(digits, plan.Dims) {
			return nil
		}
	}
}

// odometerIncrement advances digits (mixed-radix, last index fastest) by
// one, reporting whether it wrapped past the final combination.
func odometerIncrement(digits, dims []int) bool {
	for k := len(digits) - 1; k >= 0; k-- {
		digits[k]++
		if digits[k] < dims[k] {
			return true
		}
		digits[k] = 0
	}

	return false
}
