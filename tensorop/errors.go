package tensorop

import "errors"

// Sentinel errors for tensorop package operations.
var (
	// ErrDimensionMismatch indicates incompatible matrix dimensions for an
	// operation (e.g. Matmul with a.Cols != b.Rows).
	ErrDimensionMismatch = errors.New("tensorop: dimension mismatch")

	// ErrShapeMismatch indicates a tensor shape does not multiply out to
	// the declared matrix dimensions.
	ErrShapeMismatch = errors.New("tensorop: shape does not match matrix dimensions")

	// ErrFRPRTooLarge is returned when a prepared FRPR index plan would
	// need more than 64 leg entries.
	ErrFRPRTooLarge = errors.New("tensorop: FRPR plan exceeds 64 legs")

	// ErrInvalidPermutation indicates a permutation vector is not a valid
	// bijection over its domain.
	ErrInvalidPermutation = errors.New("tensorop: invalid permutation")

	// ErrOverlappingBuffers indicates an operation was asked to read from
	// and write to overlapping storage, which Matmul, Kron and ApplyFRPR
	// forbid (CopyInto does not check).
	ErrOverlappingBuffers = errors.New("tensorop: source and destination buffers overlap")
)
