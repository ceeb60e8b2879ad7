package vm

import "errors"

// Sentinel errors for vm package operations.
var (
	// ErrCapabilityMismatch is returned when a caller asks a GetUnitary*/
	// WriteUnitary* method for a derivative level the QVM was not
	// constructed with.
	ErrCapabilityMismatch = errors.New("vm: requested differentiation level exceeds configured level")

	// ErrOutputShapeMismatch is returned by a WriteUnitary* method when a
	// caller-supplied destination view doesn't match the program's output
	// buffer shape.
	ErrOutputShapeMismatch = errors.New("vm: output view shape mismatch")

	// ErrOutputGradLenMismatch is returned when a caller-supplied gradient
	// slice's length doesn't equal the program's NumParams.
	ErrOutputGradLenMismatch = errors.New("vm: output gradient slice length mismatch")

	// ErrOutputHessLenMismatch is returned when a caller-supplied Hessian
	// slice's length doesn't equal NumParams*(NumParams+1)/2.
	ErrOutputHessLenMismatch = errors.New("vm: output hessian slice length mismatch")

	// ErrNoGradientKernel is returned when a Write instruction's leaf has
	// no gradient kernel but the QVM is running at Gradient or Hessian
	// level — the leaf simply cannot supply what was asked of it.
	ErrNoGradientKernel = errors.New("vm: leaf expression has no gradient kernel")
)
