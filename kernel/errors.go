package kernel

import "errors"

// Sentinel errors for kernel package operations.
var (
	// ErrInvalidParamCount is returned when a leaf is constructed with a
	// negative parameter count.
	ErrInvalidParamCount = errors.New("kernel: parameter count must be >= 0")

	// ErrNilWriteFn is returned when a leaf is constructed without a
	// write function; every leaf must be able to materialize its matrix.
	ErrNilWriteFn = errors.New("kernel: write function must not be nil")

	// ErrNoGradient is returned when WriteGrad is called on a leaf
	// that was registered without a write-with-gradient function.
	ErrNoGradient = errors.New("kernel: leaf has no gradient kernel")

	// ErrRadixMismatch is returned when two leaves combined by Mul have
	// incompatible radices.
	ErrRadixMismatch = errors.New("kernel: radix mismatch")

	// ErrNameCollision is returned by Module registration when two
	// distinct expressions are registered under the same name.
	ErrNameCollision = errors.New("kernel: duplicate expression name")

	// ErrUnknownExpression is returned when a Module is asked to resolve
	// a name it never registered.
	ErrUnknownExpression = errors.New("kernel: unknown expression name")
)
