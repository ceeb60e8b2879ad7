package qudit

import "errors"

// Sentinel errors for qudit package operations. This package's public
// constructors return these (never bare fmt.Errorf) so callers can branch
// with errors.Is; context is attached by wrapping with %w at the boundary
// that detected the fault.
var (
	// ErrInvalidRadix is returned when a radix is less than 2.
	ErrInvalidRadix = errors.New("qudit: radix must be >= 2")

	// ErrEmptyRadices is returned when a qudit system has zero qudits.
	ErrEmptyRadices = errors.New("qudit: radices must be non-empty")

	// ErrRadixMismatch is returned when two operands that must share a
	// radix at some qudit position disagree.
	ErrRadixMismatch = errors.New("qudit: radix mismatch")

	// ErrQuditIndexOutOfRange is returned when a qudit label is outside
	// the bounds of the circuit's qudit count.
	ErrQuditIndexOutOfRange = errors.New("qudit: qudit index out of range")

	// ErrDuplicateQudit is returned when a qudit label list contains the
	// same label more than once where uniqueness is required.
	ErrDuplicateQudit = errors.New("qudit: duplicate qudit label")
)
