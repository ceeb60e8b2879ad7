package tree

import "errors"

// Sentinel errors for tree package operations.
var (
	// ErrRadixMismatch is returned when two operands that must share
	// radices (Mul's operands, Contract's overlapping qudits) disagree.
	ErrRadixMismatch = errors.New("tree: radix mismatch")

	// ErrContractionHasNoOverlap is returned when a Contract's left and
	// right qudit-label sets are disjoint.
	ErrContractionHasNoOverlap = errors.New("tree: contraction has no overlapping qudits")

	// ErrInvalidPermutation is returned when a Perm's sigma is not a
	// bijection over its child's qudit count.
	ErrInvalidPermutation = errors.New("tree: invalid permutation")

	// ErrLabelCountMismatch is returned when a qudit-label list's length
	// does not match the operand's qudit count.
	ErrLabelCountMismatch = errors.New("tree: label count does not match qudit count")

	// ErrNotConstant is returned when NewConstant is asked to wrap a
	// subtree that still carries parameters.
	ErrNotConstant = errors.New("tree: subtree has nonzero parameter count")

	// ErrIdentityNode marks an Identity node surviving to bytecode
	// generation. Identity is a transient placeholder the builder never
	// actually needs to emit in practice; an Identity reaching generation
	// is an internal-invariant violation, not a recoverable caller error.
	// Nothing in this module returns this sentinel: bytecode.Generate
	// reports that case with its own bytecode.ErrIdentityNode.
	ErrIdentityNode = errors.New("tree: identity node reached bytecode generation")
)
