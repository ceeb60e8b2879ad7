package dag

import "errors"

// Sentinel errors for dag package operations.
var (
	// ErrInvalidQuditCount is returned when NewBuilder is given a
	// non-positive qudit count.
	ErrInvalidQuditCount = errors.New("dag: qudit count must be positive")

	// ErrEmptyOps is returned when NewBuilder is given no operations.
	ErrEmptyOps = errors.New("dag: no operations to build from")

	// ErrLengthMismatch is returned when an Op's Qudits, Next, and Prev
	// slices don't all have the same length.
	ErrLengthMismatch = errors.New("dag: operation's qudits/next/prev lengths disagree")

	// ErrBuildIncomplete is returned when Build finishes its fixpoint
	// passes with more than one node still in the DAG and no further
	// disjoint pair to fuse — an internal-invariant violation, since a
	// well-formed circuit DAG always reduces to a single node.
	ErrBuildIncomplete = errors.New("dag: build did not converge to a single node")
)
