package bytecode

import "errors"

// Sentinel errors for bytecode package operations.
var (
	// ErrIdentityNode is returned (not panicked — an external caller can
	// hand Generate a hand-built tree) when generation reaches a
	// tree.Identity node; the optimizer is required to have removed every
	// one before generation.
	ErrIdentityNode = errors.New("bytecode: identity node reached generation")

	// ErrUnknownNodeKind is returned when generation encounters a
	// tree.Node implementation this package doesn't know how to lower.
	ErrUnknownNodeKind = errors.New("bytecode: unrecognized node kind")
)
