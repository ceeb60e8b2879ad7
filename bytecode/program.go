package bytecode

import "github.com/openqudit/qvm/kernel"

// Program is the compiled output of Generate: a set of leaf expressions
// referenced anywhere in the circuit, two instruction streams, and the
// buffer shapes both streams index into.
//
// StaticCode runs exactly once, regardless of how many times the
// surrounding circuit is evaluated at different parameter values — it's
// the lowering of every Constant subtree. DynamicCode runs on every
// evaluation.
type Program struct {
	// Module is the immutable registry of every leaf expression the
	// circuit references, built once at generation time and threaded
	// unchanged into the QVM that specializes this Program: kernel
	// handles outlive the QVM via this single immutable Module object.
	Module      *kernel.Module
	StaticCode  []Instruction
	DynamicCode []Instruction
	Buffers     []BufferShape

	// NumParams is the total width of the parameter vector the GetUnitary*/
	// WriteUnitary* family expects; it's the sum of every Write instruction's leaf's
	// NumParams, in DynamicCode only (a Constant's own leaves were
	// already folded to zero free parameters by the optimizer).
	NumParams int

	// OutputBuffer is the index of the buffer holding the final result.
	OutputBuffer int
}
