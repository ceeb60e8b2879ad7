package bytecode

import (
	"fmt"

	"github.com/openqudit/qvm/kernel"
)

// Op identifies which numeric primitive an Instruction invokes.
type Op int

const (
	// OpWrite materializes a leaf expression's unitary (and, at
	// sufficient DiffLevel, its gradient) into a buffer.
	OpWrite Op = iota
	// OpMatmul computes C = A . B over two buffers into a third.
	OpMatmul
	// OpKron computes C = A (x) B over two buffers into a third.
	OpKron
	// OpFRPR reshapes-permutes-reshapes one buffer's contents into
	// another, per a leg shape and permutation.
	OpFRPR
)

func (o Op) String() string {
	switch o {
	case OpWrite:
		return "Write"
	case OpMatmul:
		return "Matmul"
	case OpKron:
		return "Kron"
	case OpFRPR:
		return "FRPR"
	default:
		return "Unknown"
	}
}

// Instruction is one step of a linear bytecode program. Buffer operands
// (A, B, C) are indices into a Program's Buffers slice. Only the fields
// relevant to Op are meaningful; the rest are zero.
type Instruction struct {
	Op Op

	// Write operands.
	Expr        *kernel.Expression
	ParamOffset int

	// Matmul/Kron/FRPR operands: A and B feed C (Write only uses C,
	// stored in the Out field below for clarity).
	A, B, Out int

	// FRPR operands. Shape/Perm describe the source tensor's legs and
	// their destination order; InRowLegs/OutRowLegs say how many of the
	// source (resp. permuted) legs compose the row index,
	// the rest composing the column index — package vm threads these
	// straight into tensorop.PrepareFRPR.
	Shape            []int
	Perm             []int
	InRowLegs, OutRowLegs int
}

func (i Instruction) String() string {
	switch i.Op {
	case OpWrite:
		return fmt.Sprintf("Write %s@%d -> %d", i.Expr.Name(), i.ParamOffset, i.Out)
	case OpMatmul:
		return fmt.Sprintf("Matmul %d %d -> %d", i.A, i.B, i.Out)
	case OpKron:
		return fmt.Sprintf("Kron %d %d -> %d", i.A, i.B, i.Out)
	case OpFRPR:
		return fmt.Sprintf("FRPR %d -> %d %v", i.A, i.Out, i.Perm)
	default:
		return "?"
	}
}

// offsetBufferIndices shifts every buffer index this instruction
// references by offset — used when splicing a Constant subtree's own
// program into its parent's buffer space.
func (i *Instruction) offsetBufferIndices(offset int) {
	switch i.Op {
	case OpWrite:
		i.Out += offset
	case OpFRPR:
		i.A += offset
		i.Out += offset
	default: // OpMatmul, OpKron
		i.A += offset
		i.B += offset
		i.Out += offset
	}
}

// replaceBufferIndices rewrites any buffer index present as a key in
// remap to its mapped value — used by RemoveIdentityFRPR to splice out a
// redundant buffer.
func (i *Instruction) replaceBufferIndices(remap map[int]int) {
	remapOne := func(idx int) int {
		if v, ok := remap[idx]; ok {
			return v
		}

		return idx
	}
	switch i.Op {
	case OpWrite:
		i.Out = remapOne(i.Out)
	case OpFRPR:
		i.A = remapOne(i.A)
		i.Out = remapOne(i.Out)
	default: // OpMatmul, OpKron
		i.A = remapOne(i.A)
		i.B = remapOne(i.B)
		i.Out = remapOne(i.Out)
	}
}
