package bytecode

// RemoveIdentityFRPR strips every FRPR instruction whose input and output
// buffers have matching shape and whose permutation is the identity —
// i.e. a reshape-permute-reshape that provably does nothing — from a
// Program's dynamic code, remapping downstream reads of its output buffer
// straight to its input buffer instead.
func RemoveIdentityFRPR(p *Program) *Program {
	out := make([]Instruction, 0, len(p.DynamicCode))
	remap := make(map[int]int)

	for _, inst := range p.DynamicCode {
		if inst.Op == OpFRPR {
			in, outBuf := p.Buffers[inst.A], p.Buffers[inst.Out]
			if in.Rows == outBuf.Rows && in.Cols == outBuf.Cols && isIdentityPerm(inst.Perm) {
				remap[inst.Out] = inst.A
				continue
			}
		}
		inst.replaceBufferIndices(remap)
		out = append(out, inst)
	}

	return &Program{
		Module:       p.Module,
		StaticCode:   p.StaticCode,
		DynamicCode:  out,
		Buffers:      p.Buffers,
		NumParams:    p.NumParams,
		OutputBuffer: remapOutput(p.OutputBuffer, remap),
	}
}

func isIdentityPerm(perm []int) bool {
	for i, p := range perm {
		if i != p {
			return false
		}
	}

	return true
}

func remapOutput(idx int, remap map[int]int) int {
	for {
		v, ok := remap[idx]
		if !ok {
			return idx
		}
		idx = v
	}
}

// StaticBytecodeOptimizer is a no-op scaffold for gate deduplication: a
// hook for recognizing that two static instructions compute the same
// gate (e.g. two Constant subtrees that happen to be structurally
// identical but weren't caught by the generator's pointer-identity
// memoization) and collapsing them to one. Deduplicating Write
// instructions by kernel identity plus parameter values is
// straightforward; deduplicating a whole chain ending in a shared
// Matmul/Kron/FRPR requires the same structural-equality machinery the
// generator's constantCache punts on, so this stays a documented no-op
// rather than a partial implementation of it.
type StaticBytecodeOptimizer struct{}

// NewStaticBytecodeOptimizer returns an inert StaticBytecodeOptimizer.
func NewStaticBytecodeOptimizer() *StaticBytecodeOptimizer { return &StaticBytecodeOptimizer{} }

// Optimize returns p unchanged.
func (*StaticBytecodeOptimizer) Optimize(p *Program) *Program { return p }

// BufferReuser is a placeholder for a clobber-aware allocator that would
// let non-overlapping-lifetime buffers share arena space. Every attempt to
// drive a design here (per-expression free lists keyed by shape, an
// immortal-buffer set for the program's output) requires a precise
// buffer-liveness analysis the generator above doesn't yet compute, so
// the type stays inert: constructing one is valid, but it does not change
// the buffer indices a Program already has.
type BufferReuser struct{}

// NewBufferReuser returns an inert BufferReuser.
func NewBufferReuser() *BufferReuser { return &BufferReuser{} }

// Reuse returns p unchanged. It exists so callers can wire buffer reuse
// into a pipeline today and get real savings later without an API change.
func (*BufferReuser) Reuse(p *Program) *Program { return p }
