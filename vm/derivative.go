package vm

import "github.com/openqudit/qvm/tensorop"

// binaryKernel is the shape shared by tensorop.Matmul and tensorop.Kron:
// dst = a <op> b. execBinary below drives derivative propagation for
// either one identically — Kron's product rule is the same shape as
// Matmul's, just with ⊗ in place of . — by parameterizing over which
// primitive actually runs.
type binaryKernel func(dst, a, b tensorop.View) error

// within reports whether global is one of buf's own parameters, and its
// local (0-based, relative to buf.paramOffset) index if so.
func within(global int, buf sizedBuffer) (bool, int) {
	if global >= buf.paramOffset && global < buf.paramOffset+buf.numParams {
		return true, global - buf.paramOffset
	}

	return false, 0
}

// execBinary runs op(out, a, b) on the unitary slab, then — per the
// requested level — on the gradient and Hessian slabs, using each
// operand's own ParamOffset (not instruction operand order, which Mul's
// swapped A/B convention makes unreliable) to decide which operand owns
// each global parameter index.
//
// Gradient: for a parameter owned by a, ∂(out)/∂θ = op(∂a/∂θ, b); for one
// owned by b, op(a, ∂b/∂θ) — exactly one term is nonzero per parameter,
// so no accumulation is needed.
//
// Hessian: a parameter pair owned by the same operand reduces to op
// applied to that operand's own Hessian block against the other
// operand's unitary. A pair split across both operands is the mixed
// cross term op(a's own gradient, b's own gradient) — whichever global
// index belongs to a supplies the first operand of op, whichever belongs
// to b supplies the second, regardless of which of the pair is numerically
// smaller.
func execBinary(op binaryKernel, arena []complex128, out, a, b sizedBuffer, level DiffLevel) error {
	if err := op(out.unitaryView(arena), a.unitaryView(arena), b.unitaryView(arena)); err != nil {
		return err
	}
	if level < Gradient {
		return nil
	}

	for i := 0; i < out.numParams; i++ {
		global := out.paramOffset + i
		if isA, local := within(global, a); isA {
			if err := op(out.gradView(arena, i), a.gradView(arena, local), b.unitaryView(arena)); err != nil {
				return err
			}

			continue
		}
		_, local := within(global, b)
		if err := op(out.gradView(arena, i), a.unitaryView(arena), b.gradView(arena, local)); err != nil {
			return err
		}
	}
	if level < Hessian {
		return nil
	}

	for i := 0; i < out.numParams; i++ {
		for j := i; j < out.numParams; j++ {
			gi, gj := out.paramOffset+i, out.paramOffset+j
			aOwnsI, liA := within(gi, a)
			aOwnsJ, ljA := within(gj, a)
			bOwnsI, liB := within(gi, b)
			bOwnsJ, ljB := within(gj, b)
			dst := out.hessView(arena, i, j)

			var err error
			switch {
			case aOwnsI && aOwnsJ:
				err = op(dst, a.hessView(arena, liA, ljA), b.unitaryView(arena))
			case bOwnsI && bOwnsJ:
				err = op(dst, a.unitaryView(arena), b.hessView(arena, liB, ljB))
			case aOwnsI && bOwnsJ:
				err = op(dst, a.gradView(arena, liA), b.gradView(arena, ljB))
			case bOwnsI && aOwnsJ:
				err = op(dst, a.gradView(arena, ljA), b.gradView(arena, liB))
			}
			if err != nil {
				return err
			}
		}
	}

	return nil
}
