package vm

import (
	"fmt"

	"github.com/openqudit/qvm/bytecode"
	"github.com/openqudit/qvm/kernel"
	"github.com/openqudit/qvm/tensorop"
)

// QVM is the virtual machine that evaluates a compiled Program: a fixed
// arena, the static/dynamic instruction streams, and a first-run flag
// gating the one-time static prelude. It owns its arena exclusively and
// is not safe for concurrent use by multiple goroutines — callers
// wanting parallelism construct one QVM per goroutine, each from the
// same immutable Program.
type QVM struct {
	program  *bytecode.Program
	level    DiffLevel
	buffers  []sizedBuffer
	arena    []complex128
	firstRun bool
}

// New specializes program for level, allocating its arena and buffer
// layout. level is a required argument because it determines arena size,
// not a secondary policy — every GetUnitary*/WriteUnitary* call after
// this is rejected with ErrCapabilityMismatch if it asks for more than
// level.
func New(program *bytecode.Program, level DiffLevel, opts ...Option) *QVM {
	cfg := newConfig(opts...)
	buffers, size := specialize(program.Buffers, level, cfg.alignment)

	return &QVM{
		program:  program,
		level:    level,
		buffers:  buffers,
		arena:    make([]complex128, size),
		firstRun: true,
	}
}

// Level reports the differentiation level this QVM was constructed with.
func (q *QVM) Level() DiffLevel { return q.level }

// NumParams reports the width of the parameter vector the GetUnitary*/
// WriteUnitary* family expects.
func (q *QVM) NumParams() int { return q.program.NumParams }

// Module returns the immutable kernel registry this QVM's Program
// carries: kernel handles outlive the QVM via one immutable Module
// created by bytecode.Generate. Safe to call from any goroutine.
func (q *QVM) Module() *kernel.Module { return q.program.Module }

// ensurePrelude runs the first-run initialization exactly once: every
// Write destination — static or dynamic — is seeded with the identity
// matrix, then static code runs a single time.
func (q *QVM) ensurePrelude() error {
	if !q.firstRun {
		return nil
	}
	for _, inst := range q.program.StaticCode {
		if inst.Op == bytecode.OpWrite {
			if err := q.buffers[inst.Out].unitaryView(q.arena).Identity(); err != nil {
				return err
			}
		}
	}
	for _, inst := range q.program.DynamicCode {
		if inst.Op == bytecode.OpWrite {
			if err := q.buffers[inst.Out].unitaryView(q.arena).Identity(); err != nil {
				return err
			}
		}
	}
	for _, inst := range q.program.StaticCode {
		if err := q.exec(inst, nil, q.level); err != nil {
			return fmt.Errorf("vm: static prelude: %w", err)
		}
	}
	q.firstRun = false

	return nil
}

// run executes the prelude (lazily) and then every dynamic instruction in
// order at levelRequested, which must not exceed the QVM's configured
// level.
func (q *QVM) run(params []float64, levelRequested DiffLevel) error {
	if levelRequested > q.level {
		return fmt.Errorf("vm: requested %s, configured %s: %w", levelRequested, q.level, ErrCapabilityMismatch)
	}
	if err := q.ensurePrelude(); err != nil {
		return err
	}
	for _, inst := range q.program.DynamicCode {
		if err := q.exec(inst, params, levelRequested); err != nil {
			return err
		}
	}

	return nil
}

// exec dispatches a single instruction against the live arena.
func (q *QVM) exec(inst bytecode.Instruction, params []float64, level DiffLevel) error {
	switch inst.Op {
	case bytecode.OpWrite:
		return q.execWrite(inst, params, level)
	case bytecode.OpMatmul:
		out, a, b := q.buffers[inst.Out], q.buffers[inst.A], q.buffers[inst.B]

		return execBinary(tensorop.Matmul, q.arena, out, a, b, level)
	case bytecode.OpKron:
		out, a, b := q.buffers[inst.Out], q.buffers[inst.A], q.buffers[inst.B]

		return execBinary(tensorop.Kron, q.arena, out, a, b, level)
	case bytecode.OpFRPR:
		return q.execFRPR(inst, level)
	default:
		return fmt.Errorf("vm: %v: %w", inst.Op, ErrCapabilityMismatch)
	}
}

// execWrite runs a leaf's kernel. A buffer with no parameters of its own
// (every static Write, and any dynamic Leaf the optimizer left unwrapped
// because it genuinely has zero parameters) never needs a gradient or
// Hessian kernel — there's nothing to differentiate, and specialize never
// reserved slab space for it — so it always takes the plain Write path
// regardless of the requested level.
func (q *QVM) execWrite(inst bytecode.Instruction, params []float64, level DiffLevel) error {
	out := q.buffers[inst.Out]
	n := inst.Expr.NumParams()
	p := params[inst.ParamOffset : inst.ParamOffset+n]

	if out.numParams == 0 || level < Gradient {
		inst.Expr.Write(p, out.unitaryView(q.arena))

		return nil
	}

	grad := make([]tensorop.View, out.numParams)
	for i := range grad {
		grad[i] = out.gradView(q.arena, i)
	}
	if err := inst.Expr.WriteGrad(p, out.unitaryView(q.arena), grad); err != nil {
		return fmt.Errorf("vm: %s: %w: %w", inst.Expr.Name(), ErrNoGradientKernel, err)
	}

	// No kernel in this ABI supplies a leaf's own second derivative (only
	// write_fn/write_and_grad_fn are defined); a leaf's Hessian slab stays
	// at its prelude-allocated zero permanently. Composite nodes still
	// accumulate nonzero Hessian blocks from the product rule in
	// execBinary above.

	return nil
}

func (q *QVM) execFRPR(inst bytecode.Instruction, level DiffLevel) error {
	src, dst := q.buffers[inst.A], q.buffers[inst.Out]
	plan, err := tensorop.PrepareFRPR(
		src.rows, src.cols, src.colStride,
		dst.rows, dst.cols, dst.colStride,
		inst.Shape, inst.Perm, inst.InRowLegs, inst.OutRowLegs,
	)
	if err != nil {
		return err
	}
	if err := tensorop.ApplyFRPR(dst.unitaryView(q.arena), src.unitaryView(q.arena), plan); err != nil {
		return err
	}
	if level < Gradient {
		return nil
	}
	for i := 0; i < dst.numParams; i++ {
		if err := tensorop.ApplyFRPR(dst.gradView(q.arena, i), src.gradView(q.arena, i), plan); err != nil {
			return err
		}
	}
	if level < Hessian {
		return nil
	}
	for i := 0; i < dst.numParams; i++ {
		for j := i; j < dst.numParams; j++ {
			if err := tensorop.ApplyFRPR(dst.hessView(q.arena, i, j), src.hessView(q.arena, i, j), plan); err != nil {
				return err
			}
		}
	}

	return nil
}

// GetUnitary runs the circuit at DiffLevel None and returns a view onto
// the output buffer's unitary. The returned view aliases the QVM's arena
// and is only valid until the next evaluating call.
func (q *QVM) GetUnitary(params []float64) (tensorop.View, error) {
	if err := q.run(params, None); err != nil {
		return tensorop.View{}, err
	}

	return q.buffers[q.program.OutputBuffer].unitaryView(q.arena), nil
}

// GetUnitaryAndGradient runs the circuit at DiffLevel Gradient and
// returns the output buffer's unitary plus its Jacobian, one view per
// parameter in global parameter order.
func (q *QVM) GetUnitaryAndGradient(params []float64) (tensorop.View, []tensorop.View, error) {
	if err := q.run(params, Gradient); err != nil {
		return tensorop.View{}, nil, err
	}
	out := q.buffers[q.program.OutputBuffer]
	grad := make([]tensorop.View, out.numParams)
	for i := range grad {
		grad[i] = out.gradView(q.arena, i)
	}

	return out.unitaryView(q.arena), grad, nil
}

// GetUnitaryGradientAndHessian runs the circuit at DiffLevel Hessian and
// returns the unitary, its Jacobian, and its Hessian (packed
// upper-triangular over parameter pairs i<=j — see hessianIndex for
// random access by pair).
func (q *QVM) GetUnitaryGradientAndHessian(params []float64) (tensorop.View, []tensorop.View, []tensorop.View, error) {
	if err := q.run(params, Hessian); err != nil {
		return tensorop.View{}, nil, nil, err
	}
	out := q.buffers[q.program.OutputBuffer]
	grad := make([]tensorop.View, out.numParams)
	for i := range grad {
		grad[i] = out.gradView(q.arena, i)
	}
	hess := make([]tensorop.View, hessianSlots(out.numParams))
	for i := 0; i < out.numParams; i++ {
		for j := i; j < out.numParams; j++ {
			hess[hessianIndex(i, j, out.numParams)] = out.hessView(q.arena, i, j)
		}
	}

	return out.unitaryView(q.arena), grad, hess, nil
}

// WriteUnitary runs the circuit and copies its output unitary into the
// caller-provided view, which may have its own independent stride.
// Internally it always materializes into the QVM's own arena first
// (execFRPR never targets a caller view directly), which sidesteps any
// read-after-write aliasing hazard for a final FRPR instruction: the copy
// below reads a fully-written, private buffer.
func (q *QVM) WriteUnitary(params []float64, out tensorop.View) error {
	if err := q.run(params, None); err != nil {
		return err
	}

	return copyOut(out, q.buffers[q.program.OutputBuffer].unitaryView(q.arena))
}

// WriteUnitaryAndGradient is WriteUnitary plus the Jacobian, one entry of
// outGrad per parameter in global order; len(outGrad) must equal
// NumParams().
func (q *QVM) WriteUnitaryAndGradient(params []float64, out tensorop.View, outGrad []tensorop.View) error {
	if len(outGrad) != q.program.NumParams {
		return fmt.Errorf("vm: %w", ErrOutputGradLenMismatch)
	}
	if err := q.run(params, Gradient); err != nil {
		return err
	}
	outBuf := q.buffers[q.program.OutputBuffer]
	if err := copyOut(out, outBuf.unitaryView(q.arena)); err != nil {
		return err
	}
	for i, dst := range outGrad {
		if err := copyOut(dst, outBuf.gradView(q.arena, i)); err != nil {
			return err
		}
	}

	return nil
}

// WriteUnitaryGradientAndHessian is WriteUnitaryAndGradient plus the
// packed-upper-triangular Hessian; len(outHess) must equal
// NumParams()*(NumParams()+1)/2, indexed per hessianIndex.
func (q *QVM) WriteUnitaryGradientAndHessian(params []float64, out tensorop.View, outGrad []tensorop.View, outHess []tensorop.View) error {
	if len(outGrad) != q.program.NumParams {
		return fmt.Errorf("vm: %w", ErrOutputGradLenMismatch)
	}
	if len(outHess) != hessianSlots(q.program.NumParams) {
		return fmt.Errorf("vm: %w", ErrOutputHessLenMismatch)
	}
	if err := q.run(params, Hessian); err != nil {
		return err
	}
	outBuf := q.buffers[q.program.OutputBuffer]
	if err := copyOut(out, outBuf.unitaryView(q.arena)); err != nil {
		return err
	}
	for i, dst := range outGrad {
		if err := copyOut(dst, outBuf.gradView(q.arena, i)); err != nil {
			return err
		}
	}
	n := q.program.NumParams
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if err := copyOut(outHess[hessianIndex(i, j, n)], outBuf.hessView(q.arena, i, j)); err != nil {
				return err
			}
		}
	}

	return nil
}

func copyOut(dst, src tensorop.View) error {
	if !dst.SameShape(src) {
		return fmt.Errorf("vm: %w", ErrOutputShapeMismatch)
	}

	return tensorop.CopyInto(dst, src)
}
