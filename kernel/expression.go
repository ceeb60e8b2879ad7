package kernel

import (
	"fmt"

	"github.com/openqudit/qvm/qudit"
	"github.com/openqudit/qvm/tensorop"
)

// WriteFn materializes a leaf's unitary from a parameter slice into out.
// params must have at least the leaf's NumParams entries, read starting
// at index 0 of the slice the caller hands in (the VM's Write instruction
// passes the sub-slice starting at its ParamOffset). out must be exactly
// Dim x Dim.
type WriteFn func(params []float64, out tensorop.View)

// WriteGradFn is WriteFn plus the Jacobian: grad[i] receives d(out)/d(params[i])
// for every i in [0, NumParams). len(grad) must equal NumParams.
type WriteGradFn func(params []float64, out tensorop.View, grad []tensorop.View)

// Expression is an opaque, named, parameterized unitary leaf backed by a
// compiled scalar kernel. Equality and hashing are structural by name —
// two Expressions with the same Name are the same leaf operator
// regardless of where they appear in a circuit.
type Expression struct {
	name      string
	radices   qudit.Radices
	numParams int
	write     WriteFn
	writeGrad WriteGradFn // nil if no gradient kernel is available
}

// NewExpression constructs a leaf. write is required; writeGrad may be nil
// if this operator has no gradient kernel (its leaves can still appear in
// a circuit evaluated at DiffLevel None, or inside a Constant subtree).
func NewExpression(name string, radices qudit.Radices, numParams int, write WriteFn, writeGrad WriteGradFn) (*Expression, error) {
	if numParams < 0 {
		return nil, ErrInvalidParamCount
	}
	if write == nil {
		return nil, ErrNilWriteFn
	}

	return &Expression{
		name:      name,
		radices:   radices.Clone(),
		numParams: numParams,
		write:     write,
		writeGrad: writeGrad,
	}, nil
}

// Name returns the structural identity of this expression.
func (e *Expression) Name() string { return e.name }

// Radices returns the qudit radices this expression acts on.
func (e *Expression) Radices() qudit.Radices { return e.radices.Clone() }

// Dim returns the Hilbert-space dimension (product of radices).
func (e *Expression) Dim() int { return e.radices.Dim() }

// NumParams returns the number of real parameters this expression reads.
func (e *Expression) NumParams() int { return e.numParams }

// HasGradient reports whether this expression was registered with a
// write-with-gradient kernel.
func (e *Expression) HasGradient() bool { return e.writeGrad != nil }

// Write runs the expression's kernel, writing its Dim x Dim unitary into out.
func (e *Expression) Write(params []float64, out tensorop.View) {
	e.write(params, out)
}

// WriteGrad runs the gradient kernel. Returns ErrNoGradient if this
// expression has none.
func (e *Expression) WriteGrad(params []float64, out tensorop.View, grad []tensorop.View) error {
	if e.writeGrad == nil {
		return fmt.Errorf("kernel: %s: %w", e.name, ErrNoGradient)
	}
	e.writeGrad(params, out, grad)

	return nil
}

// Equal reports structural equality: same Name.
func (e *Expression) Equal(o *Expression) bool {
	if e == nil || o == nil {
		return e == o
	}

	return e.name == o.name
}

// Kron returns the fused leaf for e tensor o: radices concatenated
// (e.radices ⊕ o.radices), params summed, and a combined kernel that
// splits the incoming parameter slice across the two originals and
// tensors their outputs. The fused kernel carries a gradient only if both
// operands do.
func (e *Expression) Kron(o *Expression) (*Expression, error) {
	combinedRadices := e.radices.Concat(o.radices)
	ep, op := e.numParams, o.numParams
	write := func(params []float64, out tensorop.View) {
		a := tensorop.NewView(e.Dim(), e.Dim())
		b := tensorop.NewView(o.Dim(), o.Dim())
		e.write(params[:ep], a)
		o.write(params[ep:ep+op], b)
		_ = tensorop.Kron(out, a, b)
	}
	var writeGrad WriteGradFn
	if e.HasGradient() && o.HasGradient() {
		writeGrad = func(params []float64, out tensorop.View, grad []tensorop.View) {
			a := tensorop.NewView(e.Dim(), e.Dim())
			b := tensorop.NewView(o.Dim(), o.Dim())
			da := make([]tensorop.View, ep)
			db := make([]tensorop.View, op)
			for i := range da {
				da[i] = tensorop.NewView(e.Dim(), e.Dim())
			}
			for i := range db {
				db[i] = tensorop.NewView(o.Dim(), o.Dim())
			}
			e.writeGrad(params[:ep], a, da)
			o.writeGrad(params[ep:ep+op], b, db)
			_ = tensorop.Kron(out, a, b)
			zeroA := tensorop.NewView(e.Dim(), e.Dim())
			zeroB := tensorop.NewView(o.Dim(), o.Dim())
			for i := 0; i < ep; i++ {
				_ = tensorop.KronGrad(grad[i], a, da[i], b, zeroB)
			}
			for i := 0; i < op; i++ {
				_ = tensorop.KronGrad(grad[ep+i], a, zeroA, b, db[i])
			}
		}
	}

	return NewExpression(fmt.Sprintf("(%s⊗%s)", e.name, o.name), combinedRadices, ep+op, write, writeGrad)
}

// Mul returns the fused leaf for "e then o" applied in sequence on the
// same qudits: Mul's left operand is the predecessor that acts first, so
// the combined matrix is (right) . (left) in matrix-multiplication order.
// Radices must match; params are summed.
func (e *Expression) Mul(o *Expression) (*Expression, error) {
	if !e.radices.Equal(o.radices) {
		return nil, fmt.Errorf("kernel: Mul(%s, %s): %w", e.name, o.name, ErrRadixMismatch)
	}
	ep, op := e.numParams, o.numParams
	dim := e.Dim()
	write := func(params []float64, out tensorop.View) {
		a := tensorop.NewView(dim, dim)
		b := tensorop.NewView(dim, dim)
		e.write(params[:ep], a)
		o.write(params[ep:ep+op], b)
		_ = tensorop.Matmul(out, b, a)
	}
	var writeGrad WriteGradFn
	if e.HasGradient() && o.HasGradient() {
		writeGrad = func(params []float64, out tensorop.View, grad []tensorop.View) {
			a := tensorop.NewView(dim, dim)
			b := tensorop.NewView(dim, dim)
			da := make([]tensorop.View, ep)
			db := make([]tensorop.View, op)
			for i := range da {
				da[i] = tensorop.NewView(dim, dim)
			}
			for i := range db {
				db[i] = tensorop.NewView(dim, dim)
			}
			e.writeGrad(params[:ep], a, da)
			o.writeGrad(params[ep:ep+op], b, db)
			_ = tensorop.Matmul(out, b, a)
			zeroA := tensorop.NewView(dim, dim)
			zeroB := tensorop.NewView(dim, dim)
			for i := 0; i < ep; i++ {
				_ = tensorop.MatmulGrad(grad[i], b, zeroB, a, da[i])
			}
			for i := 0; i < op; i++ {
				_ = tensorop.MatmulGrad(grad[ep+i], b, db[i], a, zeroA)
			}
		}
	}

	return NewExpression(fmt.Sprintf("(%s·%s)", o.name, e.name), e.radices, ep+op, write, writeGrad)
}
