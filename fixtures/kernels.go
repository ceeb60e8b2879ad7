package fixtures

import (
	"math/cmplx"

	"github.com/openqudit/qvm/kernel"
	"github.com/openqudit/qvm/qudit"
	"github.com/openqudit/qvm/tensorop"
)

var qubit = qudit.MustRadices([]int{2})
var twoQubits = qudit.MustRadices([]int{2, 2})

// PhaseGate returns a single-qubit, one-parameter leaf P(theta) =
// diag(1, e^{i*theta}), a gate several worked end-to-end scenarios use.
// Its gradient kernel is exact, so tests can check it against finite
// differences.
func PhaseGate(name string) *kernel.Expression {
	write := func(params []float64, out tensorop.View) {
		out.Zero()
		out.Set(0, 0, 1)
		out.Set(1, 1, cmplx.Exp(complex(0, params[0])))
	}
	writeGrad := func(params []float64, out tensorop.View, grad []tensorop.View) {
		write(params, out)
		g := grad[0]
		g.Zero()
		g.Set(1, 1, complex(0, 1)*cmplx.Exp(complex(0, params[0])))
	}
	expr, err := kernel.NewExpression(name, qubit, 1, write, writeGrad)
	if err != nil {
		panic(err)
	}

	return expr
}

// ZRotation returns a single-qubit, one-parameter leaf
// Rz(theta) = diag(e^{-i*theta/2}, e^{i*theta/2}), a second independent
// one-parameter single-qubit gate for tests that need two distinct
// parameterized kernels in the same circuit.
func ZRotation(name string) *kernel.Expression {
	write := func(params []float64, out tensorop.View) {
		out.Zero()
		half := params[0] / 2
		out.Set(0, 0, cmplx.Exp(complex(0, -half)))
		out.Set(1, 1, cmplx.Exp(complex(0, half)))
	}
	writeGrad := func(params []float64, out tensorop.View, grad []tensorop.View) {
		write(params, out)
		half := params[0] / 2
		g := grad[0]
		g.Zero()
		g.Set(0, 0, complex(0, -0.5)*cmplx.Exp(complex(0, -half)))
		g.Set(1, 1, complex(0, 0.5)*cmplx.Exp(complex(0, half)))
	}
	expr, err := kernel.NewExpression(name, qubit, 1, write, writeGrad)
	if err != nil {
		panic(err)
	}

	return expr
}

// CXGate returns a two-qubit, zero-parameter leaf implementing CNOT with
// the first qudit as control: a constant building block for circuits that
// need entangling structure without extra parameters.
func CXGate(name string) *kernel.Expression {
	write := func(_ []float64, out tensorop.View) {
		out.Zero()
		out.Set(0, 0, 1)
		out.Set(1, 1, 1)
		out.Set(3, 2, 1)
		out.Set(2, 3, 1)
	}
	expr, err := kernel.NewExpression(name, twoQubits, 0, write, nil)
	if err != nil {
		panic(err)
	}

	return expr
}
