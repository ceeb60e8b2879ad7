package vm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openqudit/qvm/bytecode"
	"github.com/openqudit/qvm/dag"
	"github.com/openqudit/qvm/fixtures"
	"github.com/openqudit/qvm/tensorop"
	"github.com/openqudit/qvm/tree"
	"github.com/openqudit/qvm/vm"
)

func compile(t *testing.T, numQudits int, ops []dag.Op) *bytecode.Program {
	t.Helper()
	b, err := dag.NewBuilder(numQudits, ops)
	require.NoError(t, err)
	root, err := b.Build()
	require.NoError(t, err)
	prog, err := bytecode.Generate(root)
	require.NoError(t, err)

	return prog
}

func mulProgram(t *testing.T) *bytecode.Program {
	t.Helper()
	ops := []dag.Op{
		{Node: tree.NewLeaf(fixtures.PhaseGate("a")), Qudits: []int{0}, Next: []int{1}, Prev: []int{-1}},
		{Node: tree.NewLeaf(fixtures.ZRotation("b")), Qudits: []int{0}, Next: []int{-1}, Prev: []int{0}},
	}

	return compile(t, 1, ops)
}

func TestCapabilityMismatch(t *testing.T) {
	t.Parallel()
	prog := mulProgram(t)
	q := vm.New(prog, vm.None)
	_, _, err := q.GetUnitaryAndGradient([]float64{0, 0})
	require.ErrorIs(t, err, vm.ErrCapabilityMismatch)
}

func TestWriteUnitaryShapeMismatch(t *testing.T) {
	t.Parallel()
	prog := mulProgram(t)
	q := vm.New(prog, vm.None)
	bad := tensorop.NewView(3, 3)
	err := q.WriteUnitary([]float64{0, 0}, bad)
	require.ErrorIs(t, err, vm.ErrOutputShapeMismatch)
}

func TestWriteUnitaryAndGradientLengthMismatch(t *testing.T) {
	t.Parallel()
	prog := mulProgram(t)
	q := vm.New(prog, vm.Gradient)
	out := tensorop.NewView(2, 2)
	err := q.WriteUnitaryAndGradient([]float64{0, 0}, out, nil)
	require.ErrorIs(t, err, vm.ErrOutputGradLenMismatch)
}

func TestWriteUnitaryGradientAndHessianLengthMismatch(t *testing.T) {
	t.Parallel()
	prog := mulProgram(t)
	q := vm.New(prog, vm.Hessian)
	out := tensorop.NewView(2, 2)
	grad := make([]tensorop.View, 2)
	for i := range grad {
		grad[i] = tensorop.NewView(2, 2)
	}
	err := q.WriteUnitaryGradientAndHessian([]float64{0, 0}, out, grad, nil)
	require.ErrorIs(t, err, vm.ErrOutputHessLenMismatch)
}

func TestGetUnitaryWriteUnitaryAgree(t *testing.T) {
	t.Parallel()
	prog := mulProgram(t)
	q := vm.New(prog, vm.None)
	params := []float64{0.5, -0.25}

	got, err := q.GetUnitary(params)
	require.NoError(t, err)

	dst := tensorop.NewView(2, 2)
	require.NoError(t, q.WriteUnitary(params, dst))

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			require.InDelta(t, real(got.At(i, j)), real(dst.At(i, j)), 1e-12)
			require.InDelta(t, imag(got.At(i, j)), imag(dst.At(i, j)), 1e-12)
		}
	}
}

func requireViewsClose(t *testing.T, want, got tensorop.View, tol float64) {
	t.Helper()
	require.True(t, want.SameShape(got))
	for i := 0; i < want.Rows; i++ {
		for j := 0; j < want.Cols; j++ {
			require.InDelta(t, real(want.At(i, j)), real(got.At(i, j)), tol)
			require.InDelta(t, imag(want.At(i, j)), imag(got.At(i, j)), tol)
		}
	}
}

// gradFiniteDiff returns a central finite difference of grad[read] with
// respect to params[perturb]: (grad[read](params+eps) - grad[read](params-eps)) / 2eps.
// Each GetUnitaryAndGradient call's views alias the QVM's arena, so the
// plus-side view is copied out before the minus-side call overwrites it.
func gradFiniteDiff(t *testing.T, q *vm.QVM, params []float64, read, perturb int) tensorop.View {
	t.Helper()
	const eps = 1e-6

	plus := append([]float64(nil), params...)
	plus[perturb] += eps
	_, gradPlus, err := q.GetUnitaryAndGradient(plus)
	require.NoError(t, err)
	plusCopy := tensorop.NewView(gradPlus[read].Rows, gradPlus[read].Cols)
	require.NoError(t, tensorop.CopyInto(plusCopy, gradPlus[read]))

	minus := append([]float64(nil), params...)
	minus[perturb] -= eps
	_, gradMinus, err := q.GetUnitaryAndGradient(minus)
	require.NoError(t, err)

	fd := tensorop.NewView(plusCopy.Rows, plusCopy.Cols)
	for r := 0; r < fd.Rows; r++ {
		for c := 0; c < fd.Cols; c++ {
			fd.Set(r, c, (plusCopy.At(r, c)-gradMinus[read].At(r, c))/complex(2*eps, 0))
		}
	}

	return fd
}

// TestHessianMatchesGradientFiniteDifference covers a 3-parameter circuit
// that chains two same-qudit leaves through a Mul and tensors the result
// with a third, independent leaf on another qudit, so the Hessian's mixed
// cross terms span both a Matmul and a Kron. For every parameter pair it
// checks the packed Hessian entry two ways: against a central finite
// difference of the Jacobian taken in each perturbation order (which is
// also what "symmetric" means for a mixed partial), and — for a pair that
// shares a single parameter — against the documented zero, since no kernel
// in this ABI supplies a leaf's own second derivative.
func TestHessianMatchesGradientFiniteDifference(t *testing.T) {
	t.Parallel()
	ops := []dag.Op{
		{Node: tree.NewLeaf(fixtures.PhaseGate("a")), Qudits: []int{0}, Next: []int{1}, Prev: []int{-1}},
		{Node: tree.NewLeaf(fixtures.ZRotation("b")), Qudits: []int{0}, Next: []int{-1}, Prev: []int{0}},
		{Node: tree.NewLeaf(fixtures.PhaseGate("c")), Qudits: []int{1}, Next: []int{-1}, Prev: []int{-1}},
	}
	prog := compile(t, 2, ops)
	require.Equal(t, 3, prog.NumParams)
	q := vm.New(prog, vm.Hessian)
	params := []float64{0.3, 0.8, -0.6}

	_, grad, hess, err := q.GetUnitaryGradientAndHessian(params)
	require.NoError(t, err)
	require.Len(t, grad, 3)
	require.Len(t, hess, 6)

	idx := 0
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			h := hess[idx]
			idx++

			if i == j {
				zero := tensorop.NewView(h.Rows, h.Cols)
				requireViewsClose(t, zero, h, 1e-12)

				continue
			}

			fdPerturbJ := gradFiniteDiff(t, q, params, i, j)
			fdPerturbI := gradFiniteDiff(t, q, params, j, i)
			requireViewsClose(t, fdPerturbJ, h, 1e-4)
			requireViewsClose(t, fdPerturbI, h, 1e-4)
		}
	}
}

func TestModuleResolvesEveryLeafByName(t *testing.T) {
	t.Parallel()
	prog := mulProgram(t)
	q := vm.New(prog, vm.None)

	require.Equal(t, 2, q.Module().Len())
	a, err := q.Module().Lookup("a")
	require.NoError(t, err)
	require.Equal(t, 1, a.NumParams())
	b, err := q.Module().Lookup("b")
	require.NoError(t, err)
	require.Equal(t, 1, b.NumParams())
}

func TestFirstRunPreludeRunsStaticCodeOnce(t *testing.T) {
	t.Parallel()
	ops, err := fixtures.LinearChain(3, fixtures.CXGate)
	require.NoError(t, err)
	root := func() tree.Node {
		b, err := dag.NewBuilder(3, ops)
		require.NoError(t, err)
		r, err := b.Build()
		require.NoError(t, err)

		return r
	}()
	optimized, err := tree.NewOptimizer().Optimize(root)
	require.NoError(t, err)
	prog, err := bytecode.Generate(optimized)
	require.NoError(t, err)
	require.Empty(t, prog.DynamicCode)

	q := vm.New(prog, vm.None)
	first, err := q.GetUnitary(nil)
	require.NoError(t, err)
	firstCopy := tensorop.NewView(first.Rows, first.Cols)
	require.NoError(t, tensorop.CopyInto(firstCopy, first))

	second, err := q.GetUnitary(nil)
	require.NoError(t, err)
	for i := 0; i < first.Rows; i++ {
		for j := 0; j < first.Cols; j++ {
			require.Equal(t, firstCopy.At(i, j), second.At(i, j))
		}
	}
}
