package bytecode_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openqudit/qvm/bytecode"
	"github.com/openqudit/qvm/kernel"
	"github.com/openqudit/qvm/qudit"
	"github.com/openqudit/qvm/tensorop"
)

func dummyExpr(t *testing.T, name string) *kernel.Expression {
	t.Helper()
	e, err := kernel.NewExpression(name, qudit.MustRadices([]int{2}), 0, func(_ []float64, out tensorop.View) { out.Zero() }, nil)
	require.NoError(t, err)

	return e
}

func mustModule(t *testing.T, exprs ...*kernel.Expression) *kernel.Module {
	t.Helper()
	m, err := kernel.NewModule(exprs...)
	require.NoError(t, err)

	return m
}

func TestRemoveIdentityFRPRStripsNoopAndRemapsOutput(t *testing.T) {
	t.Parallel()
	e := dummyExpr(t, "e")
	prog := &bytecode.Program{
		Module:      mustModule(t, e),
		DynamicCode: []bytecode.Instruction{
			{Op: bytecode.OpWrite, Out: 0, Expr: e},
			{Op: bytecode.OpFRPR, A: 0, Out: 1, Shape: []int{2, 2}, Perm: []int{0, 1}, InRowLegs: 1, OutRowLegs: 1},
		},
		Buffers: []bytecode.BufferShape{
			{Rows: 2, Cols: 2},
			{Rows: 2, Cols: 2},
		},
		OutputBuffer: 1,
	}

	out := bytecode.RemoveIdentityFRPR(prog)
	require.Len(t, out.DynamicCode, 1)
	require.Equal(t, bytecode.OpWrite, out.DynamicCode[0].Op)
	require.Equal(t, 0, out.OutputBuffer)
}

func TestRemoveIdentityFRPRKeepsRealPermutation(t *testing.T) {
	t.Parallel()
	e := dummyExpr(t, "e")
	prog := &bytecode.Program{
		Module:      mustModule(t, e),
		DynamicCode: []bytecode.Instruction{
			{Op: bytecode.OpWrite, Out: 0, Expr: e},
			{Op: bytecode.OpFRPR, A: 0, Out: 1, Shape: []int{2, 2}, Perm: []int{1, 0}, InRowLegs: 1, OutRowLegs: 1},
		},
		Buffers: []bytecode.BufferShape{
			{Rows: 2, Cols: 2},
			{Rows: 2, Cols: 2},
		},
		OutputBuffer: 1,
	}

	out := bytecode.RemoveIdentityFRPR(prog)
	require.Len(t, out.DynamicCode, 2)
	require.Equal(t, 1, out.OutputBuffer)
}

func TestBufferReuserIsInert(t *testing.T) {
	t.Parallel()
	prog := &bytecode.Program{OutputBuffer: 3}
	r := bytecode.NewBufferReuser()
	require.Same(t, prog, r.Reuse(prog))
}

func TestStaticBytecodeOptimizerIsNoOp(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		prog *bytecode.Program
	}{
		{"empty", &bytecode.Program{}},
		{"withStaticCode", &bytecode.Program{
			StaticCode:   []bytecode.Instruction{{Op: bytecode.OpWrite, Out: 0}},
			OutputBuffer: 0,
		}},
	}

	o := bytecode.NewStaticBytecodeOptimizer()
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			require.Same(t, c.prog, o.Optimize(c.prog))
		})
	}
}
