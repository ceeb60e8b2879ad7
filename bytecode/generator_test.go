package bytecode_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openqudit/qvm/bytecode"
	"github.com/openqudit/qvm/dag"
	"github.com/openqudit/qvm/fixtures"
	"github.com/openqudit/qvm/tree"
)

func buildRoot(t *testing.T, numQudits int, ops []dag.Op) tree.Node {
	t.Helper()
	b, err := dag.NewBuilder(numQudits, ops)
	require.NoError(t, err)
	root, err := b.Build()
	require.NoError(t, err)

	return root
}

func TestGenerateTwoGateMulProducesOneMatmul(t *testing.T) {
	t.Parallel()
	ops := []dag.Op{
		{Node: tree.NewLeaf(fixtures.PhaseGate("a")), Qudits: []int{0}, Next: []int{1}, Prev: []int{-1}},
		{Node: tree.NewLeaf(fixtures.PhaseGate("b")), Qudits: []int{0}, Next: []int{-1}, Prev: []int{0}},
	}
	root := buildRoot(t, 1, ops)
	prog, err := bytecode.Generate(root)
	require.NoError(t, err)

	matmuls := 0
	for _, inst := range prog.DynamicCode {
		if inst.Op == bytecode.OpMatmul {
			matmuls++
		}
	}
	require.Equal(t, 1, matmuls)
	require.Equal(t, 2, prog.NumParams)
	require.NotEmpty(t, prog.Buffers)
}

func TestGenerateConstantCircuitProducesOnlyStaticCode(t *testing.T) {
	t.Parallel()
	ops, err := fixtures.LinearChain(3, fixtures.CXGate)
	require.NoError(t, err)
	root := buildRoot(t, 3, ops)
	optimized, err := tree.NewOptimizer().Optimize(root)
	require.NoError(t, err)

	prog, err := bytecode.Generate(optimized)
	require.NoError(t, err)
	require.Empty(t, prog.DynamicCode)
	require.NotEmpty(t, prog.StaticCode)
	require.Zero(t, prog.NumParams)
}

func TestGenerateParamOffsetsAreContiguousPerBuffer(t *testing.T) {
	t.Parallel()
	p0 := tree.NewLeaf(fixtures.PhaseGate("p0"))
	p1 := tree.NewLeaf(fixtures.PhaseGate("p1"))
	kron := tree.NewKron(p0, p1)
	prog, err := bytecode.Generate(kron)
	require.NoError(t, err)
	require.Equal(t, 2, prog.NumParams)

	seen := make(map[int]bool)
	for _, b := range prog.Buffers {
		for i := 0; i < b.NumParams; i++ {
			seen[b.ParamOffset+i] = true
		}
	}
	require.Len(t, seen, 2)
}
