package dag_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openqudit/qvm/dag"
	"github.com/openqudit/qvm/fixtures"
	"github.com/openqudit/qvm/tree"
)

func TestNewBuilderRejectsNonPositiveQuditCount(t *testing.T) {
	t.Parallel()
	ops, err := fixtures.LinearChain(2, fixtures.CXGate)
	require.NoError(t, err)
	_, err = dag.NewBuilder(0, ops)
	require.ErrorIs(t, err, dag.ErrInvalidQuditCount)
}

func TestNewBuilderRejectsEmptyOps(t *testing.T) {
	t.Parallel()
	_, err := dag.NewBuilder(2, nil)
	require.ErrorIs(t, err, dag.ErrEmptyOps)
}

func TestNewBuilderRejectsLengthMismatch(t *testing.T) {
	t.Parallel()
	ops := []dag.Op{{
		Node:   tree.NewLeaf(fixtures.CXGate("cx")),
		Qudits: []int{0, 1},
		Next:   []int{-1},
		Prev:   []int{-1, -1},
	}}
	_, err := dag.NewBuilder(2, ops)
	require.ErrorIs(t, err, dag.ErrLengthMismatch)
}

func TestBuildLinearChainCollapsesToOneNode(t *testing.T) {
	t.Parallel()
	ops, err := fixtures.LinearChain(3, fixtures.CXGate)
	require.NoError(t, err)
	b, err := dag.NewBuilder(3, ops)
	require.NoError(t, err)
	root, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 8, root.Dim())
	require.Equal(t, 0, root.NumParams())
}

func TestBuildWrapsUnsortedQuditsInPerm(t *testing.T) {
	t.Parallel()
	ops := []dag.Op{{
		Node:   tree.NewLeaf(fixtures.CXGate("cx")),
		Qudits: []int{1, 0},
		Next:   []int{-1, -1},
		Prev:   []int{-1, -1},
	}}
	b, err := dag.NewBuilder(2, ops)
	require.NoError(t, err)
	root, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, tree.KindPerm, root.Kind())
}

func TestBuildRandomCircuitReachesSingleNode(t *testing.T) {
	t.Parallel()
	ops, err := fixtures.RandomCircuit(4, 6, 42, fixtures.CXGate)
	require.NoError(t, err)
	b, err := dag.NewBuilder(4, ops)
	require.NoError(t, err)
	root, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 16, root.Dim())
}
