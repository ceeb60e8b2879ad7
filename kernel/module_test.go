package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openqudit/qvm/kernel"
	"github.com/openqudit/qvm/qudit"
	"github.com/openqudit/qvm/tensorop"
)

func noopExpr(t *testing.T, name string) *kernel.Expression {
	t.Helper()
	e, err := kernel.NewExpression(name, qudit.MustRadices([]int{2}), 0, func(_ []float64, out tensorop.View) { out.Zero() }, nil)
	require.NoError(t, err)

	return e
}

func TestNewModuleLooksUpByName(t *testing.T) {
	t.Parallel()
	a, b := noopExpr(t, "a"), noopExpr(t, "b")
	m, err := kernel.NewModule(a, b)
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())

	got, err := m.Lookup("a")
	require.NoError(t, err)
	require.True(t, got.Equal(a))
}

func TestNewModuleRejectsDistinctExpressionsWithSameName(t *testing.T) {
	t.Parallel()
	a, aAgain := noopExpr(t, "dup"), noopExpr(t, "dup")
	_, err := kernel.NewModule(a, aAgain)
	require.ErrorIs(t, err, kernel.ErrNameCollision)
}

func TestNewModuleAllowsIdempotentReregistration(t *testing.T) {
	t.Parallel()
	a := noopExpr(t, "a")
	m, err := kernel.NewModule(a, a, a)
	require.NoError(t, err)
	require.Equal(t, 1, m.Len())
}

func TestModuleLookupUnknownName(t *testing.T) {
	t.Parallel()
	m, err := kernel.NewModule()
	require.NoError(t, err)
	_, err = m.Lookup("missing")
	require.ErrorIs(t, err, kernel.ErrUnknownExpression)
}
