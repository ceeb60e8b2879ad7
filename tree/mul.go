package tree

import (
	"fmt"

	"github.com/openqudit/qvm/qudit"
)

// Mul is sequential composition on the same qudit set: l.radices must
// equal r.radices. Left is the predecessor that acts first; matrix-wise
// the composed unitary is right . left, which is why bytecode.Generate
// emits Matmul(right, left, dst) for a Mul node — the operand order is
// swapped relative to tree order on purpose.
type Mul struct {
	Left, Right Node
}

// NewMul builds a Mul node. Returns ErrRadixMismatch if left and right
// don't act on the same qudit system.
func NewMul(left, right Node) (*Mul, error) {
	if !left.Radices().Equal(right.Radices()) {
		return nil, fmt.Errorf("tree: Mul(%s, %s): %w", left.String(), right.String(), ErrRadixMismatch)
	}

	return &Mul{Left: left, Right: right}, nil
}

func (m *Mul) Kind() Kind             { return KindMul }
func (m *Mul) Radices() qudit.Radices { return m.Left.Radices() }
func (m *Mul) Dim() int               { return m.Left.Dim() }
func (m *Mul) NumParams() int         { return m.Left.NumParams() + m.Right.NumParams() }
func (m *Mul) String() string {
	return fmt.Sprintf("Mul(%s, %s)", m.Left.String(), m.Right.String())
}
