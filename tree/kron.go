package tree

import (
	"fmt"

	"github.com/openqudit/qvm/qudit"
)

// Kron is the tensor-product node: radices = l.radices ⊕ r.radices, dim =
// l.dim * r.dim, params = l.params + r.params.
type Kron struct {
	Left, Right Node
	radices     qudit.Radices
}

// NewKron builds a Kron node over left (x) right.
func NewKron(left, right Node) *Kron {
	return &Kron{Left: left, Right: right, radices: left.Radices().Concat(right.Radices())}
}

func (k *Kron) Kind() Kind             { return KindKron }
func (k *Kron) Radices() qudit.Radices { return k.radices }
func (k *Kron) Dim() int               { return k.radices.Dim() }
func (k *Kron) NumParams() int         { return k.Left.NumParams() + k.Right.NumParams() }
func (k *Kron) String() string {
	return fmt.Sprintf("Kron(%s, %s)", k.Left.String(), k.Right.String())
}
