package tree

import (
	"fmt"

	"github.com/openqudit/qvm/qudit"
)

// Perm applies a qudit permutation sigma to child: result.radices =
// sigma(child.radices), meaning output position i holds child's qudit
// sigma[i]. Params are unchanged (Perm carries no parameters of its own).
type Perm struct {
	Child   Node
	Sigma   []int
	radices qudit.Radices
}

// NewPerm builds a Perm node. sigma must be a permutation of
// [0, child.Radices().Len()).
func NewPerm(child Node, sigma []int) (*Perm, error) {
	radices, err := child.Radices().Permute(sigma)
	if err != nil {
		return nil, fmt.Errorf("tree: Perm: %w", err)
	}

	return &Perm{Child: child, Sigma: append([]int(nil), sigma...), radices: radices}, nil
}

func (p *Perm) Kind() Kind             { return KindPerm }
func (p *Perm) Radices() qudit.Radices { return p.radices }
func (p *Perm) Dim() int               { return p.radices.Dim() }
func (p *Perm) NumParams() int         { return p.Child.NumParams() }
func (p *Perm) String() string {
	return fmt.Sprintf("Perm(%s, %v)", p.Child.String(), p.Sigma)
}

// IsIdentity reports whether Sigma is the identity permutation — the
// tree-level counterpart of the test the generator's RemoveIdentityFRPR
// post-pass applies to the lowered FRPR. The optimizer does not call it.
func (p *Perm) IsIdentity() bool {
	for i, s := range p.Sigma {
		if s != i {
			return false
		}
	}

	return true
}
