package tree

import (
	"fmt"

	"github.com/openqudit/qvm/kernel"
	"github.com/openqudit/qvm/qudit"
)

// Leaf wraps an opaque kernel.Expression as a tree node. Its radices, dim
// and param count are exactly the underlying expression's.
type Leaf struct {
	Expr *kernel.Expression
}

// NewLeaf constructs a Leaf node over expr.
func NewLeaf(expr *kernel.Expression) *Leaf {
	return &Leaf{Expr: expr}
}

func (l *Leaf) Kind() Kind            { return KindLeaf }
func (l *Leaf) Radices() qudit.Radices { return l.Expr.Radices() }
func (l *Leaf) Dim() int              { return l.Expr.Dim() }
func (l *Leaf) NumParams() int        { return l.Expr.NumParams() }
func (l *Leaf) String() string        { return fmt.Sprintf("Leaf[%s]", l.Expr.Name()) }
