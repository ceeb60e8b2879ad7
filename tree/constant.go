package tree

import (
	"fmt"

	"github.com/openqudit/qvm/qudit"
)

// Constant marks a subtree whose parameter count is zero: both the child
// and the Constant wrapper itself report zero parameters. The bytecode
// generator compiles a Constant's child into static code, executed once
// regardless of how many times the surrounding program is evaluated.
type Constant struct {
	Child Node
}

// NewConstant wraps child. Returns an error (not a panic) if child still
// carries parameters, since this is a caller-input mistake rather than an
// internal-invariant violation — the TreeOptimizer only ever wraps
// zero-param subtrees, but a hand-built tree might not.
func NewConstant(child Node) (*Constant, error) {
	if child.NumParams() != 0 {
		return nil, fmt.Errorf("tree: Constant wraps %d-param subtree %s: %w", child.NumParams(), child.String(), ErrNotConstant)
	}

	return &Constant{Child: child}, nil
}

func (c *Constant) Kind() Kind             { return KindConstant }
func (c *Constant) Radices() qudit.Radices { return c.Child.Radices() }
func (c *Constant) Dim() int               { return c.Child.Dim() }
func (c *Constant) NumParams() int         { return 0 }
func (c *Constant) String() string         { return fmt.Sprintf("Constant(%s)", c.Child.String()) }
