package tree

// Optimizer rewrites a freshly built expression tree into an equivalent
// one that compiles to fewer, cheaper bytecode instructions. It runs three
// passes in sequence: fusing adjacent leaves under Kron/Mul into single
// combined leaves, fusing a Contract's pre-contraction permutation into a
// child Contract's final reshape where possible, and wrapping every
// zero-parameter subtree in a Constant marker.
type Optimizer struct{}

// NewOptimizer returns a ready-to-use Optimizer. It holds no state between
// calls.
func NewOptimizer() *Optimizer { return &Optimizer{} }

// Optimize runs all three passes over root and returns the rewritten tree.
func (o *Optimizer) Optimize(root Node) (Node, error) {
	root = o.fuseCommonOperations(root)
	o.fuseContractionPermutations(root)
	if err := o.constantPropagation(&root); err != nil {
		return nil, err
	}

	return root, nil
}

// fuseCommonOperations rebuilds the tree bottom-up, collapsing a Kron or
// Mul whose two (already-processed) children are both Leaf nodes into a
// single fused Leaf. Because children are rewritten first, nested Krons
// and Muls of leaves collapse all the way up; it is not a complete fusion
// algorithm — a child that is still a Perm, Contract or other non-Leaf
// after its own rewrite blocks fusion at its parent — but it is cheap and
// catches the common case.
func (o *Optimizer) fuseCommonOperations(n Node) Node {
	switch t := n.(type) {
	case *Kron:
		left := o.fuseCommonOperations(t.Left)
		right := o.fuseCommonOperations(t.Right)
		if lf, ok := left.(*Leaf); ok {
			if rf, ok := right.(*Leaf); ok {
				if fused, err := lf.Expr.Kron(rf.Expr); err == nil {
					return NewLeaf(fused)
				}
			}
		}

		return NewKron(left, right)
	case *Mul:
		left := o.fuseCommonOperations(t.Left)
		right := o.fuseCommonOperations(t.Right)
		if lf, ok := left.(*Leaf); ok {
			if rf, ok := right.(*Leaf); ok {
				if fused, err := lf.Expr.Mul(rf.Expr); err == nil {
					return NewLeaf(fused)
				}
			}
		}
		// left and right were this Mul's own children, so their radices
		// already agreed; reconstruction cannot fail.
		m, _ := NewMul(left, right)

		return m
	case *Perm:
		child := o.fuseCommonOperations(t.Child)
		p, _ := NewPerm(child, t.Sigma)

		return p
	case *Contract:
		left := o.fuseCommonOperations(t.Left)
		right := o.fuseCommonOperations(t.Right)
		c, _ := NewContract(left, right, t.LeftQudits, t.RightQudits)

		return c
	default:
		return n
	}
}

// fuseContractionPermutations finds every Contract node and, where a child
// is itself a Contract, folds this node's pre-contraction permutation for
// that side into the child's own final reshape — letting the child write
// its result directly in the shape this node needs, skipping a redundant
// FRPR at bytecode generation time.
func (o *Optimizer) fuseContractionPermutations(root Node) {
	Traverse(root, func(n Node) {
		c, ok := n.(*Contract)
		if !ok {
			return
		}
		if lc, ok := c.Left.(*Contract); ok {
			lc.FuseOutputPerm(c.LeftPerm, c.LeftContractionShape)
			c.SkipLeftPermutation()
		}
		if rc, ok := c.Right.(*Contract); ok {
			rc.FuseOutputPerm(c.RightPerm, c.RightContractionShape)
			c.SkipRightPermutation()
		}
	})
}

// constantPropagation wraps every maximal zero-parameter subtree in a
// Constant marker, replacing it in its parent's child slot. It recurses
// into a subtree's children only when the subtree itself still carries
// parameters — once a node is wrapped, its children are never visited,
// since they're already folded into the same static computation.
func (o *Optimizer) constantPropagation(n *Node) error {
	if (*n).NumParams() == 0 {
		c, err := NewConstant(*n)
		if err != nil {
			return err
		}
		*n = c

		return nil
	}

	switch t := (*n).(type) {
	case *Kron:
		if err := o.constantPropagation(&t.Left); err != nil {
			return err
		}
		return o.constantPropagation(&t.Right)
	case *Mul:
		if err := o.constantPropagation(&t.Left); err != nil {
			return err
		}
		return o.constantPropagation(&t.Right)
	case *Perm:
		return o.constantPropagation(&t.Child)
	case *Contract:
		if err := o.constantPropagation(&t.Left); err != nil {
			return err
		}
		return o.constantPropagation(&t.Right)
	}

	return nil
}
