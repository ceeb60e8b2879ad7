package tree

// Traverse visits every node in the subtree rooted at n, calling visit on
// n itself before descending into its children (pre-order). The
// TreeOptimizer's permutation-fusion pass relies on this order: it
// inspects a Contract node's children before the children themselves have
// been visited.
func Traverse(n Node, visit func(Node)) {
	visit(n)
	switch t := n.(type) {
	case *Kron:
		Traverse(t.Left, visit)
		Traverse(t.Right, visit)
	case *Mul:
		Traverse(t.Left, visit)
		Traverse(t.Right, visit)
	case *Perm:
		Traverse(t.Child, visit)
	case *Contract:
		Traverse(t.Left, visit)
		Traverse(t.Right, visit)
	case *Constant:
		Traverse(t.Child, visit)
	case *Leaf, *Identity:
		// leaves of the traversal
	}
}
