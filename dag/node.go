package dag

import "github.com/openqudit/qvm/tree"

// noNode marks an absent neighbor in a dagNode's Next/Prev slice — Go's
// answer to the source representation's Option<usize>.
const noNode = -1

// Op describes one operation of the circuit being compiled: a tree node
// (almost always a tree.Leaf) together with the circuit qudits it acts on
// and, per qudit position, the index into the Op slice passed to
// NewBuilder of the nearest neighboring operation sharing that qudit, or
// -1 if this is the first/last operation on that qudit.
type Op struct {
	Node   tree.Node
	Qudits []int
	Next   []int
	Prev   []int
}

// dagNode is a node in the builder's working DAG: a tree subtree already
// constructed for a set of circuit qudits, plus that subtree's neighbors
// on each of those qudits.
type dagNode struct {
	Node   tree.Node
	Qudits []int
	Next   []int
	Prev   []int
}

func uniqueInts(xs []int) []int {
	seen := make(map[int]bool, len(xs))
	var out []int
	for _, x := range xs {
		if x == noNode || seen[x] {
			continue
		}
		seen[x] = true
		out = append(out, x)
	}

	return out
}

func indexOf(xs []int, v int) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}

	return -1
}

func minMax(xs []int) (min, max int) {
	min, max = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}

	return min, max
}

func isSubsetOf(small, big []int) bool {
	set := make(map[int]bool, len(big))
	for _, v := range big {
		set[v] = true
	}
	for _, v := range small {
		if !set[v] {
			return false
		}
	}

	return true
}

func allLess(xs []int, bound int) bool {
	for _, x := range xs {
		if x >= bound {
			return false
		}
	}

	return true
}

func allGreater(xs []int, bound int) bool {
	for _, x := range xs {
		if x <= bound {
			return false
		}
	}

	return true
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
