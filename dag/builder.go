package dag

import (
	"sort"

	"github.com/openqudit/qvm/qudit"
	"github.com/openqudit/qvm/tree"
)

// Builder assembles a circuit's operations into a single expression tree
// by repeatedly multiplying, tensoring, and contracting adjacent
// operations until one node spans every qudit.
type Builder struct {
	numQudits int
	nodes     map[int]*dagNode
	nextIndex int
}

// NewBuilder validates ops and seeds the initial DAG: one node per op,
// wrapped in a Perm if its qudit list isn't already sorted ascending (an
// operation's own qudit list is local — e.g. a CX gate's [control, target]
// — and needn't arrive already in circuit order).
func NewBuilder(numQudits int, ops []Op) (*Builder, error) {
	if numQudits <= 0 {
		return nil, ErrInvalidQuditCount
	}
	if len(ops) == 0 {
		return nil, ErrEmptyOps
	}

	nodes := make(map[int]*dagNode, len(ops))
	for i, op := range ops {
		if len(op.Qudits) != len(op.Next) || len(op.Qudits) != len(op.Prev) {
			return nil, ErrLengthMismatch
		}

		n := op.Node
		qudits := append([]int(nil), op.Qudits...)
		if !qudit.Labels(qudits).IsSorted() {
			sigma, sorted := qudit.Labels(qudits).SortPermutation()
			perm, err := tree.NewPerm(n, sigma)
			if err != nil {
				return nil, err
			}
			n = perm
			qudits = []int(sorted)
		}

		nodes[i] = &dagNode{
			Node:   n,
			Qudits: qudits,
			Next:   append([]int(nil), op.Next...),
			Prev:   append([]int(nil), op.Prev...),
		}
	}

	return &Builder{numQudits: numQudits, nodes: nodes, nextIndex: len(ops)}, nil
}

func (b *Builder) orderedIndices() []int {
	idxs := make([]int, 0, len(b.nodes))
	for i := range b.nodes {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)

	return idxs
}

func (b *Builder) newIndex() int {
	idx := b.nextIndex
	b.nextIndex++

	return idx
}

// rewireNeighbors points every neighbor of old (on either side, for every
// qudit it touched) at newID instead, skipping any neighbor that was
// itself one of the nodes being replaced this round.
func (b *Builder) rewireNeighbors(old *dagNode, newID int, skip map[int]bool) {
	for locIdx, next := range old.Next {
		if next == noNode || skip[next] {
			continue
		}
		quditIdx := old.Qudits[locIdx]
		nextLoc := indexOf(b.nodes[next].Qudits, quditIdx)
		b.nodes[next].Prev[nextLoc] = newID
	}
	for locIdx, prev := range old.Prev {
		if prev == noNode || skip[prev] {
			continue
		}
		quditIdx := old.Qudits[locIdx]
		prevLoc := indexOf(b.nodes[prev].Qudits, quditIdx)
		b.nodes[prev].Next[prevLoc] = newID
	}
}

// Build runs the full fixpoint schedule: multiply everything trivially
// combinable, then for increasing disjointness budgets alternate
// tensoring nearby disjoint operations (to set up further multiplies) with
// contracting partially-overlapping operations, and finally tensor
// together whatever fully independent subsystems remain.
func (b *Builder) Build() (tree.Node, error) {
	b.multiplyAllPossible()

	for disjoint := 1; disjoint <= b.numQudits; disjoint++ {
		if b.pairwiseKronTowardsMultiply(disjoint) {
			b.multiplyAllPossible()
		}
		if err := b.contractAll(disjoint); err != nil {
			return nil, err
		}
		b.multiplyAllPossible()
	}

	if len(b.nodes) != 1 {
		if err := b.kronAllCompletelyDisjoint(); err != nil {
			return nil, err
		}
	}
	if len(b.nodes) != 1 {
		return nil, ErrBuildIncomplete
	}
	for _, n := range b.nodes {
		return n.Node, nil
	}

	panic("dag: unreachable")
}

func (b *Builder) multiplyAllPossible() {
	for {
		n := len(b.nodes)
		b.multiplyAllPossibleSingleStep()
		if len(b.nodes) == n {
			return
		}
	}
}

type idxPair struct{ left, right int }

// multiplyAllPossibleSingleStep finds every node with exactly one
// predecessor acting on the exact same qudits and fuses each such pair
// into a Mul, one pass. Checking only predecessors suffices: a node can
// multiply with its previous node iff that previous node can multiply with
// this one as its next.
func (b *Builder) multiplyAllPossibleSingleStep() {
	var mulPairs []idxPair
	already := make(map[int]bool)

	for _, idx := range b.orderedIndices() {
		if already[idx] {
			continue
		}
		node := b.nodes[idx]
		prevs := uniqueInts(node.Prev)
		if len(prevs) != 1 {
			continue
		}
		prev := prevs[0]
		if already[prev] {
			continue
		}
		if intSliceEqual(node.Qudits, b.nodes[prev].Qudits) {
			already[idx], already[prev] = true, true
			mulPairs = append(mulPairs, idxPair{prev, idx})
		}
	}

	for _, p := range mulPairs {
		left, right := b.nodes[p.left], b.nodes[p.right]
		skip := map[int]bool{p.left: true, p.right: true}
		delete(b.nodes, p.left)
		delete(b.nodes, p.right)
		newID := b.newIndex()

		b.rewireNeighbors(left, newID, skip)
		b.rewireNeighbors(right, newID, skip)

		// left and right act on identical qudit sets by construction, so
		// this can never hit ErrRadixMismatch.
		m, err := tree.NewMul(left.Node, right.Node)
		if err != nil {
			panic(err)
		}
		b.nodes[newID] = &dagNode{Node: m, Qudits: left.Qudits, Next: right.Next, Prev: left.Prev}
	}
}

// pairwiseKronTowardsMultiply looks, for each node of size at most
// maxSize, for a sibling — reachable through its unique predecessor's
// other successors, or symmetrically through its unique successor's other
// predecessors — that sits entirely on one side of this node's qudit range
// and would therefore become eligible to multiply with it once tensored
// together. It reports whether it found and applied any such pair.
func (b *Builder) pairwiseKronTowardsMultiply(maxSize int) bool {
	var kronPairs []idxPair
	already := make(map[int]bool)

	for _, idx := range b.orderedIndices() {
		node, ok := b.nodes[idx]
		if !ok || already[idx] || len(node.Qudits) > maxSize {
			continue
		}

		minLoc, maxLoc := minMax(node.Qudits)
		partner, found := b.findKronPartner(idx, node, true, minLoc, maxLoc, already)
		if !found {
			partner, found = b.findKronPartner(idx, node, false, minLoc, maxLoc, already)
		}
		if !found {
			continue
		}

		already[idx], already[partner] = true, true
		if b.nodes[partner].Qudits[0] < minLoc {
			kronPairs = append(kronPairs, idxPair{partner, idx})
		} else {
			kronPairs = append(kronPairs, idxPair{idx, partner})
		}
	}

	// Left and right here are tensor ordering: left always carries the
	// smaller qudit indices.
	for _, p := range kronPairs {
		left, right := b.nodes[p.left], b.nodes[p.right]
		delete(b.nodes, p.left)
		delete(b.nodes, p.right)
		newID := b.newIndex()

		b.rewireNeighbors(left, newID, nil)
		b.rewireNeighbors(right, newID, nil)

		b.nodes[newID] = &dagNode{
			Node:   tree.NewKron(left.Node, right.Node),
			Qudits: append(append([]int(nil), left.Qudits...), right.Qudits...),
			Next:   append(append([]int(nil), left.Next...), right.Next...),
			Prev:   append(append([]int(nil), left.Prev...), right.Prev...),
		}
	}

	return len(kronPairs) > 0
}

func (b *Builder) findKronPartner(idx int, node *dagNode, viaPrev bool, minLoc, maxLoc int, already map[int]bool) (int, bool) {
	var anchorIdx []int
	if viaPrev {
		anchorIdx = uniqueInts(node.Prev)
	} else {
		anchorIdx = uniqueInts(node.Next)
	}
	if len(anchorIdx) != 1 {
		return 0, false
	}
	anchor := b.nodes[anchorIdx[0]]
	remaining := qudit.Difference(anchor.Qudits, node.Qudits)

	var candidates []int
	if viaPrev {
		candidates = uniqueInts(anchor.Next)
	} else {
		candidates = uniqueInts(anchor.Prev)
	}

	bestIdx, bestSize := -1, -1
	for _, cand := range candidates {
		if already[cand] {
			continue
		}
		candNode, ok := b.nodes[cand]
		if !ok || !isSubsetOf(candNode.Qudits, remaining) {
			continue
		}
		if b.hasNonDirectDependency(idx, cand) || b.hasNonDirectDependency(cand, idx) {
			continue
		}
		if !allLess(candNode.Qudits, minLoc) && !allGreater(candNode.Qudits, maxLoc) {
			continue
		}
		if len(candNode.Qudits) > bestSize {
			bestSize = len(candNode.Qudits)
			bestIdx = cand
		}
	}
	if bestIdx < 0 {
		return 0, false
	}

	return bestIdx, true
}

// kronAllCompletelyDisjoint handles what's left once the qudit-by-qudit
// fixpoint above stalls with more than one node: fully independent
// subsystems that share no qudit at all. It repeatedly tensors any two
// such nodes together until one remains.
func (b *Builder) kronAllCompletelyDisjoint() error {
	for len(b.nodes) > 1 {
		idxs := b.orderedIndices()
		leftIdx, rightIdx := -1, -1
	search:
		for i := 0; i < len(idxs); i++ {
			for j := i + 1; j < len(idxs); j++ {
				if len(qudit.Intersect(b.nodes[idxs[i]].Qudits, b.nodes[idxs[j]].Qudits)) == 0 {
					leftIdx, rightIdx = idxs[i], idxs[j]
					break search
				}
			}
		}
		if rightIdx < 0 {
			return ErrBuildIncomplete
		}

		left, right := b.nodes[leftIdx], b.nodes[rightIdx]
		if right.Qudits[0] < left.Qudits[0] {
			left, right = right, left
		}
		delete(b.nodes, leftIdx)
		delete(b.nodes, rightIdx)
		newID := b.newIndex()

		b.rewireNeighbors(left, newID, nil)
		b.rewireNeighbors(right, newID, nil)

		b.nodes[newID] = &dagNode{
			Node:   tree.NewKron(left.Node, right.Node),
			Qudits: append(append([]int(nil), left.Qudits...), right.Qudits...),
			Next:   append(append([]int(nil), left.Next...), right.Next...),
			Prev:   append(append([]int(nil), left.Prev...), right.Prev...),
		}
	}

	return nil
}

// contractAll fuses every pair of adjacent nodes whose qudit sets overlap
// but differ by at most maxDisjoint qudits, smallest joint system first,
// until no more such pairs remain.
func (b *Builder) contractAll(maxDisjoint int) error {
	for {
		n := len(b.nodes)
		if err := b.contractAllSingleStep(maxDisjoint); err != nil {
			return err
		}
		if len(b.nodes) == n {
			return nil
		}
	}
}

type contractCandidate struct {
	unionSize   int
	left, right int
}

func (b *Builder) contractAllSingleStep(maxDisjoint int) error {
	var candidates []contractCandidate
	for _, idx := range b.orderedIndices() {
		node := b.nodes[idx]
		for _, prev := range uniqueInts(node.Prev) {
			prevNode, ok := b.nodes[prev]
			if !ok {
				continue
			}
			union := qudit.Union(node.Qudits, prevNode.Qudits)
			intersect := qudit.Intersect(node.Qudits, prevNode.Qudits)
			disjoint := qudit.Difference(union, intersect)
			if len(disjoint) > maxDisjoint {
				continue
			}
			if b.hasNonDirectDependency(prev, idx) {
				continue
			}
			candidates = append(candidates, contractCandidate{len(union), prev, idx})
		}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].unionSize < candidates[j].unionSize })

	already := make(map[int]bool)
	var pairs []idxPair
	for _, c := range candidates {
		if already[c.left] || already[c.right] {
			continue
		}
		already[c.left], already[c.right] = true, true
		pairs = append(pairs, idxPair{c.left, c.right})
	}

	for _, p := range pairs {
		left, right := b.nodes[p.left], b.nodes[p.right]
		skip := map[int]bool{p.left: true, p.right: true}
		delete(b.nodes, p.left)
		delete(b.nodes, p.right)
		newID := b.newIndex()

		b.rewireNeighbors(left, newID, skip)
		b.rewireNeighbors(right, newID, skip)

		newQudits := qudit.Union(left.Qudits, right.Qudits)
		newPrev := make([]int, len(newQudits))
		newNext := make([]int, len(newQudits))
		for i, q := range newQudits {
			prev, next := noNode, noNode
			leftLoc, rightLoc := indexOf(left.Qudits, q), indexOf(right.Qudits, q)
			if leftLoc >= 0 {
				prev = left.Prev[leftLoc]
				if rightLoc < 0 {
					next = left.Next[leftLoc]
				}
			}
			if rightLoc >= 0 {
				if leftLoc < 0 {
					prev = right.Prev[rightLoc]
				}
				next = right.Next[rightLoc]
			}
			newPrev[i], newNext[i] = prev, next
		}

		contracted, err := tree.NewContract(left.Node, right.Node, left.Qudits, right.Qudits)
		if err != nil {
			return err
		}
		b.nodes[newID] = &dagNode{Node: contracted, Qudits: newQudits, Next: newNext, Prev: newPrev}
	}

	return nil
}
