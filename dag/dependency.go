package dag

// hasNonDirectDependency reports whether there is a path from leftIdx to
// rightIdx in the DAG that passes through some other node — i.e. whether
// fusing leftIdx and rightIdx directly would skip over an operation that
// has to happen between them. The direct edge leftIdx -> rightIdx itself
// doesn't count; only a longer path does.
func (b *Builder) hasNonDirectDependency(leftIdx, rightIdx int) bool {
	rightProjection := b.projectToRight(rightIdx)
	visited := make(map[int]bool)
	stack := []int{leftIdx}

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if idx == rightIdx {
			return true
		}
		if rightProjection[idx] {
			// Past rightIdx already; no need to keep following this path.
			continue
		}
		if visited[idx] {
			continue
		}
		visited[idx] = true

		node, ok := b.nodes[idx]
		if !ok {
			continue
		}
		for _, next := range node.Next {
			if next == noNode {
				continue
			}
			if idx == leftIdx && next == rightIdx {
				// The direct edge doesn't count as a non-direct dependency.
				continue
			}
			stack = append(stack, next)
		}
	}

	return false
}

// projectToRight returns the set of nodes first seen, by breadth-first
// search forward from nodeIdx, that touch a qudit not touched by any node
// seen earlier in the search — the nearest node on each qudit past
// nodeIdx. Once every qudit has been accounted for, the search stops.
func (b *Builder) projectToRight(nodeIdx int) map[int]bool {
	rightProjection := make(map[int]bool)
	seenQudits := make(map[int]bool)
	visited := make(map[int]bool)
	queue := []int{nodeIdx}

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		if visited[idx] {
			continue
		}
		visited[idx] = true

		node, ok := b.nodes[idx]
		if !ok {
			continue
		}
		if idx != nodeIdx {
			for _, q := range node.Qudits {
				if seenQudits[q] {
					continue
				}
				for _, qq := range node.Qudits {
					seenQudits[qq] = true
				}
				rightProjection[idx] = true
				if len(seenQudits) == b.numQudits {
					return rightProjection
				}
				break
			}
		}

		for _, next := range node.Next {
			if next != noNode {
				queue = append(queue, next)
			}
		}
	}

	return rightProjection
}
