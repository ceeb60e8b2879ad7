package tree

import (
	"fmt"
	"strings"
)

// Dump renders n as a box-drawing tree, one line per node, matching the
// circuit dumpers used throughout the corpus this package was built
// against. It's meant for debugging and test failure messages, not for
// parsing.
func Dump(n Node) string {
	var b strings.Builder
	b.WriteString(nodeLabel(n))
	b.WriteByte('\n')
	writeChildren(&b, n, "")

	return b.String()
}

func writeChildren(b *strings.Builder, n Node, prefix string) {
	children := childrenOf(n)
	for i, child := range children {
		last := i == len(children)-1
		connector, nextPrefix := "╠══ ", prefix+"║   "
		if last {
			connector, nextPrefix = "╚══ ", prefix+"    "
		}
		fmt.Fprintf(b, "%s%s%s\n", prefix, connector, nodeLabel(child))
		writeChildren(b, child, nextPrefix)
	}
}

func nodeLabel(n Node) string {
	switch t := n.(type) {
	case *Leaf:
		return fmt.Sprintf("Leaf[%s]", t.Expr.Name())
	case *Kron:
		return "Kron"
	case *Mul:
		return "Mul"
	case *Perm:
		return fmt.Sprintf("Perm%v", t.Sigma)
	case *Contract:
		return fmt.Sprintf("Contract(%v + %v; skip_left=%t, skip_right=%t)",
			[]int(t.LeftQudits), []int(t.RightQudits), t.SkipLeft, t.SkipRight)
	case *Constant:
		return "Constant"
	case *Identity:
		return fmt.Sprintf("Identity%v", t.radices)
	default:
		return n.String()
	}
}

func childrenOf(n Node) []Node {
	switch t := n.(type) {
	case *Kron:
		return []Node{t.Left, t.Right}
	case *Mul:
		return []Node{t.Left, t.Right}
	case *Perm:
		return []Node{t.Child}
	case *Contract:
		return []Node{t.Left, t.Right}
	case *Constant:
		return []Node{t.Child}
	default:
		return nil
	}
}
