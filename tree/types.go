package tree

import "github.com/openqudit/qvm/qudit"

// Kind discriminates the seven ExpressionTree variants.
type Kind int

const (
	KindLeaf Kind = iota
	KindKron
	KindMul
	KindPerm
	KindContract
	KindConstant
	KindIdentity
)

// String renders a Kind for debug/dump output.
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "Leaf"
	case KindKron:
		return "Kron"
	case KindMul:
		return "Mul"
	case KindPerm:
		return "Perm"
	case KindContract:
		return "Contract"
	case KindConstant:
		return "Constant"
	case KindIdentity:
		return "Identity"
	default:
		return "Unknown"
	}
}

// Node is the common interface every ExpressionTree variant implements.
// Contract caches its radices, dimension and parameter count at
// construction; the other kinds derive some of these on each call (Kron,
// Mul, Perm and Constant sum or forward their children's NumParams, Mul
// and Constant forward Radices, and Dim multiplies out the radices), so an
// accessor call can cost time proportional to the subtree's size.
type Node interface {
	// Kind identifies which of the seven variants this node is.
	Kind() Kind

	// Radices returns this node's qudit radices, in the node's own
	// local (post any internal Perm) qudit order.
	Radices() qudit.Radices

	// Dim returns the Hilbert-space dimension: Radices().Dim().
	Dim() int

	// NumParams returns the total real parameter count of this subtree.
	NumParams() int

	// String renders a one-line S-expression summary (e.g.
	// "Kron(Leaf[P], Leaf[P])"); see fmt.go for the multi-line Dump.
	String() string
}
