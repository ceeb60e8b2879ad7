// Package qudit defines the radix arithmetic shared by every layer of the
// compiler: a qudit system is an ordered sequence of per-position radices,
// and every node in the expression tree (tree.Node) carries one.
//
// A radix is the number of levels of a single qudit (2 for a qubit, 3 for a
// qutrit, ...). The dimension of a composite system is the product of its
// radices. This package has no notion of circuits, trees, or bytecode; it
// is pure arithmetic plus a small set of sentinel errors for radices that
// don't line up (packages tree and kernel define their own
// ErrRadixMismatch).
package qudit
