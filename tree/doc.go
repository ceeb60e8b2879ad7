// Package tree implements the ExpressionTree: a polymorphic tagged tree
// over seven node kinds (Leaf, Kron, Mul, Perm, Contract, Constant,
// Identity), plus the ContractNode tensor-leg preparation and the
// three-pass TreeOptimizer.
//
// Node is implemented by seven concrete types, one per file
// (leaf.go/kron.go/mul.go/perm.go/contract.go/constant.go/identity.go).
// Nodes are built bottom-up by dag.Builder; Optimize rebuilds parts of a
// tree and rewrites the rest in place (child slots and Contract fields),
// walking it with Traverse.
package tree
