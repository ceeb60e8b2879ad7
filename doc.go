// Package qvm compiles a tensor network of parameterized unitary
// operators over qudits into linear bytecode and runs it on a small
// virtual machine to get a composite unitary, its Jacobian, and its
// Hessian.
//
// 🚀 What is qvm?
//
//	A small, dependency-light pipeline that turns a circuit description —
//	a set of local operators placed on specific qudits, with links
//	recording which operator feeds which — into:
//
//	  • An ExpressionTree: Kron/Mul/Perm/Contract/Constant composition
//	    (package tree), assembled by package dag from a circuit's op list
//	  • A compiled bytecode.Program: two instruction streams (static,
//	    dynamic) over a set of typed matrix buffers (package bytecode)
//	  • A vm.QVM: an arena-backed executor that runs the program and, at
//	    the caller's chosen DiffLevel, propagates gradients and Hessians
//	    alongside the unitary (package vm)
//
// ✨ Why this shape?
//
//   - Leaves are opaque — package kernel's Expression hides a gate's
//     matrix behind a name, a radix system, and a parameter count, so
//     the rest of the pipeline never special-cases a gate family
//   - Constant subtrees run once — a parameter-free island of the
//     circuit compiles to static code the QVM evaluates exactly once,
//     however many times the surrounding program runs
//   - Derivatives ride along, not bolted on — Matmul/Kron/FRPR
//     propagate gradient and Hessian slabs through the same arena as the
//     unitary, keyed off each buffer's own parameter range rather than
//     instruction operand order
//
// Under the hood, everything is organized under eight subpackages:
//
//	qudit/     — radices, qudit labels, and the set algebra over them
//	kernel/    — the opaque leaf Expression ABI (write / write-and-gradient)
//	tree/      — the seven-variant ExpressionTree and its optimizer
//	dag/       — assembles a circuit's op list into a single ExpressionTree
//	tensorop/  — the dense View/Matmul/Kron/FRPR primitives bytecode runs
//	bytecode/  — lowers a tree into a linear Program over typed buffers
//	vm/        — specializes a Program into an arena and executes it
//	fixtures/  — deterministic toy kernels and circuit shapes for tests
//
// Quick example, two one-qubit phase gates on the same qudit:
//
//	   q0 ──[P(θ0)]──[P(θ1)]──
//
//	compiles to two Write instructions and one Matmul.
package qvm
