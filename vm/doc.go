// Package vm is the runtime counterpart to package bytecode: it turns a
// bytecode.Program into a QVM — an arena-backed executor that runs the
// static prelude once, then the dynamic section on every call,
// propagating gradients and Hessians alongside the unitary when the
// configured DiffLevel asks for them.
//
// The arena is a single []complex128 slab that the QVM owns exclusively;
// every instruction operand is a tensorop.View carved out of it with an
// offset and stride computed once at construction time (specialize).
// No arena storage is allocated per evaluation call, but each call still
// makes small allocations: every FRPR instruction prepares its index plan
// when it executes, and the gradient and Hessian view slices are built
// fresh.
package vm
