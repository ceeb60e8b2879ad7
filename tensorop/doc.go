// Package tensorop implements the two primitives the rest of this module
// treats as external black-box collaborators: dense complex matrix
// multiplication and the fused reshape-permute-reshape (FRPR) tensor-leg
// permutation. Every other package in this module treats these as opaque
// subroutines with a fixed calling contract; this package is where that
// contract is actually discharged.
//
// View is the shared strided-matrix type every other package (kernel,
// bytecode, vm) passes across its own API boundaries: a column-major
// window into a caller-owned complex128 slice, addressed by an offset and
// a column stride rather than by copying — a non-owning, column-major,
// complex128 view over the shape arena-backed buffers require.
package tensorop
