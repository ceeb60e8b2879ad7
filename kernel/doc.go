// Package kernel defines the leaf-level building block of the tensor
// network — UnitaryExpression — and the external scalar-kernel ABI: a
// per-operator pair of functions that materialize a leaf's unitary (and,
// optionally, its gradient) from a flat real parameter slice. How those
// functions are generated or specialized for a scalar type is out of
// scope; this package only defines the calling convention and the
// immutable Module that registers them.
package kernel
