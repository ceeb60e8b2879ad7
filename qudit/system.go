package qudit

import "fmt"

// Radices is an ordered list of per-qudit level counts. A Radices value of
// length n describes an n-qudit system; its Dim is the product of entries.
type Radices []int

// NewRadices validates r and returns a defensive copy.
// Stage 1 (Validate): non-empty, every entry >= 2.
// Stage 2 (Finalize): copy so the caller's backing array can't mutate us.
// Complexity: O(n).
func NewRadices(r []int) (Radices, error) {
	if len(r) == 0 {
		return nil, ErrEmptyRadices
	}
	for _, v := range r {
		if v < 2 {
			return nil, fmt.Errorf("qudit: radix %d: %w", v, ErrInvalidRadix)
		}
	}
	out := make(Radices, len(r))
	copy(out, r)

	return out, nil
}

// MustRadices is NewRadices but panics on error; intended for tests and
// fixtures where the radices are literal constants, never user input.
func MustRadices(r []int) Radices {
	rr, err := NewRadices(r)
	if err != nil {
		panic(err)
	}

	return rr
}

// Dim returns the Hilbert-space dimension of the system: the product of
// all radices. Complexity: O(n).
func (r Radices) Dim() int {
	d := 1
	for _, v := range r {
		d *= v
	}

	return d
}

// Len returns the number of qudits. Complexity: O(1).
func (r Radices) Len() int {
	return len(r)
}

// Equal reports whether r and o have identical length and entries in the
// same order. Complexity: O(n).
func (r Radices) Equal(o Radices) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if r[i] != o[i] {
			return false
		}
	}

	return true
}

// Concat returns a new Radices that is r followed by o (used by Kron:
// result.radices = l.radices ⊕ r.radices). Complexity: O(n+m).
func (r Radices) Concat(o Radices) Radices {
	out := make(Radices, 0, len(r)+len(o))
	out = append(out, r...)
	out = append(out, o...)

	return out
}

// Clone returns a defensive copy. Complexity: O(n).
func (r Radices) Clone() Radices {
	out := make(Radices, len(r))
	copy(out, r)

	return out
}

// Permute returns a new Radices with entries reordered according to perm,
// where perm[i] is the source index of output position i (the same
// convention tree.Perm uses for sigma). len(perm) must equal len(r).
// Complexity: O(n).
func (r Radices) Permute(perm []int) (Radices, error) {
	if len(perm) != len(r) {
		return nil, fmt.Errorf("qudit: permutation length %d != radices length %d: %w", len(perm), len(r), ErrRadixMismatch)
	}
	out := make(Radices, len(r))
	seen := make([]bool, len(r))
	for i, p := range perm {
		if p < 0 || p >= len(r) {
			return nil, fmt.Errorf("qudit: permutation index %d: %w", p, ErrQuditIndexOutOfRange)
		}
		if seen[p] {
			return nil, fmt.Errorf("qudit: permutation repeats index %d: %w", p, ErrDuplicateQudit)
		}
		seen[p] = true
		out[i] = r[p]
	}

	return out, nil
}

// String renders radices as e.g. "[2 2 3]" for debug output.
func (r Radices) String() string {
	return fmt.Sprint([]int(r))
}
