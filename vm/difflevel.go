package vm

// DiffLevel selects how many derivative slabs the QVM's arena reserves
// and how much work each instruction does. It is a required positional
// argument to New, not a functional option, because it changes the
// arena's physical layout rather than a secondary policy.
type DiffLevel int

const (
	// None materializes only the unitary.
	None DiffLevel = iota
	// Gradient additionally materializes the Jacobian w.r.t. every real
	// parameter.
	Gradient
	// Hessian additionally materializes the (symmetric, upper-triangle
	// packed) second derivative w.r.t. every pair of real parameters.
	Hessian
)

func (d DiffLevel) String() string {
	switch d {
	case None:
		return "None"
	case Gradient:
		return "Gradient"
	case Hessian:
		return "Hessian"
	default:
		return "Unknown"
	}
}

// hessianSlots returns the number of packed upper-triangular Hessian
// matrices a buffer with numParams parameters needs.
func hessianSlots(numParams int) int {
	return numParams * (numParams + 1) / 2
}

// hessianIndex returns the packed index of Hessian slot (i, j), i <= j,
// among numParams parameters: i*numParams - i*(i-1)/2 + (j-i).
func hessianIndex(i, j, numParams int) int {
	if i > j {
		i, j = j, i
	}

	return i*numParams - i*(i-1)/2 + (j - i)
}
