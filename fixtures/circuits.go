package fixtures

import (
	"fmt"
	"math/rand"

	"github.com/openqudit/qvm/dag"
	"github.com/openqudit/qvm/kernel"
	"github.com/openqudit/qvm/tree"
)

// noNode marks an Op's missing predecessor/successor on a given qudit leg,
// mirroring dag.Op's own "-1 if this is the first/last operation" contract.
const noNode = -1

// GateFactory builds a fresh, independently-named leaf kernel. Circuit
// generators call it once per gate placement so that distinct placements
// of the "same" gate shape still carry distinct Expression identities
// where that matters, and a shared *kernel.Expression where it doesn't —
// the choice is the factory's, not the generator's.
type GateFactory func(name string) *kernel.Expression

// LinearChain returns the Ops for a staircase circuit on numQudits qudits:
// a fresh two-qudit gate from gate on qudits (0,1), then (1,2), ..., then
// (numQudits-2, numQudits-1). This is the circuit-space analogue of
// builder/impl_path.go's P_n edge emission (i-1)->i, with a two-qudit
// operator standing in for a graph edge. numQudits must be >= 2.
func LinearChain(numQudits int, gate GateFactory) ([]dag.Op, error) {
	if numQudits < 2 {
		return nil, ErrTooFewQudits
	}

	last := make([]int, numQudits)
	for i := range last {
		last[i] = noNode
	}

	ops := make([]dag.Op, 0, numQudits-1)
	for i := 0; i < numQudits-1; i++ {
		left, right := i, i+1
		expr := gate(gateName("chain", i))
		op := dag.Op{
			Node:   tree.NewLeaf(expr),
			Qudits: []int{left, right},
			Next:   []int{noNode, noNode},
			Prev:   []int{last[left], last[right]},
		}
		idx := len(ops)
		ops = append(ops, op)
		linkPrev(ops, last, left, idx)
		linkPrev(ops, last, right, idx)
		last[left], last[right] = idx, idx
	}

	return ops, nil
}

// RandomCircuit returns the Ops for a seeded random circuit on numQudits
// qudits: numGates two-qudit gates, each placed on a uniformly chosen pair
// of distinct qudits drawn from a rand.Rand seeded with seed, grounded on
// builder/impl_random_sparse.go's seeded-rng convention — same seed,
// same circuit, every time, regardless of caller or machine.
func RandomCircuit(numQudits, numGates int, seed int64, gate GateFactory) ([]dag.Op, error) {
	if numQudits < 2 {
		return nil, ErrTooFewQudits
	}
	if numGates < 1 {
		return nil, ErrTooFewGates
	}

	rng := rand.New(rand.NewSource(seed))
	last := make([]int, numQudits)
	for i := range last {
		last[i] = noNode
	}

	ops := make([]dag.Op, 0, numGates)
	for g := 0; g < numGates; g++ {
		a := rng.Intn(numQudits)
		b := rng.Intn(numQudits - 1)
		if b >= a {
			b++
		}
		lo, hi := a, b
		if lo > hi {
			lo, hi = hi, lo
		}

		expr := gate(gateName("random", g))
		op := dag.Op{
			Node:   tree.NewLeaf(expr),
			Qudits: []int{lo, hi},
			Next:   []int{noNode, noNode},
			Prev:   []int{last[lo], last[hi]},
		}
		idx := len(ops)
		ops = append(ops, op)
		linkPrev(ops, last, lo, idx)
		linkPrev(ops, last, hi, idx)
		last[lo], last[hi] = idx, idx
	}

	return ops, nil
}

// linkPrev points the predecessor op touching qudit q (if any) forward at
// idx, on whichever of its legs actually carries q.
func linkPrev(ops []dag.Op, last []int, q, idx int) {
	p := last[q]
	if p == noNode {
		return
	}
	for leg, qq := range ops[p].Qudits {
		if qq == q {
			ops[p].Next[leg] = idx

			return
		}
	}
}

func gateName(prefix string, i int) string {
	return fmt.Sprintf("%s-%d", prefix, i)
}
