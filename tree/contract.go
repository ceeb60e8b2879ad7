package tree

import (
	"fmt"

	"github.com/openqudit/qvm/qudit"
)

// label encodes a (qudit, side) pair as a single int for the pre_out_perm
// bookkeeping below: side 0 means "row leg" (the node's output index),
// side 1 means "column leg" (the node's input index). Two tensor legs
// belong to the same circuit qudit iff they decode to the same qudit with
// different sides never collide because they're tracked separately.
type label int

func makeLabel(qudit, side int) label { return label(qudit*2 + side) }
func (l label) qudit() int            { return int(l) / 2 }

// Contract composes two nodes that share at least one circuit qudit,
// preparing the index algebra that lets the bytecode generator lower the
// composition to a short FRPR/Matmul/FRPR sequence (up to two
// pre-contraction FRPRs, one Matmul, one final FRPR) instead of a dense
// operator multiply over the full joint space. Left and Right may
// act on overlapping but non-identical qudit sets; LeftQudits and
// RightQudits record which circuit qudit each tensor leg belongs to.
type Contract struct {
	Left, Right             Node
	LeftQudits, RightQudits qudit.Labels

	leftParams, rightParams int
	dimension               int

	// LeftTensorShape/RightTensorShape list each operand's full leg sizes
	// (output legs followed by input legs, radix order unchanged) as seen
	// before LeftPerm/RightPerm are applied.
	LeftTensorShape  []int
	LeftPerm         []int
	LeftContractionShape [2]int

	RightTensorShape  []int
	RightPerm         []int
	RightContractionShape [2]int

	// PreOutTensorShape/PreOutPerm describe the FRPR that turns the raw
	// Matmul result into the canonical (all_qudits row legs, all_qudits
	// column legs) layout recorded in OutMatrixShape, or, after
	// FuseOutputPerm, into the layout a parent Contract contracts over.
	PreOutTensorShape []int
	PreOutPerm        []int
	OutMatrixShape    [2]int

	// SkipLeft/SkipRight are set by the tree optimizer's permutation-fusion
	// pass once this node's LeftPerm/RightPerm has been fused into the
	// corresponding child Contract's PreOutPerm, making the matching
	// pre-contraction FRPR redundant.
	SkipLeft, SkipRight bool

	// NumContracting is |Lq ∩ Rq|, the number of shared qudits. The
	// bytecode generator needs this to split each pre-contraction FRPR's
	// permuted legs into its row/column group: the contracting legs
	// become the row group of LeftContractionShape and the tail of the
	// column group of RightContractionShape.
	NumContracting int

	radices qudit.Radices
}

// NewContract builds a Contract node. leftQudits and rightQudits give the
// circuit-space qudit index each of left's and right's tensor legs binds
// to, in operand-local order; they must overlap in at least one qudit,
// and any shared qudit must carry the same radix in both operands.
func NewContract(left, right Node, leftQudits, rightQudits []int) (*Contract, error) {
	leftRadices, rightRadices := left.Radices(), right.Radices()
	if len(leftQudits) != leftRadices.Len() {
		return nil, fmt.Errorf("tree: Contract: left: %w", ErrLabelCountMismatch)
	}
	if len(rightQudits) != rightRadices.Len() {
		return nil, fmt.Errorf("tree: Contract: right: %w", ErrLabelCountMismatch)
	}

	lQ, rQ := qudit.Labels(leftQudits), qudit.Labels(rightQudits)
	contracting := qudit.Intersect(lQ, rQ)
	allQudits := qudit.Union(lQ, rQ)

	if len(contracting) == 0 {
		return nil, fmt.Errorf("tree: Contract(%s, %s): %w", left.String(), right.String(), ErrContractionHasNoOverlap)
	}
	isContracting := make(map[int]bool, len(contracting))
	for _, q := range contracting {
		isContracting[q] = true
	}
	inLeft := make(map[int]bool, len(lQ))
	for _, q := range lQ {
		inLeft[q] = true
	}

	// radixMap resolves every qudit touched by either operand to its
	// radix, checking that qudits shared by both agree.
	radixMap := make(map[int]int, len(allQudits))
	for _, q := range allQudits {
		switch {
		case isContracting[q]:
			lr := leftRadices[lQ.IndexOf(q)]
			rr := rightRadices[rQ.IndexOf(q)]
			if lr != rr {
				return nil, fmt.Errorf("tree: Contract: qudit %d: %w", q, ErrRadixMismatch)
			}
			radixMap[q] = lr
		case inLeft[q]:
			radixMap[q] = leftRadices[lQ.IndexOf(q)]
		default:
			radixMap[q] = rightRadices[rQ.IndexOf(q)]
		}
	}

	nL, nR := len(lQ), len(rQ)

	// leftPerm: contracting row legs first, then non-contracting row legs,
	// then every column leg in its original order (left is never
	// reordered on its input side).
	leftPerm := make([]int, 0, 2*nL)
	for i, q := range lQ {
		if isContracting[q] {
			leftPerm = append(leftPerm, i)
		}
	}
	for i, q := range lQ {
		if !isContracting[q] {
			leftPerm = append(leftPerm, i)
		}
	}
	for i := 0; i < nL; i++ {
		leftPerm = append(leftPerm, i+nL)
	}

	// rightPerm: every row leg first in its original order (right is never
	// reordered on its output side), then non-contracting column legs,
	// then contracting column legs last.
	rightPerm := make([]int, 0, 2*nR)
	for i := 0; i < nR; i++ {
		rightPerm = append(rightPerm, i)
	}
	for i, q := range rQ {
		if !isContracting[q] {
			rightPerm = append(rightPerm, i+nR)
		}
	}
	for i, q := range rQ {
		if isContracting[q] {
			rightPerm = append(rightPerm, i+nR)
		}
	}

	// Track, per tensor leg, which (qudit, side) it names, then apply
	// leftPerm/rightPerm to find where each leg lands after
	// pre-contraction reshaping.
	leftLabels := make([]label, 2*nL)
	for i, q := range lQ {
		leftLabels[i] = makeLabel(q, 0)
		leftLabels[i+nL] = makeLabel(q, 1)
	}
	rightLabels := make([]label, 2*nR)
	for i, q := range rQ {
		rightLabels[i] = makeLabel(q, 0)
		rightLabels[i+nR] = makeLabel(q, 1)
	}

	permutedLeft := make([]label, len(leftPerm))
	for k, src := range leftPerm {
		permutedLeft[k] = leftLabels[src]
	}
	permutedRight := make([]label, len(rightPerm))
	for k, src := range rightPerm {
		permutedRight[k] = rightLabels[src]
	}

	correctOrder := make([]label, 2*len(allQudits))
	for i, q := range allQudits {
		correctOrder[i] = makeLabel(q, 0)
		correctOrder[i+len(allQudits)] = makeLabel(q, 1)
	}

	numContracting := len(contracting)
	rightPreOutOrder := permutedRight[:len(permutedRight)-numContracting]
	leftPreOutOrder := permutedLeft[numContracting:]
	preOutOrder := make([]label, 0, len(rightPreOutOrder)+len(leftPreOutOrder))
	preOutOrder = append(preOutOrder, rightPreOutOrder...)
	preOutOrder = append(preOutOrder, leftPreOutOrder...)

	preOutPerm := make([]int, len(correctOrder))
	for i, want := range correctOrder {
		preOutPerm[i] = indexOfLabel(preOutOrder, want)
	}

	preOutTensorShape := make([]int, len(preOutOrder))
	for i, l := range preOutOrder {
		preOutTensorShape[i] = radixMap[l.qudit()]
	}

	overlapDimension := 1
	for _, q := range contracting {
		overlapDimension *= radixMap[q]
	}

	leftDim, rightDim := left.Dim(), right.Dim()
	leftTensorShape := append(append([]int(nil), []int(leftRadices)...), []int(leftRadices)...)
	rightTensorShape := append(append([]int(nil), []int(rightRadices)...), []int(rightRadices)...)

	dimension := 1
	for _, q := range allQudits {
		dimension *= radixMap[q]
	}
	outRadices := make([]int, len(allQudits))
	for i, q := range allQudits {
		outRadices[i] = radixMap[q]
	}
	radices, err := qudit.NewRadices(outRadices)
	if err != nil {
		return nil, fmt.Errorf("tree: Contract: %w", err)
	}

	return &Contract{
		Left:             left,
		Right:            right,
		LeftQudits:       lQ.Clone(),
		RightQudits:      rQ.Clone(),
		leftParams:       left.NumParams(),
		rightParams:      right.NumParams(),
		dimension:        dimension,
		LeftTensorShape:  leftTensorShape,
		LeftPerm:         leftPerm,
		LeftContractionShape: [2]int{overlapDimension, leftDim * leftDim / overlapDimension},
		RightTensorShape:  rightTensorShape,
		RightPerm:         rightPerm,
		RightContractionShape: [2]int{rightDim * rightDim / overlapDimension, overlapDimension},
		PreOutTensorShape: preOutTensorShape,
		PreOutPerm:        preOutPerm,
		OutMatrixShape:    [2]int{dimension, dimension},
		NumContracting:    numContracting,
		radices:           radices,
	}, nil
}

func indexOfLabel(s []label, v label) int {
	for i, l := range s {
		if l == v {
			return i
		}
	}

	return -1
}

// LeftFRPRLegs returns the (inRowLegs, outRowLegs) leg-group split the
// bytecode generator needs to prepare the left pre-contraction FRPR: the
// raw left buffer's row legs are its nL = len(LeftQudits) output legs, and
// LeftPerm puts the NumContracting contracting legs first, so those become
// the output row group.
func (c *Contract) LeftFRPRLegs() (inRowLegs, outRowLegs int) {
	return len(c.LeftQudits), c.NumContracting
}

// RightFRPRLegs is LeftFRPRLegs's counterpart for the right operand:
// RightPerm keeps all nR row legs first, then the non-contracting column
// legs, then the contracting column legs last, so the output row group is
// every leg except the trailing contracting ones.
func (c *Contract) RightFRPRLegs() (inRowLegs, outRowLegs int) {
	nR := len(c.RightQudits)

	return nR, 2*nR - c.NumContracting
}

// PreOutFRPRLegs gives the leg-group split for the final FRPR that turns
// the raw Matmul result into OutMatrixShape: the Matmul result's own row
// group is exactly right's non-contracting legs, and the output row group
// is the shortest prefix of the permuted legs whose sizes multiply to
// OutMatrixShape[0] — every one of the union's qudits' row legs in the
// canonical layout, or a parent's contraction row group once
// FuseOutputPerm has rewritten PreOutPerm and OutMatrixShape.
func (c *Contract) PreOutFRPRLegs() (inRowLegs, outRowLegs int) {
	_, rightOutRowLegs := c.RightFRPRLegs()

	rows := 1
	for outRowLegs < len(c.PreOutPerm) && rows != c.OutMatrixShape[0] {
		rows *= c.PreOutTensorShape[c.PreOutPerm[outRowLegs]]
		outRowLegs++
	}

	return rightOutRowLegs, outRowLegs
}

func (c *Contract) Kind() Kind             { return KindContract }
func (c *Contract) Radices() qudit.Radices { return c.radices }
func (c *Contract) Dim() int               { return c.dimension }
func (c *Contract) NumParams() int         { return c.leftParams + c.rightParams }
func (c *Contract) String() string {
	return fmt.Sprintf("Contract(%v + %v; skip_left=%t, skip_right=%t)",
		[]int(c.LeftQudits), []int(c.RightQudits), c.SkipLeft, c.SkipRight)
}

// SkipLeftPermutation marks the left pre-contraction FRPR as redundant; the
// tree optimizer calls this once it has fused this node's LeftPerm into
// the left child Contract via FuseOutputPerm.
func (c *Contract) SkipLeftPermutation() { c.SkipLeft = true }

// SkipRightPermutation is SkipLeftPermutation's counterpart for right.
func (c *Contract) SkipRightPermutation() { c.SkipRight = true }

// FuseOutputPerm composes an outer permutation (and its target shape) into
// this node's own pre-contraction output permutation: newPreOutPerm[i] =
// PreOutPerm[perm[i]]. The tree optimizer calls this with a parent
// Contract's LeftPerm/RightPerm and contraction shape, so this node's
// final FRPR also performs the parent's pre-contraction reshape; both
// nodes stay in the tree.
func (c *Contract) FuseOutputPerm(perm []int, newShape [2]int) {
	fused := make([]int, len(perm))
	for i, p := range perm {
		fused[i] = c.PreOutPerm[p]
	}
	c.PreOutPerm = fused
	c.OutMatrixShape = newShape
}
