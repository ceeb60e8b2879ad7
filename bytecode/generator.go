package bytecode

import (
	"fmt"

	"github.com/openqudit/qvm/kernel"
	"github.com/openqudit/qvm/tree"
)

// Generator lowers a tree.Node into a Program, one call to Generate. It
// holds no state across calls; a fresh Generator is used internally for
// every Constant subtree it encounters, recursing into itself to compile
// a constant island in isolation before splicing the result into the
// parent's buffer space.
type Generator struct {
	exprSeen     map[string]bool
	exprs        []*kernel.Expression
	staticCode   []Instruction
	dynamicCode  []Instruction
	buffers      []BufferShape
	paramCounter int

	// constantCache memoizes a Constant subtree's buffer index by node
	// identity, so a diamond in the DAG that shares one Constant pointer
	// across two parents is lowered once. This is keyed on pointer
	// identity rather than full structural equality — two separately-built
	// but structurally-identical Constant subtrees lower twice instead of
	// once.
	constantCache map[tree.Node]int
}

func newGenerator() *Generator {
	return &Generator{
		exprSeen:      make(map[string]bool),
		constantCache: make(map[tree.Node]int),
	}
}

// Generate lowers root into a complete Program, then runs both post-passes
// over it: RemoveIdentityFRPR (a real rewrite) and StaticBytecodeOptimizer
// (currently inert — see optimizer.go) — turning the raw lowering into
// specialized bytecode before a caller ever reaches vm.New.
func Generate(root tree.Node) (*Program, error) {
	g := newGenerator()
	out, err := g.parse(root)
	if err != nil {
		return nil, err
	}

	module, err := kernel.NewModule(g.exprs...)
	if err != nil {
		return nil, fmt.Errorf("bytecode: %w", err)
	}

	prog := &Program{
		Module:       module,
		StaticCode:   g.staticCode,
		DynamicCode:  g.dynamicCode,
		Buffers:      g.buffers,
		NumParams:    g.paramCounter,
		OutputBuffer: out,
	}

	prog = RemoveIdentityFRPR(prog)
	prog = NewStaticBytecodeOptimizer().Optimize(prog)

	return prog, nil
}

func (g *Generator) newBuffer(rows, cols, numParams, paramOffset int) int {
	idx := len(g.buffers)
	g.buffers = append(g.buffers, BufferShape{Rows: rows, Cols: cols, NumParams: numParams, ParamOffset: paramOffset})

	return idx
}

func (g *Generator) recordExpr(e *kernel.Expression) {
	if g.exprSeen[e.Name()] {
		return
	}
	g.exprSeen[e.Name()] = true
	g.exprs = append(g.exprs, e)
}

// parse lowers n, appending whatever instructions are needed to
// g.dynamicCode (or, for a Constant, to g.staticCode via a nested
// Generator), and returns the buffer index holding n's result.
func (g *Generator) parse(n tree.Node) (int, error) {
	switch t := n.(type) {
	case *tree.Identity:
		return 0, fmt.Errorf("bytecode: %w", ErrIdentityNode)

	case *tree.Leaf:
		offset := g.paramCounter
		out := g.newBuffer(t.Dim(), t.Dim(), t.NumParams(), offset)
		g.dynamicCode = append(g.dynamicCode, Instruction{
			Op: OpWrite, Expr: t.Expr, ParamOffset: offset, Out: out,
		})
		g.paramCounter += t.NumParams()
		g.recordExpr(t.Expr)

		return out, nil

	case *tree.Perm:
		// A Perm appears here whenever the builder wrapped a leaf whose
		// local qudit order wasn't already ascending: no optimizer pass
		// removes or absorbs a Perm node (the permutation-fusion pass
		// only acts between a Contract and a child Contract). This
		// generator lowers every Perm to a standalone FRPR:
		// reinterpret the child's Dim x Dim matrix as (child-radices row
		// legs, child-radices column legs) and apply Sigma to both leg
		// groups identically, which is exactly conjugation by the
		// permutation matrix P: P . M . P^-1.
		child, err := g.parse(t.Child)
		if err != nil {
			return 0, err
		}
		n := t.Sigma
		childRadices := []int(t.Child.Radices())
		shape := append(append([]int(nil), childRadices...), childRadices...)
		perm := make([]int, 2*len(n))
		for i, s := range n {
			perm[i] = s
			perm[len(n)+i] = len(n) + s
		}
		out := g.newBuffer(t.Dim(), t.Dim(), t.NumParams(), g.buffers[child].ParamOffset)
		g.dynamicCode = append(g.dynamicCode, Instruction{
			Op: OpFRPR, A: child, Shape: shape, Perm: perm,
			InRowLegs: len(n), OutRowLegs: len(n), Out: out,
		})

		return out, nil

	case *tree.Kron:
		offset := g.paramCounter
		left, err := g.parse(t.Left)
		if err != nil {
			return 0, err
		}
		right, err := g.parse(t.Right)
		if err != nil {
			return 0, err
		}
		out := g.newBuffer(t.Dim(), t.Dim(), t.NumParams(), offset)
		g.dynamicCode = append(g.dynamicCode, Instruction{Op: OpKron, A: left, B: right, Out: out})

		return out, nil

	case *tree.Mul:
		offset := g.paramCounter
		left, err := g.parse(t.Left)
		if err != nil {
			return 0, err
		}
		right, err := g.parse(t.Right)
		if err != nil {
			return 0, err
		}
		out := g.newBuffer(t.Dim(), t.Dim(), t.NumParams(), offset)
		// Swapped operand order: Mul's matrix-multiplication result is
		// right . left, since Left is the predecessor that acts first.
		// The output buffer's own ParamOffset/NumParams still
		// span [offset, offset+t.NumParams()) — left's own leaves first,
		// then right's — regardless of the instruction's A/B order; the
		// VM derives derivative-slot placement from each operand
		// buffer's own ParamOffset, not from its position in Instruction.
		g.dynamicCode = append(g.dynamicCode, Instruction{Op: OpMatmul, A: right, B: left, Out: out})

		return out, nil

	case *tree.Constant:
		if idx, ok := g.constantCache[n]; ok {
			return idx, nil
		}

		sub := newGenerator()
		subOut, err := sub.parse(t.Child)
		if err != nil {
			return 0, err
		}
		if len(sub.staticCode) != 0 {
			return 0, fmt.Errorf("bytecode: constant subtree produced static code of its own")
		}

		bufferOffset := len(g.buffers)
		g.buffers = append(g.buffers, sub.buffers...)
		for _, inst := range sub.dynamicCode {
			inst.offsetBufferIndices(bufferOffset)
			g.staticCode = append(g.staticCode, inst)
		}
		for _, e := range sub.exprs {
			g.recordExpr(e)
		}

		out := bufferOffset + subOut
		g.constantCache[n] = out

		return out, nil

	case *tree.Contract:
		return g.parseContract(t)

	default:
		return 0, fmt.Errorf("bytecode: %T: %w", n, ErrUnknownNodeKind)
	}
}

func (g *Generator) parseContract(n *tree.Contract) (int, error) {
	offset := g.paramCounter
	left, err := g.parse(n.Left)
	if err != nil {
		return 0, err
	}
	right, err := g.parse(n.Right)
	if err != nil {
		return 0, err
	}

	if !n.SkipLeft {
		inLegs, outLegs := n.LeftFRPRLegs()
		out := g.newBuffer(n.LeftContractionShape[0], n.LeftContractionShape[1], n.Left.NumParams(), g.buffers[left].ParamOffset)
		g.dynamicCode = append(g.dynamicCode, Instruction{
			Op: OpFRPR, A: left, Shape: n.LeftTensorShape, Perm: n.LeftPerm,
			InRowLegs: inLegs, OutRowLegs: outLegs, Out: out,
		})
		left = out
	}
	if !n.SkipRight {
		inLegs, outLegs := n.RightFRPRLegs()
		out := g.newBuffer(n.RightContractionShape[0], n.RightContractionShape[1], n.Right.NumParams(), g.buffers[right].ParamOffset)
		g.dynamicCode = append(g.dynamicCode, Instruction{
			Op: OpFRPR, A: right, Shape: n.RightTensorShape, Perm: n.RightPerm,
			InRowLegs: inLegs, OutRowLegs: outLegs, Out: out,
		})
		right = out
	}

	preOut := g.newBuffer(n.RightContractionShape[0], n.LeftContractionShape[1], n.NumParams(), offset)
	g.dynamicCode = append(g.dynamicCode, Instruction{Op: OpMatmul, A: right, B: left, Out: preOut})

	preInLegs, preOutLegs := n.PreOutFRPRLegs()
	out := g.newBuffer(n.OutMatrixShape[0], n.OutMatrixShape[1], n.NumParams(), offset)
	g.dynamicCode = append(g.dynamicCode, Instruction{
		Op: OpFRPR, A: preOut, Shape: n.PreOutTensorShape, Perm: n.PreOutPerm,
		InRowLegs: preInLegs, OutRowLegs: preOutLegs, Out: out,
	})

	return out, nil
}
