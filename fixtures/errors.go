package fixtures

import "errors"

var (
	// ErrTooFewQudits is returned by circuit generators that need at least
	// two qudits to place any two-qudit gate.
	ErrTooFewQudits = errors.New("fixtures: circuit requires at least 2 qudits")

	// ErrTooFewGates is returned by generators asked to place zero gates.
	ErrTooFewGates = errors.New("fixtures: circuit requires at least 1 gate")
)
