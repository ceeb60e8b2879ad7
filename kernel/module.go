package kernel

import "fmt"

// Module is the immutable handle a specialized program carries for its
// lifetime: kernel handles outlive the QVM via a single immutable Module
// object that bytecode.Generate creates. It is a simple name ->
// *Expression registry built once via NewModule; nothing in this package
// ever mutates a Module after construction, so it is safe to read from
// any goroutine.
type Module struct {
	byName map[string]*Expression
}

// NewModule builds an immutable registry from a set of expressions.
// Duplicate names are rejected unless they refer to the identical
// *Expression value (idempotent re-registration), matching the
// deduplication lvlath's own builder/id_fn.go applies to generated IDs.
func NewModule(exprs ...*Expression) (*Module, error) {
	m := &Module{byName: make(map[string]*Expression, len(exprs))}
	for _, e := range exprs {
		if existing, ok := m.byName[e.name]; ok && existing != e {
			return nil, fmt.Errorf("kernel: %s: %w", e.name, ErrNameCollision)
		}
		m.byName[e.name] = e
	}

	return m, nil
}

// Lookup resolves a registered expression by name.
func (m *Module) Lookup(name string) (*Expression, error) {
	e, ok := m.byName[name]
	if !ok {
		return nil, fmt.Errorf("kernel: %s: %w", name, ErrUnknownExpression)
	}

	return e, nil
}

// Len reports how many distinct expressions are registered.
func (m *Module) Len() int { return len(m.byName) }
