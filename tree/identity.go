package tree

import (
	"fmt"

	"github.com/openqudit/qvm/qudit"
)

// Identity represents the identity operator over a set of radices. This
// variant is transient: the builder never needs to construct one in
// practice, and the bytecode generator treats encountering one as an
// internal-invariant violation (ErrIdentityNode), never a recoverable
// compile error. It exists in the algebra so that future passes (e.g. a
// dead-leg eliminator) have a value to rewrite a no-op subtree to before
// the optimizer's other passes run.
type Identity struct {
	radices qudit.Radices
}

// NewIdentity builds an Identity node over the given radices.
func NewIdentity(radices qudit.Radices) *Identity {
	return &Identity{radices: radices.Clone()}
}

func (i *Identity) Kind() Kind             { return KindIdentity }
func (i *Identity) Radices() qudit.Radices { return i.radices }
func (i *Identity) Dim() int               { return i.radices.Dim() }
func (i *Identity) NumParams() int         { return 0 }
func (i *Identity) String() string         { return fmt.Sprintf("Identity%v", i.radices) }
