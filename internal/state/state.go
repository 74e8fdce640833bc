// Package state holds the emission states a profile HMM is built from.
//
// The set of state kinds is closed: Normal, Mute, Codon and Frame. Callers that
// need kind-specific behavior switch on the concrete type; the unexported
// sealed method keeps other packages from adding kinds.
package state

import "iseq/internal/alphabet"

// Kind identifies the emission model of a state.
type Kind uint8

const (
	KindMute Kind = iota
	KindNormal
	KindCodon
	KindFrame
)

func (k Kind) String() string {
	switch k {
	case KindMute:
		return "mute"
	case KindNormal:
		return "normal"
	case KindCodon:
		return "codon"
	case KindFrame:
		return "frame"
	}
	return "unknown"
}

// Role is the position of a state in the Plan7 topology. Fragment
// segmentation is driven by roles, never by names.
type Role uint8

const (
	Flank    Role = iota // N, J, C
	Start                // S
	Begin                // B
	End                  // E
	Terminal             // T
	CoreMatch
	CoreInsert
	CoreDelete
	Null // R of the null model
)

func (r Role) String() string {
	switch r {
	case Flank:
		return "flank"
	case Start:
		return "start"
	case Begin:
		return "begin"
	case End:
		return "end"
	case Terminal:
		return "terminal"
	case CoreMatch:
		return "match"
	case CoreInsert:
		return "insert"
	case CoreDelete:
		return "delete"
	case Null:
		return "null"
	}
	return "unknown"
}

// IsCore reports whether r belongs to a profile node.
func (r Role) IsCore() bool { return r == CoreMatch || r == CoreInsert || r == CoreDelete }

// State is an HMM state. LProb scores the emission of exactly seq; lengths
// outside [MinLen, MaxLen] have probability zero.
type State interface {
	Name() string
	Role() Role
	Kind() Kind
	Alphabet() *alphabet.Alphabet
	MinLen() int
	MaxLen() int
	LProb(seq []byte) float64
	sealed()
}

type base struct {
	name  string
	role  Role
	alpha *alphabet.Alphabet
}

func (b *base) Name() string                 { return b.name }
func (b *base) Role() Role                   { return b.role }
func (b *base) Alphabet() *alphabet.Alphabet { return b.alpha }
func (b *base) sealed()                      {}

// IsMute reports whether s never consumes symbols.
func IsMute(s State) bool { return s.MaxLen() == 0 }
