package state

// Step is one state visit consuming Len symbols.
type Step struct {
	State State
	Len   int
}

// Path is an ordered list of steps.
type Path []Step

// SeqLen is the number of symbols the path consumes.
func (p Path) SeqLen() int {
	n := 0
	for _, s := range p {
		n += s.Len
	}
	return n
}

// Names lists the state names in order.
func (p Path) Names() []string {
	out := make([]string, len(p))
	for i, s := range p {
		out[i] = s.State.Name()
	}
	return out
}
