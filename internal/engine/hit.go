// internal/engine/hit.go
package engine

// Hit is one homologous fragment placed on its target.
type Hit struct {
	SequenceID string
	SourceFile string

	ProfileName string
	ProfileAcc  string
	ProfileAlph string
	TargetAlph  string

	// 0-based, half-open
	Start int
	End   int

	// Window is the scan window length (0 = whole target); WindowIndex is the
	// window the fragment was decoded in.
	Window      int
	WindowIndex int
	Epsilon     float64
	// LogLik is the log-likelihood ratio of the decoding window.
	LogLik float64

	States []string
	Seq    string

	// Codons and Amino are filled for frame and codon profiles only.
	Codons string
	Amino  string
}

func (h Hit) Length() int { return h.End - h.Start }
