// internal/cli/commands.go
package cli

import (
	"errors"
	"time"

	"github.com/spf13/pflag"

	"iseq/internal/hmmscan"
)

// HMMEROptions locate and tune the HMMER executables.
type HMMEROptions struct {
	ScanExec  string
	PressExec string
	CPUs      int
	CutGA     bool
	NoMax     bool
	Timeout   time.Duration
}

func (o *HMMEROptions) Register(fs *pflag.FlagSet) {
	fs.StringVar(&o.ScanExec, "hmmscan", hmmscan.Default.ScanExec, "hmmscan executable")
	fs.StringVar(&o.PressExec, "hmmpress", hmmscan.Default.PressExec, "hmmpress executable")
	fs.IntVar(&o.CPUs, "cpu", 0, "hmmscan worker threads (0 = all CPUs)")
	fs.BoolVar(&o.CutGA, "cut-ga", false, "use the profile gathering thresholds")
	fs.BoolVar(&o.NoMax, "no-max", false, "keep the hmmscan acceleration heuristics")
	fs.DurationVar(&o.Timeout, "timeout", hmmscan.Default.Timeout, "time limit of each HMMER run (0 = none)")
}

func (o HMMEROptions) Validate() error {
	switch {
	case o.CPUs < 0:
		return errors.New("--cpu must be ≥ 0")
	case o.Timeout < 0:
		return errors.New("--timeout must be ≥ 0")
	case o.ScanExec == "" || o.PressExec == "":
		return errors.New("--hmmscan and --hmmpress must not be empty")
	}
	return nil
}

// Config maps the flags onto the runner configuration.
func (o HMMEROptions) Config() hmmscan.Config {
	c := hmmscan.Default
	c.ScanExec = o.ScanExec
	c.PressExec = o.PressExec
	if o.CPUs > 0 {
		c.CPUs = o.CPUs
	}
	c.CutGA = o.CutGA
	c.Max = !o.NoMax
	c.Timeout = o.Timeout
	return c
}

// EValueOptions: evalue PROFILE AMINO GFF.
type EValueOptions struct {
	HMMER     HMMEROptions
	Profile   string
	Amino     string
	GFF       string
	MaxEValue float64
	Quiet     bool
}

func (o *EValueOptions) Register(fs *pflag.FlagSet) {
	o.HMMER.Register(fs)
	fs.Float64Var(&o.MaxEValue, "max-evalue", 0, "drop hits above this E-value (0 = keep all)")
	fs.BoolVarP(&o.Quiet, "quiet", "q", false, "no summary")
}

func (o *EValueOptions) SetArgs(args []string) error {
	if len(args) != 3 {
		return errors.New("need a profile, an amino FASTA and a GFF file")
	}
	o.Profile, o.Amino, o.GFF = args[0], args[1], args[2]
	return nil
}

func (o EValueOptions) Validate() error {
	if o.MaxEValue < 0 {
		return errors.New("--max-evalue must be ≥ 0")
	}
	return o.HMMER.Validate()
}

// MergeOptions: merge GFF TBLOUT.
type MergeOptions struct {
	GFF       string
	Tblout    string
	MaxEValue float64
	Quiet     bool
}

func (o *MergeOptions) Register(fs *pflag.FlagSet) {
	fs.Float64Var(&o.MaxEValue, "max-evalue", 0, "drop hits above this E-value (0 = keep all)")
	fs.BoolVarP(&o.Quiet, "quiet", "q", false, "no summary")
}

func (o *MergeOptions) SetArgs(args []string) error {
	if len(args) != 2 {
		return errors.New("need a GFF file and an hmmscan --tblout table")
	}
	o.GFF, o.Tblout = args[0], args[1]
	return nil
}

func (o MergeOptions) Validate() error {
	if o.MaxEValue < 0 {
		return errors.New("--max-evalue must be ≥ 0")
	}
	return nil
}

// PressOptions: press PROFILE.
type PressOptions struct {
	HMMER   HMMEROptions
	Profile string
	Force   bool
	Quiet   bool
}

func (o *PressOptions) Register(fs *pflag.FlagSet) {
	o.HMMER.Register(fs)
	fs.BoolVar(&o.Force, "force", false, "press even when pressed files exist")
	fs.BoolVarP(&o.Quiet, "quiet", "q", false, "no summary")
}

func (o *PressOptions) SetArgs(args []string) error {
	if len(args) != 1 {
		return errors.New("need exactly one profile file")
	}
	o.Profile = args[0]
	return nil
}

// TranslateOptions: translate CODON_FASTA.
type TranslateOptions struct {
	Input  string
	Output string
	GCode  int
}

func (o *TranslateOptions) Register(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Output, "output", "o", "-", "amino FASTA file ('-' = stdout)")
	fs.IntVar(&o.GCode, "gcode", 1, "NCBI genetic code table")
}

func (o *TranslateOptions) SetArgs(args []string) error {
	if len(args) != 1 {
		return errors.New("need exactly one codon FASTA file ('-' = stdin)")
	}
	o.Input = args[0]
	return nil
}

// DedupOptions: dedup GFF.
type DedupOptions struct {
	Input     string
	Output    string
	MaxEValue float64
}

func (o *DedupOptions) Register(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Output, "output", "o", "-", "GFF file ('-' = stdout)")
	fs.Float64Var(&o.MaxEValue, "max-evalue", 0, "drop hits above this E-value first (0 = keep all)")
}

func (o *DedupOptions) SetArgs(args []string) error {
	if len(args) != 1 {
		return errors.New("need exactly one GFF file ('-' = stdin)")
	}
	o.Input = args[0]
	return nil
}

func (o DedupOptions) Validate() error {
	if o.MaxEValue < 0 {
		return errors.New("--max-evalue must be ≥ 0")
	}
	return nil
}
