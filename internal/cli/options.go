// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"iseq/internal/alphabet"
	"iseq/internal/gencode"
	"iseq/internal/model"
	"iseq/internal/profile"
)

// ScanOptions holds the scan flags and positionals.
type ScanOptions struct {
	// Input
	Profile string
	Targets []string

	// Model
	Kind         string
	Epsilon      float64
	Window       int
	GCode        int
	SingleHit    bool
	HMMER3Compat bool
	Entry        string

	// Performance
	Threads int

	// Output
	Output   string
	OCodon   string
	OAmino   string
	Format   string
	Prefix   string
	NoHeader bool
	Quiet    bool
	Progress bool
}

// Register binds the scan flags to fs with their defaults.
func (o *ScanOptions) Register(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Kind, "kind", "k", string(profile.KindFrame), "profile kind: standard | hmmer3 | frame | codon")
	fs.Float64VarP(&o.Epsilon, "epsilon", "e", 0.01, "indel probability of frame states")
	fs.IntVarP(&o.Window, "window", "w", 0, "window length (0 = whole target)")
	fs.IntVar(&o.GCode, "gcode", 1, "NCBI genetic code table")
	fs.BoolVar(&o.SingleHit, "single-hit", false, "allow at most one hit per target and window")
	fs.BoolVar(&o.HMMER3Compat, "hmmer3-compat", false, "score like hmmsearch (hmmer3 kind only)")
	fs.StringVar(&o.Entry, "entry", model.EntryOccupancy.String(), "entry distribution of hmmer3 profiles: occupancy | uniform")

	fs.IntVarP(&o.Threads, "threads", "t", 0, "number of worker threads (0 = all CPUs)")

	fs.StringVarP(&o.Output, "output", "o", "output.gff", "hit table file ('-' = stdout)")
	fs.StringVar(&o.OCodon, "ocodon", "", "codon FASTA of frame and codon hits")
	fs.StringVar(&o.OAmino, "oamino", "", "amino FASTA of frame and codon hits")
	fs.StringVarP(&o.Format, "format", "f", "gff", "hit table format: gff | tsv | json | jsonl")
	fs.StringVar(&o.Prefix, "prefix", "item", "hit ID prefix")
	fs.BoolVar(&o.NoHeader, "no-header", false, "suppress the tsv header line")
	fs.BoolVarP(&o.Quiet, "quiet", "q", false, "no report and no warnings")
	fs.BoolVar(&o.Progress, "progress", false, "progress bar over profiles on stderr")
}

// SetArgs takes PROFILE TARGET... positionals.
func (o *ScanOptions) SetArgs(args []string) error {
	if len(args) < 2 {
		return errors.New("need a profile file and at least one target file")
	}
	o.Profile, o.Targets = args[0], args[1:]
	return nil
}

// Validate checks ranges and enumerations.
func (o ScanOptions) Validate() error {
	kind, err := profile.ParseKind(o.Kind)
	if err != nil {
		return err
	}
	entry, err := model.ParseEntry(o.Entry)
	if err != nil {
		return err
	}
	switch {
	case o.Epsilon < 0 || o.Epsilon > 1:
		return errors.New("--epsilon must be within [0, 1]")
	case o.Window < 0:
		return errors.New("--window must be ≥ 0")
	case o.Threads < 0:
		return errors.New("--threads must be ≥ 0")
	case o.Prefix == "" || strings.ContainsAny(o.Prefix, " \t;="):
		return fmt.Errorf("invalid --prefix %q", o.Prefix)
	}
	if _, err := gencode.New(alphabet.DNA(), alphabet.Amino(), o.GCode); err != nil {
		return fmt.Errorf("--gcode: %w", err)
	}
	if kind == profile.KindHMMER3 && entry == model.EntryFull {
		return errors.New("--entry full is not supported by hmmer3 profiles")
	}
	if o.HMMER3Compat && kind != profile.KindHMMER3 {
		return errors.New("--hmmer3-compat needs --kind hmmer3")
	}
	switch o.Format {
	case "gff", "tsv", "json", "jsonl":
	default:
		return fmt.Errorf("invalid --format %q", o.Format)
	}
	if (o.OCodon != "" || o.OAmino != "") && kind != profile.KindFrame && kind != profile.KindCodon {
		return fmt.Errorf("--ocodon/--oamino need a frame or codon profile, got %s", kind)
	}
	if o.OCodon == "-" || o.OAmino == "-" {
		return errors.New("--ocodon/--oamino must name files")
	}
	return nil
}

// ProfileOptions maps flags onto profile construction options.
func (o ScanOptions) ProfileOptions() (profile.Kind, profile.Options, error) {
	kind, err := profile.ParseKind(o.Kind)
	if err != nil {
		return "", profile.Options{}, err
	}
	entry, err := model.ParseEntry(o.Entry)
	if err != nil {
		return "", profile.Options{}, err
	}
	po := profile.DefaultOptions()
	po.MultipleHits = !o.SingleHit
	po.HMMER3Compat = o.HMMER3Compat
	po.Entry = entry
	po.Epsilon = o.Epsilon
	po.GeneticCode = o.GCode
	return kind, po, nil
}

// ParseScanArgs registers the scan flags on fs, parses argv and validates.
func ParseScanArgs(fs *pflag.FlagSet, argv []string) (ScanOptions, error) {
	var o ScanOptions
	o.Register(fs)
	if err := fs.Parse(argv); err != nil {
		return o, err
	}
	if err := o.SetArgs(fs.Args()); err != nil {
		return o, err
	}
	return o, o.Validate()
}
