// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"iseq/internal/appcore"
	"iseq/internal/cli"
	"iseq/internal/version"
)

// RunContext executes one iseq command line and returns the exit code:
// 0 ok, 2 usage, 3 run or I/O failure, 130 cancelled.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	code := 0
	root := NewRootCommand(stdout, stderr, &code)
	root.SetArgs(argv)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// NewRootCommand builds the command tree. Subcommands store their exit code
// in code; returned errors are usage errors.
func NewRootCommand(stdout, stderr io.Writer, code *int) *cobra.Command {
	root := &cobra.Command{
		Use:   "iseq",
		Short: "iseq: profile HMM search of protein profiles against nucleotide or protein sequences",
		Long: `iseq: profile HMM search of protein profiles against nucleotide or protein sequences

Scan targets against HMMER3 profiles (frame-shift aware for DNA/RNA), then
score the hits with hmmscan E-values.`,
		Version:       version.Version,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("iseq version {{.Version}}\n")

	root.AddCommand(
		newScanCommand(stdout, stderr, code),
		newPressCommand(stdout, stderr, code),
		newEValueCommand(stdout, stderr, code),
		newMergeCommand(stdout, stderr, code),
		newTranslateCommand(stdout, stderr, code),
		newDedupCommand(stdout, stderr, code),
		newVersionCommand(stdout),
	)
	return root
}

func newScanCommand(stdout, stderr io.Writer, code *int) *cobra.Command {
	var o cli.ScanOptions
	cmd := &cobra.Command{
		Use:   "scan [flags] PROFILE TARGET...",
		Short: "Search target sequences against every profile of a HMMER3 file",
		Example: `  iseq scan Pfam-A.hmm genome.fa --ocodon codon.fa --oamino amino.fa
  iseq scan --kind standard --output - --format tsv -q db.hmm proteins.fa`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.SetArgs(args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			wf := appcore.NewHitWriterFactory(o.Format, o.Prefix, !o.NoHeader, o.OCodon, o.OAmino)
			*code = appcore.RunScan(cmd.Context(), stdout, stderr, o, wf)
			return nil
		},
	}
	o.Register(cmd.Flags())
	return cmd
}

func newPressCommand(stdout, stderr io.Writer, code *int) *cobra.Command {
	var o cli.PressOptions
	cmd := &cobra.Command{
		Use:   "press [flags] PROFILE",
		Short: "Run hmmpress on a profile database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.SetArgs(args); err != nil {
				return err
			}
			*code = appcore.RunPress(cmd.Context(), stdout, stderr, o)
			return nil
		},
	}
	o.Register(cmd.Flags())
	return cmd
}

func newEValueCommand(stdout, stderr io.Writer, code *int) *cobra.Command {
	var o cli.EValueOptions
	cmd := &cobra.Command{
		Use:   "evalue [flags] PROFILE AMINO GFF",
		Short: "Score scan hits with hmmscan and write E-values into the GFF file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.SetArgs(args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			*code = appcore.RunEValue(cmd.Context(), stdout, stderr, o)
			return nil
		},
	}
	o.Register(cmd.Flags())
	return cmd
}

func newMergeCommand(stdout, stderr io.Writer, code *int) *cobra.Command {
	var o cli.MergeOptions
	cmd := &cobra.Command{
		Use:   "merge [flags] GFF TBLOUT",
		Short: "Write the scores of an hmmscan --tblout table into a GFF file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.SetArgs(args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			*code = appcore.RunMerge(cmd.Context(), stdout, stderr, o)
			return nil
		},
	}
	o.Register(cmd.Flags())
	return cmd
}

func newTranslateCommand(stdout, stderr io.Writer, code *int) *cobra.Command {
	var o cli.TranslateOptions
	cmd := &cobra.Command{
		Use:   "translate [flags] CODON_FASTA",
		Short: "Translate a codon FASTA into amino acids",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.SetArgs(args); err != nil {
				return err
			}
			*code = appcore.RunTranslate(cmd.Context(), stdout, stderr, o)
			return nil
		},
	}
	o.Register(cmd.Flags())
	return cmd
}

func newDedupCommand(stdout, stderr io.Writer, code *int) *cobra.Command {
	var o cli.DedupOptions
	cmd := &cobra.Command{
		Use:   "dedup [flags] GFF",
		Short: "Keep the longest of the hits sharing a start and drop hits nested in it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.SetArgs(args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			*code = appcore.RunDedup(cmd.Context(), stdout, stderr, o)
			return nil
		},
	}
	o.Register(cmd.Flags())
	return cmd
}

func newVersionCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "iseq version %s\n", version.Version)
		},
	}
}
