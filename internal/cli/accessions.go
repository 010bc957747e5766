package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/metnet/internal/genome"
)

// AccessionsOptions holds flags for the accessions command.
type AccessionsOptions struct {
	*RootOptions
	Lines int
}

// accessionsText renders sniffed accessions for text output.
type accessionsText genome.Accessions

func (a accessionsText) String() string {
	return fmt.Sprintf("ncbi_accession: %s\nncbi_assembly: %s\nncbi_bioproject: %s",
		a.Accession, a.Assembly, a.BioProject)
}

// NewAccessionsCommand creates the accessions command.
func NewAccessionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AccessionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "accessions <file.gb>",
		Short: "Read NCBI accessions from a GenBank header",
		Long: `Scan the first lines of a GenBank flat file for the VERSION accession and
the Assembly and BioProject cross-references. Missing values print empty.

Example:
  metnet accessions NC_000913.3.gb --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccessions(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Lines, "lines", genome.DefaultAccessionLines, "number of header lines to scan")

	return cmd
}

func runAccessions(opts *AccessionsOptions, path string, cmd *cobra.Command) error {
	if err := opts.setup(cmd.ErrOrStderr()); err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	f, err := os.Open(path)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeNotFound, fmt.Sprintf("file not found: %s", path), err)
	}
	defer f.Close()

	acc, err := genome.ReadAccessions(f, opts.Lines)
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeInvalidInput, "failed to read accessions", err)
	}

	if opts.Format == "json" {
		return formatter.Success(acc)
	}
	return formatter.Success(accessionsText(acc))
}
