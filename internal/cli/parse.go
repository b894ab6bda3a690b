package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gedgraph/pkg/records"
)

type parseOpts struct {
	output  string
	noCache bool
	refresh bool
}

// parseCommand creates the parse command, which exports a GEDCOM file as a
// record-set JSON document. The export can be fed back to the root command.
func (c *CLI) parseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Export a GEDCOM file as record-set JSON",
		Long: `Read a GEDCOM file and write its individuals and families as JSON.

The export keeps names, sex, family links, birth and death events and the
secondary fields (REFN, EXID, _UID, ...). gedgraph accepts it as input in
place of the GEDCOM file.

Examples:
  gedgraph parse family.ged -o family.json
  gedgraph family.json --format dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the parsed-record cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-read the input even if it is cached")

	return cmd
}

func (c *CLI) runParse(cmd *cobra.Command, input string, opts parseOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	logger.Infof("Parsing %s", input)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	rs, hit, err := runner.Load(ctx, input, opts.refresh)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Parsed %d individuals and %d families", rs.IndividualCount(), rs.UnionCount()))

	err = writeOutput(opts.output, cmd.OutOrStdout(), func(w io.Writer) error {
		return records.WriteJSON(rs, w)
	})
	if err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess("Exported record set")
		printFile(opts.output)
		printStats(rs.IndividualCount(), rs.UnionCount(), hit)
		printNextStep("Convert it", "gedgraph "+opts.output+" --format dot")
	}
	return nil
}
