package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/gedgraph/pkg/errors"
	"github.com/matzehuels/gedgraph/pkg/locate"
	"github.com/matzehuels/gedgraph/pkg/pipeline"
	"github.com/matzehuels/gedgraph/pkg/selection"
)

// convertOpts holds the flags of the root (convert) command.
type convertOpts struct {
	format     string
	include    string
	personID   string
	idItem     string
	dates      bool
	reverse    bool
	thick      int // number of --thick occurrences
	thickness  int // absolute thickness from the config file
	undirected bool
	output     string
	noCache    bool
	refresh    bool
	watch      bool
}

func defaultConvertOpts() *convertOpts {
	return &convertOpts{
		format:  pipeline.DefaultFormat.String(),
		include: selection.ModeAll.String(),
		idItem:  locate.FieldXref,
	}
}

func (o *convertOpts) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.format, "format", o.format, "output format: "+strings.Join(pipeline.FormatNames(), ", "))
	f.StringVar(&o.include, "include", o.include, "people to include: all, ancestors (anc), descendants (desc), branch")
	f.StringVar(&o.personID, "personid", "", "root person for ancestors, descendants and branch")
	f.StringVar(&o.idItem, "iditem", o.idItem, "field --personid is matched against (xref, refn, exid, ...)")
	f.BoolVar(&o.dates, "dates", false, "append birth and death years to names")
	f.BoolVar(&o.reverse, "reverse", false, "point dot connectors from parents to children")
	f.CountVar(&o.thick, "thick", "thicker dot edges; repeat to increase")
	f.BoolVar(&o.undirected, "undirected", false, "emit an undirected GraphML graph")
	f.StringVarP(&o.output, "output", "o", "", "output file (stdout if empty)")
	f.BoolVar(&o.noCache, "no-cache", false, "disable the parsed-record cache")
	f.BoolVar(&o.refresh, "refresh", false, "re-read the input even if it is cached")
	f.BoolVar(&o.watch, "watch", false, "convert again whenever the input file changes (needs --output)")

	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(pipeline.FormatNames()...))
	_ = cmd.RegisterFlagCompletionFunc("include", fixedCompletion("all", "ancestors", "descendants", "branch"))
}

// applyConfig copies config values into flags the user did not set.
func (o *convertOpts) applyConfig(flags *pflag.FlagSet, cfg Config) {
	if cfg.Format != "" && !flags.Changed("format") {
		o.format = cfg.Format
	}
	if cfg.Include != "" && !flags.Changed("include") {
		o.include = cfg.Include
	}
	if cfg.IDItem != "" && !flags.Changed("iditem") {
		o.idItem = cfg.IDItem
	}
	if cfg.Dates != nil && !flags.Changed("dates") {
		o.dates = *cfg.Dates
	}
	if cfg.Reverse != nil && !flags.Changed("reverse") {
		o.reverse = *cfg.Reverse
	}
	if cfg.Thickness > 0 && !flags.Changed("thick") {
		o.thickness = cfg.Thickness
	}
}

// pipelineOptions turns the flags into validated pipeline options.
func (o *convertOpts) pipelineOptions(input string) (pipeline.Options, error) {
	format, err := pipeline.ParseFormat(o.format)
	if err != nil {
		return pipeline.Options{}, err
	}
	mode, err := selection.ParseMode(o.include)
	if err != nil {
		return pipeline.Options{}, err
	}

	thickness := o.thickness
	if thickness == 0 {
		thickness = pipeline.DefaultThickness + o.thick
	}

	opts := pipeline.Options{
		Input:      input,
		Format:     format,
		Mode:       mode,
		PersonID:   o.personID,
		IDItem:     o.idItem,
		Dates:      o.dates,
		Reverse:    o.reverse,
		Thickness:  thickness,
		Undirected: o.undirected,
		Refresh:    o.refresh,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func (c *CLI) runConvert(cmd *cobra.Command, input string, o *convertOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	o.applyConfig(cmd.Flags(), c.config)

	opts, err := o.pipelineOptions(input)
	if err != nil {
		return err
	}
	opts.Logger = logger
	if o.watch && o.output == "" {
		return errors.New(errors.ErrCodeConfiguration, "--watch needs --output")
	}

	runner, err := c.newRunner(o.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if err := convertOnce(ctx, runner, opts, o.output, cmd.OutOrStdout()); err != nil {
		return err
	}
	if !o.watch {
		return nil
	}
	return watchFile(ctx, input, logger, func(ctx context.Context) error {
		return convertOnce(ctx, runner, opts, o.output, cmd.OutOrStdout())
	})
}

// convertOnce runs the pipeline and writes the document. Nothing is written
// when the pipeline fails.
func convertOnce(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output string, stdout io.Writer) error {
	prog := newProgress(loggerFromContext(ctx))
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Converted %d of %d individuals to %s",
		res.Stats.SelectedIndividuals, res.Stats.Individuals, opts.Format))

	err = writeOutput(output, stdout, func(w io.Writer) error {
		_, err := w.Write(res.Output)
		return err
	})
	if err != nil {
		return err
	}

	if output != "" {
		printSuccess("Wrote %s", opts.Format)
		printFile(output)
		printStats(res.Stats.SelectedIndividuals, res.Stats.SelectedUnions, res.CacheHit)
	}
	return nil
}

// fixedCompletion completes a flag from a fixed list of values.
func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
