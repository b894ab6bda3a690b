// Package pipeline runs the conversion from a genealogy file to a graph
// document.
//
// The pipeline has four stages:
//
//  1. Load: read GEDCOM (or a record-set JSON export) into a records.Set,
//     using the record cache when the input has been seen before
//  2. Locate: resolve --personid to the root person for rooted modes
//  3. Select: compute the individuals and unions to include
//  4. Render: serialize the selection in the requested format
//
// Options are validated before the input is read, so configuration errors
// never produce partial output.
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:    "family.ged",
//	    Format:   pipeline.FormatDOT,
//	    Mode:     selection.ModeDescendants,
//	    PersonID: "I1",
//	})
//	os.Stdout.Write(result.Output)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gedgraph/pkg/errors"
	"github.com/matzehuels/gedgraph/pkg/locate"
	"github.com/matzehuels/gedgraph/pkg/records"
	"github.com/matzehuels/gedgraph/pkg/selection"
)

// Format is an output notation.
type Format int

const (
	// FormatGraphML is the GraphML document.
	FormatGraphML Format = iota
	// FormatDOT is the record digraph with separate partner compartments.
	FormatDOT
	// FormatDOTCompact is the record digraph with partners merged into the
	// union compartment.
	FormatDOTCompact
	// FormatJSON is the nested tree document. It needs a rooted mode.
	FormatJSON
	// FormatSVG is FormatDOT laid out by Graphviz.
	FormatSVG
)

// Formats lists every output format in declaration order.
var Formats = []Format{FormatGraphML, FormatDOT, FormatDOTCompact, FormatJSON, FormatSVG}

const (
	// DefaultFormat is used when no format is given.
	DefaultFormat = FormatGraphML

	// DefaultThickness is the dot edge pen width.
	DefaultThickness = 1
)

// String returns the command-line name of the format.
func (f Format) String() string {
	switch f {
	case FormatGraphML:
		return "graphml"
	case FormatDOT:
		return "dot"
	case FormatDOTCompact:
		return "dot2"
	case FormatJSON:
		return "json"
	case FormatSVG:
		return "svg"
	}
	return "unknown"
}

// ParseFormat converts a command-line format name. Matching is
// case-insensitive.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range Formats {
		if f.String() == name {
			return f, nil
		}
	}
	return DefaultFormat, errors.New(errors.ErrCodeUnknownFormat,
		"invalid format: %q (must be one of: graphml, dot, dot2, json, svg)", s)
}

// FormatNames returns the names of all formats, for help text and completion.
func FormatNames() []string {
	out := make([]string, len(Formats))
	for i, f := range Formats {
		out[i] = f.String()
	}
	return out
}

// Options contains all configuration for one conversion.
type Options struct {
	// Input is the path to a GEDCOM file, or to a record-set JSON export when
	// it ends in ".json".
	Input string

	Format Format
	Mode   selection.Mode

	// PersonID identifies the root person; required unless Mode is ModeAll.
	PersonID string
	// IDItem names the field PersonID is matched against. Empty means
	// the cross-reference id.
	IDItem string

	// Dates appends birth and death years to names.
	Dates bool
	// Reverse points dot connectors from parents to children.
	Reverse bool
	// Thickness is the dot edge pen width. Zero means DefaultThickness.
	Thickness int
	// Undirected emits an undirected GraphML graph.
	Undirected bool

	// Refresh ignores cached record sets and re-reads the input.
	Refresh bool

	Logger *log.Logger

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Records   *records.Set
	Root      *records.Individual // nil for ModeAll
	Selection *selection.Set

	// Output is the rendered document.
	Output []byte

	Stats Stats

	// CacheHit reports whether the record set came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Individuals         int
	Unions              int
	SelectedIndividuals int
	SelectedUnions      int
	LoadTime            time.Duration
	RenderTime          time.Duration
}

// ValidateAndSetDefaults checks the option combination and applies
// defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeConfiguration, "input file is required")
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ValidateForRender checks everything that does not depend on the input
// file: the format, the mode and person pairing, and the thickness.
func (o *Options) ValidateForRender() error {
	if o.Format < FormatGraphML || o.Format > FormatSVG {
		return errors.New(errors.ErrCodeUnknownFormat, "unknown format %d", int(o.Format))
	}
	if o.Mode < selection.ModeAll || o.Mode > selection.ModeBranch {
		return errors.New(errors.ErrCodeConfiguration, "unknown include mode %d", int(o.Mode))
	}
	if o.Format == FormatJSON && o.Mode == selection.ModeAll {
		return errors.New(errors.ErrCodeConfiguration, "json output requires a single person: use --include ancestors, descendants or branch with --personid")
	}
	if o.Mode.NeedsRoot() {
		if strings.TrimSpace(o.PersonID) == "" {
			return errors.New(errors.ErrCodeConfiguration, "--include %s requires --personid", o.Mode)
		}
		if err := errors.ValidatePersonID(o.PersonID); err != nil {
			return err
		}
	}
	if o.Thickness < 0 {
		return errors.New(errors.ErrCodeConfiguration, "thickness must be positive, got %d", o.Thickness)
	}
	if o.Thickness == 0 {
		o.Thickness = DefaultThickness
	}
	if o.IDItem == "" {
		o.IDItem = locate.FieldXref
	}
	return errors.ValidateFieldName(o.IDItem)
}
