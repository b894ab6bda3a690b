package pipeline

import (
	"bytes"
	"context"
	"io"

	"github.com/matzehuels/gedgraph/pkg/errors"
	"github.com/matzehuels/gedgraph/pkg/names"
	"github.com/matzehuels/gedgraph/pkg/records"
	"github.com/matzehuels/gedgraph/pkg/render/dot"
	"github.com/matzehuels/gedgraph/pkg/render/graphml"
	"github.com/matzehuels/gedgraph/pkg/render/tree"
	"github.com/matzehuels/gedgraph/pkg/selection"
)

// Render writes sel in the format named by opts. root is required for
// FormatJSON and ignored otherwise.
func Render(ctx context.Context, w io.Writer, rs *records.Set, sel *selection.Set, root *records.Individual, opts Options) error {
	resolver := names.Resolver{ShowDates: opts.Dates}
	dotOpts := dot.Options{
		Names:     resolver,
		Compact:   opts.Format == FormatDOTCompact,
		Reverse:   opts.Reverse,
		Thickness: opts.Thickness,
	}

	switch opts.Format {
	case FormatGraphML:
		return graphml.Write(w, rs, sel, graphml.Options{Names: resolver, Undirected: opts.Undirected})
	case FormatDOT, FormatDOTCompact:
		return dot.Write(w, rs, sel, dotOpts)
	case FormatJSON:
		return tree.Write(w, rs, sel, root, opts.Mode, resolver)
	case FormatSVG:
		var buf bytes.Buffer
		if err := dot.Write(&buf, rs, sel, dotOpts); err != nil {
			return err
		}
		svg, err := dot.RenderSVG(ctx, buf.Bytes())
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "graphviz")
		}
		_, err = w.Write(svg)
		return err
	}
	return errors.New(errors.ErrCodeUnknownFormat, "unknown format %d", int(opts.Format))
}
