package dot

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/gedgraph/pkg/names"
	"github.com/matzehuels/gedgraph/pkg/records"
	"github.com/matzehuels/gedgraph/pkg/render"
	"github.com/matzehuels/gedgraph/pkg/selection"
)

// Options configures digraph output.
type Options struct {
	// Names renders the labels. The style is forced to markup and &apos;
	// is rewritten to &#39;, since Graphviz only decodes numeric
	// references and the HTML entity names.
	Names names.Resolver
	// Compact merges husband and wife into the union compartment.
	Compact bool
	// Reverse points connectors from the parent union to the child.
	Reverse bool
	// Thickness is the edge pen width. Values below 1 mean 1.
	Thickness int
}

// labelEscaper protects the characters that have meaning inside a record
// label and inside a quoted DOT string.
var labelEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"{", `\{`,
	"}", `\}`,
	"|", `\|`,
	"<", `\<`,
	">", `\>`,
	"\n", `\n`,
)

// dotEntities maps XML-only entities to forms Graphviz understands.
var dotEntities = strings.NewReplacer("&apos;", "&#39;")

type writer struct {
	rs       *records.Set
	sel      *selection.Set
	opts     Options
	resolver names.Resolver

	n       int
	unions  map[records.ID]string
	handles *render.Handles
}

// Write streams the digraph for sel to w.
func Write(w io.Writer, rs *records.Set, sel *selection.Set, opts Options) error {
	if opts.Thickness < 1 {
		opts.Thickness = 1
	}
	resolver := opts.Names
	resolver.Style = records.StyleMarkup

	dw := &writer{
		rs:       rs,
		sel:      sel,
		opts:     opts,
		resolver: resolver,
		unions:   make(map[records.ID]string),
		handles:  render.NewHandles(),
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("digraph family {\n")
	bw.WriteString("node [shape=record];\n")
	bw.WriteString("rankdir=LR;\n")
	fmt.Fprintf(bw, "edge [penwidth=%d];\n\n", opts.Thickness)

	dw.writeUnions(bw)
	dw.writeSingles(bw)
	bw.WriteString("\n")
	dw.writeConnectors(bw)
	bw.WriteString("}\n")
	return bw.Flush()
}

// writeUnions draws each selected union once, walking people in selection
// order so a family appears next to the first of its partners. Unions never
// reached through a selected partner are drawn afterwards.
func (dw *writer) writeUnions(w *bufio.Writer) {
	for _, id := range dw.sel.Individuals() {
		i, ok := dw.rs.Individual(id)
		if !ok {
			continue
		}
		for _, famID := range i.SpouseIn {
			dw.drawUnion(w, famID)
		}
	}
	for _, famID := range dw.sel.Unions() {
		dw.drawUnion(w, famID)
	}
}

func (dw *writer) drawUnion(w *bufio.Writer, famID records.ID) {
	if !dw.sel.HasUnion(famID) {
		return
	}
	if _, drawn := dw.unions[famID]; drawn {
		return
	}
	u, ok := dw.rs.Union(famID)
	if !ok {
		return
	}

	tag := render.Tag("f", dw.n)
	dw.n++
	dw.unions[famID] = tag

	husband := dw.partnerName(u.Husband)
	wife := dw.partnerName(u.Wife)

	if dw.opts.Compact {
		fmt.Fprintf(w, "%s [label=\"<%s>%s\\n%s\"];\n", tag, render.PortUnion, husband, wife)
		dw.register(u.Husband, render.Handle{Tag: tag, Port: render.PortUnion})
		dw.register(u.Wife, render.Handle{Tag: tag, Port: render.PortUnion})
		return
	}

	fmt.Fprintf(w, "%s [label=\"<%s>%s|<%s>|<%s>%s\"];\n",
		tag, render.PortHusband, husband, render.PortUnion, render.PortWife, wife)
	dw.register(u.Husband, render.Handle{Tag: tag, Port: render.PortHusband})
	dw.register(u.Wife, render.Handle{Tag: tag, Port: render.PortWife})
}

func (dw *writer) register(id records.ID, h render.Handle) {
	if id == "" || !dw.sel.HasIndividual(id) {
		return
	}
	dw.handles.Set(id, h)
}

// partnerName resolves a partner slot. An empty slot or a dangling reference
// renders as "none".
func (dw *writer) partnerName(id records.ID) string {
	var i *records.Individual
	if id != "" {
		i, _ = dw.rs.Individual(id)
	}
	return escape(dw.resolver.Name(i))
}

func (dw *writer) writeSingles(w *bufio.Writer) {
	for _, id := range dw.sel.Individuals() {
		if _, ok := dw.handles.Get(id); ok {
			continue
		}
		i, ok := dw.rs.Individual(id)
		if !ok {
			continue
		}
		tag := render.Tag("i", dw.n)
		dw.n++
		dw.handles.Set(id, render.Handle{Tag: tag, Port: render.PortIndividual})
		fmt.Fprintf(w, "%s [label=\"<%s>%s\"];\n", tag, render.PortIndividual, escape(dw.resolver.Name(i)))
	}
}

func (dw *writer) writeConnectors(w *bufio.Writer) {
	for _, id := range dw.sel.Individuals() {
		i, ok := dw.rs.Individual(id)
		if !ok {
			continue
		}
		famID, ok := i.ParentUnion()
		if !ok {
			continue
		}
		fam, ok := dw.unions[famID]
		if !ok {
			continue
		}
		child, ok := dw.handles.Get(id)
		if !ok {
			continue
		}
		parent := render.Handle{Tag: fam, Port: render.PortUnion}

		if dw.opts.Reverse {
			fmt.Fprintf(w, "%s -> %s;\n", parent, child)
		} else {
			fmt.Fprintf(w, "%s -> %s;\n", child, parent)
		}
	}
}

func escape(s string) string {
	return labelEscaper.Replace(dotEntities.Replace(s))
}
