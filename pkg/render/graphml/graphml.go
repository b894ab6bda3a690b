// Package graphml writes a selection as a GraphML document.
//
// People and unions become nodes carrying a name (d0) and a color (d1).
// Each selected union links to its selected children and from its selected
// parents; edges carry a role color (d2). Node ids run n0..nN-1 with people
// first, then unions; edge ids run e0..eM-1 independently.
package graphml

import (
	"bufio"
	"fmt"
	"io"

	"github.com/matzehuels/gedgraph/pkg/names"
	"github.com/matzehuels/gedgraph/pkg/records"
	"github.com/matzehuels/gedgraph/pkg/render"
	"github.com/matzehuels/gedgraph/pkg/selection"
)

// Colors and labels of the fixed attribute schema.
const (
	NameColor   = "olive"
	UnionColor  = "lightsalmon"
	ParentColor = "black"
	ChildColor  = "orange"
	UnionLabel  = "@"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>
<graphml xmlns="http://graphml.graphdrawing.org/xmlns"
      xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
      xsi:schemaLocation="http://graphml.graphdrawing.org/xmlns
        http://graphml.graphdrawing.org/xmlns/1.0/graphml.xsd">
<key id="d0" for="node" attr.name="name" attr.type="string">
  <default>@</default>
</key>
<key id="d1" for="node" attr.name="color" attr.type="string">
  <default>green</default>
</key>
<key id="d2" for="edge" attr.name="color" attr.type="string">
  <default>orange</default>
</key>
`

// Options configures GraphML output.
type Options struct {
	// Names renders person labels. The style is always forced to markup so
	// labels are safe inside XML.
	Names names.Resolver
	// Undirected emits edgedefault="undirected". The default directed form
	// distinguishes parent and child edges without relying on color.
	Undirected bool
}

// Write streams the GraphML document for sel to w.
func Write(w io.Writer, rs *records.Set, sel *selection.Set, opts Options) error {
	resolver := opts.Names
	resolver.Style = records.StyleMarkup

	bw := bufio.NewWriter(w)
	edgeDefault := "directed"
	if opts.Undirected {
		edgeDefault = "undirected"
	}

	bw.WriteString(header)
	fmt.Fprintf(bw, "<graph id=\"G\" edgedefault=%q>\n", edgeDefault)

	seq := render.NewSequence()
	for _, id := range sel.Individuals() {
		i, _ := rs.Individual(id)
		writeNode(bw, seq.Assign(render.KindIndividual, id), NameColor, resolver.Name(i))
	}
	for _, id := range sel.Unions() {
		writeNode(bw, seq.Assign(render.KindUnion, id), UnionColor, UnionLabel)
	}

	edge := 0
	for _, id := range sel.Unions() {
		u, ok := rs.Union(id)
		if !ok {
			continue
		}
		fam, _ := seq.Lookup(render.KindUnion, id)
		for _, child := range u.Children {
			if n, ok := seq.Lookup(render.KindIndividual, child); ok {
				writeEdge(bw, edge, fam, n, ChildColor)
				edge++
			}
		}
		for _, parent := range []records.ID{u.Husband, u.Wife} {
			if parent == "" {
				continue
			}
			if n, ok := seq.Lookup(render.KindIndividual, parent); ok {
				writeEdge(bw, edge, n, fam, ParentColor)
				edge++
			}
		}
	}

	bw.WriteString("</graph>\n</graphml>\n")
	return bw.Flush()
}

func writeNode(w *bufio.Writer, n int, color, name string) {
	fmt.Fprintf(w, "<node id=\"n%d\">\n", n)
	fmt.Fprintf(w, "  <data key=\"d0\">%s</data>\n", name)
	fmt.Fprintf(w, "  <data key=\"d1\">%s</data>\n", color)
	w.WriteString("</node>\n")
}

func writeEdge(w *bufio.Writer, n, source, target int, color string) {
	fmt.Fprintf(w, "<edge id=\"e%d\" source=\"n%d\" target=\"n%d\">\n", n, source, target)
	fmt.Fprintf(w, "  <data key=\"d2\">%s</data>\n", color)
	w.WriteString("</edge>\n")
}
