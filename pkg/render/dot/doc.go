// Package dot writes a selection as a Graphviz digraph built from
// record-shaped nodes.
//
// # Layout
//
// Every selected union is one record node tagged fN. In the full variant the
// record has three compartments, husband, union and wife, addressed by the
// ports h, u and w:
//
//	f0 [label="<h>John Smith|<u>|<w>Ann Lind"];
//
// The compact variant puts both names in the single u compartment, which
// halves the number of drawn boxes on large trees:
//
//	f0 [label="<u>John Smith\nAnn Lind"];
//
// People who are partners in no selected union are drawn as their own record
// iN with port i. Connectors run from the compartment where a child is drawn
// to the u port of the child's parent union, or the other way round with
// [Options.Reverse].
//
// Tag numbers are local to one [Write] call; unions and singles share the
// counter.
//
// # Rendering
//
// [RenderSVG] lays the document out in-process with Graphviz compiled to
// WebAssembly, so no system Graphviz install is needed.
package dot
