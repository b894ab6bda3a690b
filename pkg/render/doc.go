// Package render assigns output identifiers to selected records and hosts
// the serializers that turn a selection into a graph document.
//
// # Overview
//
// Every serializer consumes the same inputs, a [records.Set] and a
// [selection.Set], and builds its own identifier scheme from the registry
// types in this package:
//
//   - [Sequence]: contiguous integer ids shared by people and unions
//     (GraphML node ids n0..nN-1)
//   - [Handle]: a (tag, port) address where several people share one drawn
//     record node (the DOT family records)
//
// Identifier mappings are built fresh for each render and discarded after.
//
// # Serializers
//
//   - [graphml]: GraphML XML with name/color attributes
//   - [dot]: Graphviz record digraph, full or compact, plus SVG rendering
//   - [tree]: nested JSON document for a single rooted direction
//
// [records.Set]: github.com/matzehuels/gedgraph/pkg/records.Set
// [selection.Set]: github.com/matzehuels/gedgraph/pkg/selection.Set
// [graphml]: github.com/matzehuels/gedgraph/pkg/render/graphml
// [dot]: github.com/matzehuels/gedgraph/pkg/render/dot
// [tree]: github.com/matzehuels/gedgraph/pkg/render/tree
package render
