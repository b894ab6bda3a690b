// Package pkg holds the libraries behind the gedgraph command.
//
// # Overview
//
// gedgraph reads a genealogy file and writes a graph document describing the
// whole tree or a rooted slice of it. The packages are layered so that each
// step can be used on its own:
//
//	GEDCOM file / record-set JSON
//	         ↓
//	    [gedcom] or [records] (read into a records.Set)
//	         ↓
//	    [locate] (resolve --personid to a root person)
//	         ↓
//	    [selection] (all, ancestors, descendants, branch)
//	         ↓
//	    [render/graphml], [render/dot], [render/tree]
//	         ↓
//	GraphML / DOT / JSON / SVG
//
// [pipeline] runs the steps in order with caching, hooks and validation;
// the CLI is a thin layer over it.
//
// # Quick Start
//
//	rs, _ := gedcom.ReadFile("family.ged")
//	root, _ := locate.Person(rs, "I12", locate.FieldXref)
//	sel, _ := selection.Select(rs, selection.ModeDescendants, root)
//	_ = graphml.Write(os.Stdout, rs, sel, graphml.Options{})
//
// # Supporting Packages
//
// [names] - display names with surname markers removed and optional years.
//
// [cache] - on-disk cache of parsed record sets keyed by file content.
//
// [observability] - hooks fired around load, select and render.
//
// [errors] - coded errors shared by every package.
//
// [buildinfo] - version information for the command.
//
// [gedcom]: https://pkg.go.dev/github.com/matzehuels/gedgraph/pkg/gedcom
// [records]: https://pkg.go.dev/github.com/matzehuels/gedgraph/pkg/records
// [locate]: https://pkg.go.dev/github.com/matzehuels/gedgraph/pkg/locate
// [selection]: https://pkg.go.dev/github.com/matzehuels/gedgraph/pkg/selection
// [render/graphml]: https://pkg.go.dev/github.com/matzehuels/gedgraph/pkg/render/graphml
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/gedgraph/pkg/render/dot
// [render/tree]: https://pkg.go.dev/github.com/matzehuels/gedgraph/pkg/render/tree
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gedgraph/pkg/pipeline
// [names]: https://pkg.go.dev/github.com/matzehuels/gedgraph/pkg/names
// [cache]: https://pkg.go.dev/github.com/matzehuels/gedgraph/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/gedgraph/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/gedgraph/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/gedgraph/pkg/buildinfo
package pkg
