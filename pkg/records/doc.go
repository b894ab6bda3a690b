// Package records provides the read-only genealogical record model that the
// rest of gedgraph consumes.
//
// # Overview
//
// A [Set] holds individuals and family unions in source-file order. It is
// produced once per run, by the GEDCOM reader in [gedcom] or by decoding a
// previously exported record-set document with [ReadJSON], and is never
// mutated afterwards.
//
// Optional relationships are explicit: [Individual.ParentUnion],
// [Union.HusbandID] and [Union.WifeID] return a (value, ok) pair instead of
// relying on zero values at call sites.
//
// # JSON Format
//
// The record-set document has two top-level arrays:
//
//	{
//	  "individuals": [
//	    {"id": "I1", "xref": "@I1@", "names": [{"plain": "John /Smith/"}], "fams": ["F1"]}
//	  ],
//	  "families": [
//	    {"id": "F1", "husb": "I1", "chil": ["I3"]}
//	  ]
//	}
//
// The "individuals" key is required; "families" may be omitted.
//
// [gedcom]: github.com/matzehuels/gedgraph/pkg/gedcom
package records
