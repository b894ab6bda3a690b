// Package selection decides which individuals and unions appear in the
// output graph.
//
// # Modes
//
//   - [ModeAll]: every record, in source order, without traversal
//   - [ModeAncestors]: the root plus everyone reached upward through child-of unions
//   - [ModeDescendants]: the root plus its descendants and their partners
//   - [ModeBranch]: both walks from the same root
//
// The two walks are recursive over the record graph. The accumulating [Set]
// is owned by an explicit walker value rather than package state, and every
// addition is guarded by a membership check so each id is added once and
// cyclic input (a person listed as their own ancestor, for example) cannot
// loop forever.
//
// Partners reached through a descendant's union are selected so the union
// renders with both partners, but their own descendants are not expanded.
//
//	root, _ := locate.Person(set, "I1", locate.FieldXref)
//	sel, err := selection.Select(set, selection.ModeDescendants, root)
package selection
