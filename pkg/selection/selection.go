package selection

import (
	"github.com/matzehuels/gedgraph/pkg/errors"
	"github.com/matzehuels/gedgraph/pkg/records"
)

// Set is the outcome of a selection: the individuals and unions to render,
// each in the order they were first added. Membership only grows and an id
// is added at most once.
type Set struct {
	individuals idSet
	unions      idSet
}

type idSet struct {
	order []records.ID
	index map[records.ID]struct{}
}

func (s *idSet) add(id records.ID) bool {
	if s.index == nil {
		s.index = make(map[records.ID]struct{})
	}
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

func (s *idSet) has(id records.ID) bool {
	_, ok := s.index[id]
	return ok
}

// HasIndividual reports whether the person is selected.
func (s *Set) HasIndividual(id records.ID) bool { return s.individuals.has(id) }

// HasUnion reports whether the union is selected.
func (s *Set) HasUnion(id records.ID) bool { return s.unions.has(id) }

// Individuals returns the selected person ids in insertion order.
// The returned slice must not be modified.
func (s *Set) Individuals() []records.ID { return s.individuals.order }

// Unions returns the selected union ids in insertion order.
// The returned slice must not be modified.
func (s *Set) Unions() []records.ID { return s.unions.order }

// IndividualCount returns the number of selected people.
func (s *Set) IndividualCount() int { return len(s.individuals.order) }

// UnionCount returns the number of selected unions.
func (s *Set) UnionCount() int { return len(s.unions.order) }

// Select computes the selection for mode over rs.
//
// ModeAll copies the record set in source order and ignores root. Every other
// mode seeds the selection with root and walks from it; a nil root is a
// CONFIGURATION error reported before any traversal. References to records
// missing from rs are skipped.
func Select(rs *records.Set, mode Mode, root *records.Individual) (*Set, error) {
	w := &walker{records: rs, sel: &Set{}}

	if mode == ModeAll {
		for _, i := range rs.Individuals() {
			w.sel.individuals.add(i.ID)
		}
		for _, u := range rs.Unions() {
			w.sel.unions.add(u.ID)
		}
		return w.sel, nil
	}

	if root == nil {
		return nil, errors.New(errors.ErrCodeConfiguration, "include %s requires a person", mode)
	}
	w.sel.individuals.add(root.ID)

	switch mode {
	case ModeAncestors:
		w.ancestors(root)
	case ModeDescendants:
		w.descendants(root)
	case ModeBranch:
		w.ancestors(root)
		w.descendants(root)
	default:
		return nil, errors.New(errors.ErrCodeConfiguration, "unknown include mode %d", int(mode))
	}
	return w.sel, nil
}

// walker owns the selection being accumulated by the recursive walks.
type walker struct {
	records *records.Set
	sel     *Set
}

// ancestors adds p's parent union and, recursively, each parent not yet
// selected. The membership check stops revisits, so malformed cyclic data
// cannot recurse forever.
func (w *walker) ancestors(p *records.Individual) {
	famID, ok := p.ParentUnion()
	if !ok {
		return
	}
	fam, ok := w.records.Union(famID)
	if !ok {
		return
	}
	w.sel.unions.add(fam.ID)

	for _, parentID := range parentOrder(fam) {
		parent, ok := w.records.Individual(parentID)
		if !ok {
			continue
		}
		if w.sel.individuals.add(parent.ID) {
			w.ancestors(parent)
		}
	}
}

// parentOrder returns the present parents, wife first.
func parentOrder(u *records.Union) []records.ID {
	ids := make([]records.ID, 0, 2)
	if id, ok := u.WifeID(); ok {
		ids = append(ids, id)
	}
	if id, ok := u.HusbandID(); ok {
		ids = append(ids, id)
	}
	return ids
}

// descendants adds every union p is a partner in, each child not yet
// selected (recursively), and p's partner in that union. The partner is
// rendered but not expanded.
func (w *walker) descendants(p *records.Individual) {
	for _, famID := range p.SpouseIn {
		fam, ok := w.records.Union(famID)
		if !ok {
			continue
		}
		w.sel.unions.add(fam.ID)

		for _, childID := range fam.Children {
			child, ok := w.records.Individual(childID)
			if !ok {
				continue
			}
			if w.sel.individuals.add(child.ID) {
				w.descendants(child)
			}
		}

		if other, ok := fam.Partner(p.ID); ok {
			if _, exists := w.records.Individual(other); exists {
				w.sel.individuals.add(other)
			}
		}
	}
}
