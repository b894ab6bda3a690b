// Package tree writes a rooted selection as a nested JSON document.
//
// Two shapes exist, mirroring the two selection walks. The ancestors view
// nests each person's parents under "child-of":
//
//	{"I3": {"id": "I3", "name": "Tom Smith",
//	        "child-of": {"union": "F1", "parents": [{"id": "I1", ...}, {"id": "I2", ...}]}}}
//
// The descendants view nests each person's unions under "families", with the
// partner and the children of that union:
//
//	{"I1": {"id": "I1", "name": "John Smith",
//	        "families": [{"union": "F1", "partner": {"id": "I2", "name": "Ann Lind"},
//	                      "children": [{"id": "I3", ...}]}]}}
//
// A branch selection is written in the ancestors view.
package tree

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/gedgraph/pkg/errors"
	"github.com/matzehuels/gedgraph/pkg/names"
	"github.com/matzehuels/gedgraph/pkg/records"
	"github.com/matzehuels/gedgraph/pkg/selection"
)

// View is the shape of the nested document.
type View int

const (
	ViewAncestors View = iota
	ViewDescendants
)

// ViewFor returns the document shape for a selection mode. ModeAll has no
// root and no nested shape.
func ViewFor(mode selection.Mode) (View, error) {
	switch mode {
	case selection.ModeAncestors, selection.ModeBranch:
		return ViewAncestors, nil
	case selection.ModeDescendants:
		return ViewDescendants, nil
	case selection.ModeAll:
		return 0, errors.New(errors.ErrCodeConfiguration, "json output needs a single person, not include %s", mode)
	}
	return 0, errors.New(errors.ErrCodeConfiguration, "unknown include mode %d", int(mode))
}

// Document is the top-level object, keyed by the root person's id.
type Document map[records.ID]*Person

// Person is one node of the tree. Exactly one of ChildOf and Families is
// used, depending on the view.
type Person struct {
	ID       records.ID `json:"id"`
	Name     string     `json:"name"`
	ChildOf  *Parentage `json:"child-of,omitempty"`
	Families []Family   `json:"families,omitempty"`
}

// Parentage is the union a person was born into and its selected parents,
// husband first.
type Parentage struct {
	Union   records.ID `json:"union"`
	Parents []*Person  `json:"parents"`
}

// Family is one union of a person with the partner and the selected children.
type Family struct {
	Union    records.ID `json:"union"`
	Partner  *Partner   `json:"partner,omitempty"`
	Children []*Person  `json:"children"`
}

// Partner identifies the other partner of a union without expanding them.
type Partner struct {
	ID   records.ID `json:"id"`
	Name string     `json:"name"`
}

// builder walks from the root, restricted to the selection. The path set
// holds the people on the current branch so malformed cyclic data stops
// instead of recursing forever.
type builder struct {
	rs       *records.Set
	sel      *selection.Set
	resolver names.Resolver
	path     map[records.ID]bool
}

// Build assembles the document for root in the given view. Names are
// rendered in plain style.
func Build(rs *records.Set, sel *selection.Set, root *records.Individual, view View, resolver names.Resolver) Document {
	resolver.Style = records.StylePlain
	b := &builder{rs: rs, sel: sel, resolver: resolver, path: make(map[records.ID]bool)}

	var p *Person
	if view == ViewDescendants {
		p = b.descendants(root)
	} else {
		p = b.ancestors(root)
	}
	return Document{root.ID: p}
}

// Write builds the document for root and writes it as indented JSON.
func Write(w io.Writer, rs *records.Set, sel *selection.Set, root *records.Individual, mode selection.Mode, resolver names.Resolver) error {
	if root == nil {
		return errors.New(errors.ErrCodeConfiguration, "json output needs a person")
	}
	view, err := ViewFor(mode)
	if err != nil {
		return err
	}
	doc := Build(rs, sel, root, view, resolver)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

func (b *builder) node(i *records.Individual) *Person {
	return &Person{ID: i.ID, Name: b.resolver.Name(i)}
}

func (b *builder) ancestors(i *records.Individual) *Person {
	p := b.node(i)
	b.path[i.ID] = true
	defer delete(b.path, i.ID)

	famID, ok := i.ParentUnion()
	if !ok || !b.sel.HasUnion(famID) {
		return p
	}
	fam, ok := b.rs.Union(famID)
	if !ok {
		return p
	}

	p.ChildOf = &Parentage{Union: fam.ID, Parents: []*Person{}}
	for _, id := range []records.ID{fam.Husband, fam.Wife} {
		parent, ok := b.member(id)
		if !ok {
			continue
		}
		p.ChildOf.Parents = append(p.ChildOf.Parents, b.ancestors(parent))
	}
	return p
}

func (b *builder) descendants(i *records.Individual) *Person {
	p := b.node(i)
	b.path[i.ID] = true
	defer delete(b.path, i.ID)

	for _, famID := range i.SpouseIn {
		if !b.sel.HasUnion(famID) {
			continue
		}
		fam, ok := b.rs.Union(famID)
		if !ok {
			continue
		}

		f := Family{Union: fam.ID, Children: []*Person{}}
		if id, ok := fam.Partner(i.ID); ok {
			if partner, ok := b.rs.Individual(id); ok {
				f.Partner = &Partner{ID: partner.ID, Name: b.resolver.Name(partner)}
			}
		}
		for _, id := range fam.Children {
			child, ok := b.member(id)
			if !ok {
				continue
			}
			f.Children = append(f.Children, b.descendants(child))
		}
		p.Families = append(p.Families, f)
	}
	return p
}

// member returns the person for id when it is selected, present in the
// record set, and not already on the current path.
func (b *builder) member(id records.ID) (*records.Individual, bool) {
	if id == "" || b.path[id] || !b.sel.HasIndividual(id) {
		return nil, false
	}
	return b.rs.Individual(id)
}
