package records

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/gedgraph/pkg/errors"
)

type document struct {
	Individuals *[]individual `json:"individuals"`
	Families    []union       `json:"families,omitempty"`
}

type name struct {
	Plain  string `json:"plain"`
	Markup string `json:"markup,omitempty"`
}

type event struct {
	Date string `json:"date,omitempty"`
	Year int    `json:"year,omitempty"`
}

type individual struct {
	ID        ID                `json:"id"`
	Xref      string            `json:"xref,omitempty"`
	Names     []name            `json:"names,omitempty"`
	Sex       string            `json:"sex,omitempty"`
	ChildOf   []ID              `json:"famc,omitempty"`
	SpouseIn  []ID              `json:"fams,omitempty"`
	Births    []event           `json:"birth,omitempty"`
	Deaths    []event           `json:"death,omitempty"`
	BestBirth *int              `json:"best_birth,omitempty"`
	BestDeath *int              `json:"best_death,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

type union struct {
	ID       ID     `json:"id"`
	Xref     string `json:"xref,omitempty"`
	Husband  ID     `json:"husb,omitempty"`
	Wife     ID     `json:"wife,omitempty"`
	Children []ID   `json:"chil,omitempty"`
}

// ReadJSON decodes a record-set document from r.
//
// It returns an INPUT_SHAPE error if the document is malformed, lacks the
// "individuals" key, or contains duplicate or empty record ids. A name
// without a markup variant gets one derived with [Markup]. When best_birth or
// best_death is omitted the first event is used.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Set, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInputShape, err, "decode record set")
	}
	if doc.Individuals == nil {
		return nil, errors.New(errors.ErrCodeInputShape, "record set has no individuals key")
	}

	s := NewSet()
	for _, in := range *doc.Individuals {
		if err := s.AddIndividual(in.toIndividual()); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInputShape, err, "individual %q", in.ID)
		}
	}
	for _, fam := range doc.Families {
		u := Union{ID: fam.ID, Xref: fam.Xref, Husband: fam.Husband, Wife: fam.Wife, Children: fam.Children}
		if err := s.AddUnion(u); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInputShape, err, "family %q", fam.ID)
		}
	}
	return s, nil
}

func (in individual) toIndividual() Individual {
	ind := Individual{
		ID:        in.ID,
		Xref:      in.Xref,
		Sex:       in.Sex,
		ChildOf:   in.ChildOf,
		SpouseIn:  in.SpouseIn,
		Fields:    in.Fields,
		BestBirth: bestIndex(in.BestBirth, len(in.Births)),
		BestDeath: bestIndex(in.BestDeath, len(in.Deaths)),
	}
	if ind.Xref == "" {
		ind.Xref = "@" + string(in.ID) + "@"
	}
	for _, n := range in.Names {
		markup := n.Markup
		if markup == "" {
			markup = Markup(n.Plain)
		}
		ind.Names = append(ind.Names, Name{Plain: n.Plain, Markup: markup})
	}
	for _, e := range in.Births {
		ind.Births = append(ind.Births, Event(e))
	}
	for _, e := range in.Deaths {
		ind.Deaths = append(ind.Deaths, Event(e))
	}
	return ind
}

func bestIndex(p *int, n int) int {
	if p != nil {
		return *p
	}
	if n > 0 {
		return 0
	}
	return -1
}

// WriteJSON encodes s as an indented record-set document.
// The output can be re-imported with [ReadJSON].
func WriteJSON(s *Set, w io.Writer) error {
	individuals := make([]individual, 0, s.IndividualCount())
	for _, i := range s.Individuals() {
		in := individual{
			ID:       i.ID,
			Xref:     i.Xref,
			Sex:      i.Sex,
			ChildOf:  i.ChildOf,
			SpouseIn: i.SpouseIn,
			Fields:   i.Fields,
		}
		for _, n := range i.Names {
			in.Names = append(in.Names, name{Plain: n.Plain, Markup: n.Markup})
		}
		for _, e := range i.Births {
			in.Births = append(in.Births, event(e))
		}
		for _, e := range i.Deaths {
			in.Deaths = append(in.Deaths, event(e))
		}
		if len(i.Births) > 0 {
			b := i.BestBirth
			in.BestBirth = &b
		}
		if len(i.Deaths) > 0 {
			d := i.BestDeath
			in.BestDeath = &d
		}
		if len(in.Fields) == 0 {
			in.Fields = nil
		}
		individuals = append(individuals, in)
	}

	doc := document{Individuals: &individuals}
	for _, u := range s.Unions() {
		doc.Families = append(doc.Families, union{
			ID: u.ID, Xref: u.Xref, Husband: u.Husband, Wife: u.Wife, Children: u.Children,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
