package records

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidID is returned by [Set.AddIndividual] and [Set.AddUnion] when
	// the record ID is empty.
	ErrInvalidID = errors.New("record ID must not be empty")

	// ErrDuplicateID is returned when a record with the same ID already exists
	// in the set. Individuals and unions have separate ID spaces.
	ErrDuplicateID = errors.New("duplicate record ID")
)

// UnknownName is the sentinel value a reader stores when a person has no
// usable name. The name resolver renders it as "unknown".
const UnknownName = "<unknown>"

// IndividualTag is the leading letter of individual cross-reference ids
// (the "I" in "@I12@").
const IndividualTag = "I"

// ID is an opaque record identity, stable within one run.
// Readers use the cross-reference id without its "@" delimiters (e.g. "I12").
type ID string

// TextStyle selects one of the text variants stored with every name record.
type TextStyle int

const (
	// StylePlain is the display text as it appeared in the source file.
	StylePlain TextStyle = iota
	// StyleMarkup is the text with markup-significant characters escaped as
	// entities, safe to embed in XML element content.
	StyleMarkup
)

// String returns the style name used in configuration and logs.
func (s TextStyle) String() string {
	if s == StyleMarkup {
		return "markup"
	}
	return "plain"
}

// Name is one name record with its text-style variants.
// Values keep the GEDCOM surname convention ("John /Smith/").
type Name struct {
	Plain  string
	Markup string
}

// Text returns the variant for style s.
func (n Name) Text(s TextStyle) string {
	if s == StyleMarkup {
		return n.Markup
	}
	return n.Plain
}

// Markup derives the markup variant of a plain name: markup-significant
// characters become entities and non-ASCII runes numeric references.
func Markup(plain string) string {
	var b strings.Builder
	for _, r := range plain {
		switch {
		case r == '&':
			b.WriteString("&amp;")
		case r == '<':
			b.WriteString("&lt;")
		case r == '>':
			b.WriteString("&gt;")
		case r > 127:
			fmt.Fprintf(&b, "&#%d;", r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Event is a dated fact such as a birth or death. Year is 0 when the date
// carries no recognizable year.
type Event struct {
	Date string
	Year int
}

// Individual is a person record. The zero value is not usable; ID must be set
// before adding it to a [Set].
type Individual struct {
	ID       ID
	Xref     string // raw source tag including delimiters, e.g. "@I12@"
	Names    []Name
	Sex      string
	ChildOf  []ID // unions this person is a child of; only the first is used
	SpouseIn []ID // unions this person is a partner in, in source order

	Births    []Event
	Deaths    []Event
	BestBirth int // index into Births, -1 when there is none
	BestDeath int // index into Deaths, -1 when there is none

	// Fields holds secondary single-valued tags keyed by lower-cased tag name
	// (e.g. "refn", "exid", "_uid").
	Fields map[string]string
}

// ParentUnion returns the union this person is a child of.
func (i *Individual) ParentUnion() (ID, bool) {
	if len(i.ChildOf) == 0 {
		return "", false
	}
	return i.ChildOf[0], true
}

// PrimaryName returns the first name record, or the unknown-name sentinel
// when the person has none.
func (i *Individual) PrimaryName() Name {
	if len(i.Names) == 0 {
		return Name{Plain: UnknownName, Markup: UnknownName}
	}
	return i.Names[0]
}

// BirthYear returns the year of the best birth event.
func (i *Individual) BirthYear() (int, bool) {
	return bestYear(i.Births, i.BestBirth)
}

// DeathYear returns the year of the best death event.
func (i *Individual) DeathYear() (int, bool) {
	return bestYear(i.Deaths, i.BestDeath)
}

// Field returns a secondary field by name. The lookup is case-insensitive.
func (i *Individual) Field(name string) (string, bool) {
	v, ok := i.Fields[strings.ToLower(name)]
	return v, ok
}

func bestYear(events []Event, best int) (int, bool) {
	if best < 0 || best >= len(events) {
		return 0, false
	}
	if y := events[best].Year; y != 0 {
		return y, true
	}
	return 0, false
}

// Union is a family record: up to two partners and an ordered child list.
// Husband and Wife are empty when the slot is absent.
type Union struct {
	ID       ID
	Xref     string
	Husband  ID
	Wife     ID
	Children []ID
}

// HusbandID returns the husband reference if present.
func (u *Union) HusbandID() (ID, bool) { return u.Husband, u.Husband != "" }

// WifeID returns the wife reference if present.
func (u *Union) WifeID() (ID, bool) { return u.Wife, u.Wife != "" }

// Partner returns the other partner of id in this union. It reports false
// when id is not a partner or the other slot is empty.
func (u *Union) Partner(id ID) (ID, bool) {
	switch id {
	case "":
		return "", false
	case u.Husband:
		return u.WifeID()
	case u.Wife:
		return u.HusbandID()
	}
	return "", false
}

// Set is an ordered collection of individuals and unions. Iteration follows
// insertion order, which readers keep equal to source-file order.
//
// A Set is built once by a reader and treated as read-only afterwards.
// It is not safe for concurrent modification.
type Set struct {
	individuals map[ID]*Individual
	unions      map[ID]*Union
	indiOrder   []*Individual
	unionOrder  []*Union
}

// NewSet creates an empty record set.
func NewSet() *Set {
	return &Set{
		individuals: make(map[ID]*Individual),
		unions:      make(map[ID]*Union),
	}
}

// AddIndividual appends a person to the set. It returns [ErrInvalidID] for an
// empty ID and [ErrDuplicateID] if the ID is already present.
func (s *Set) AddIndividual(i Individual) error {
	if i.ID == "" {
		return ErrInvalidID
	}
	if _, exists := s.individuals[i.ID]; exists {
		return ErrDuplicateID
	}
	if i.Fields == nil {
		i.Fields = map[string]string{}
	}
	if i.Births == nil && i.BestBirth == 0 {
		i.BestBirth = -1
	}
	if i.Deaths == nil && i.BestDeath == 0 {
		i.BestDeath = -1
	}
	p := &i
	s.individuals[p.ID] = p
	s.indiOrder = append(s.indiOrder, p)
	return nil
}

// AddUnion appends a union to the set with the same rules as AddIndividual.
func (s *Set) AddUnion(u Union) error {
	if u.ID == "" {
		return ErrInvalidID
	}
	if _, exists := s.unions[u.ID]; exists {
		return ErrDuplicateID
	}
	p := &u
	s.unions[p.ID] = p
	s.unionOrder = append(s.unionOrder, p)
	return nil
}

// Individual looks up a person by ID.
func (s *Set) Individual(id ID) (*Individual, bool) {
	i, ok := s.individuals[id]
	return i, ok
}

// Union looks up a union by ID.
func (s *Set) Union(id ID) (*Union, bool) {
	u, ok := s.unions[id]
	return u, ok
}

// Individuals returns all people in source order.
// The returned slice must not be modified.
func (s *Set) Individuals() []*Individual { return s.indiOrder }

// Unions returns all unions in source order.
// The returned slice must not be modified.
func (s *Set) Unions() []*Union { return s.unionOrder }

// IndividualCount returns the number of people in the set.
func (s *Set) IndividualCount() int { return len(s.indiOrder) }

// UnionCount returns the number of unions in the set.
func (s *Set) UnionCount() int { return len(s.unionOrder) }

// FindByField returns the first individual, in source order, whose secondary
// field named field equals value exactly. The field name is case-insensitive.
func (s *Set) FindByField(field, value string) (*Individual, bool) {
	field = strings.ToLower(field)
	for _, i := range s.indiOrder {
		if v, ok := i.Fields[field]; ok && v == value {
			return i, true
		}
	}
	return nil, false
}
