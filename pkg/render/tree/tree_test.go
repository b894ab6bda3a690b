package tree

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/matzehuels/gedgraph/pkg/errors"
	"github.com/matzehuels/gedgraph/pkg/names"
	"github.com/matzehuels/gedgraph/pkg/records"
	"github.com/matzehuels/gedgraph/pkg/selection"
)

func add(t *testing.T, s *records.Set, id, name string, childOf []records.ID, spouseIn ...records.ID) {
	t.Helper()
	err := s.AddIndividual(records.Individual{
		ID:       records.ID(id),
		Names:    []records.Name{{Plain: name, Markup: name}},
		ChildOf:  childOf,
		SpouseIn: spouseIn,
	})
	if err != nil {
		t.Fatal(err)
	}
}

// remarried: I1 married I2 (F1, child I4) and I3 (F2, child I5).
// I1 is the child of F0 = I6 + I7.
func remarried(t *testing.T) *records.Set {
	t.Helper()
	s := records.NewSet()
	add(t, s, "I1", "John /Smith/", []records.ID{"F0"}, "F1", "F2")
	add(t, s, "I2", "Ann /Lind/", nil, "F1")
	add(t, s, "I3", "Mia /Berg/", nil, "F2")
	add(t, s, "I4", "Tom /Smith/", []records.ID{"F1"})
	add(t, s, "I5", "Lou /Smith/", []records.ID{"F2"})
	add(t, s, "I6", "Carl /Smith/", nil, "F0")
	add(t, s, "I7", "Greta /Holm/", nil, "F0")
	_ = s.AddUnion(records.Union{ID: "F0", Husband: "I6", Wife: "I7", Children: []records.ID{"I1"}})
	_ = s.AddUnion(records.Union{ID: "F1", Husband: "I1", Wife: "I2", Children: []records.ID{"I4"}})
	_ = s.AddUnion(records.Union{ID: "F2", Husband: "I1", Wife: "I3", Children: []records.ID{"I5"}})
	return s
}

func build(t *testing.T, s *records.Set, mode selection.Mode, rootID records.ID) *Person {
	t.Helper()
	root, _ := s.Individual(rootID)
	sel, err := selection.Select(s, mode, root)
	if err != nil {
		t.Fatal(err)
	}
	view, err := ViewFor(mode)
	if err != nil {
		t.Fatal(err)
	}
	doc := Build(s, sel, root, view, names.Resolver{})
	if len(doc) != 1 || doc[rootID] == nil {
		t.Fatalf("document keys = %v, want only %s", doc, rootID)
	}
	return doc[rootID]
}

func TestBuild_TwoMarriages(t *testing.T) {
	p := build(t, remarried(t), selection.ModeDescendants, "I1")

	if p.ChildOf != nil {
		t.Error("descendants view should not carry child-of")
	}
	if len(p.Families) != 2 {
		t.Fatalf("families = %d, want 2", len(p.Families))
	}
	a, b := p.Families[0], p.Families[1]
	if a.Partner == nil || b.Partner == nil || a.Partner.ID == b.Partner.ID {
		t.Fatalf("partners should be distinct: %+v %+v", a.Partner, b.Partner)
	}
	if a.Partner.ID != "I2" || a.Partner.Name != "Ann Lind" {
		t.Errorf("first partner = %+v", a.Partner)
	}
	if len(a.Children) != 1 || a.Children[0].ID != "I4" {
		t.Errorf("F1 children = %+v", a.Children)
	}
	if len(b.Children) != 1 || b.Children[0].ID != "I5" {
		t.Errorf("F2 children = %+v", b.Children)
	}
}

func TestBuild_Ancestors(t *testing.T) {
	p := build(t, remarried(t), selection.ModeAncestors, "I4")

	if p.ChildOf == nil || p.ChildOf.Union != "F1" {
		t.Fatalf("child-of = %+v", p.ChildOf)
	}
	parents := p.ChildOf.Parents
	if len(parents) != 2 || parents[0].ID != "I1" || parents[1].ID != "I2" {
		t.Fatalf("parents = %+v, want husband I1 then wife I2", parents)
	}
	grand := parents[0].ChildOf
	if grand == nil || grand.Union != "F0" || len(grand.Parents) != 2 {
		t.Fatalf("grandparents = %+v", grand)
	}
	if parents[1].ChildOf != nil {
		t.Error("I2 has no parents and should have no child-of")
	}
	if len(parents[0].Families) != 0 {
		t.Error("ancestors view should not carry families")
	}
}

func TestBuild_BranchUsesAncestorsView(t *testing.T) {
	p := build(t, remarried(t), selection.ModeBranch, "I1")
	if p.ChildOf == nil || p.Families != nil {
		t.Errorf("branch should render the ancestors view, got %+v", p)
	}
}

func TestBuild_Cycle(t *testing.T) {
	s := records.NewSet()
	add(t, s, "I1", "A", []records.ID{"F2"}, "F1")
	add(t, s, "I2", "B", []records.ID{"F1"}, "F2")
	_ = s.AddUnion(records.Union{ID: "F1", Husband: "I1", Children: []records.ID{"I2"}})
	_ = s.AddUnion(records.Union{ID: "F2", Husband: "I2", Children: []records.ID{"I1"}})

	p := build(t, s, selection.ModeDescendants, "I1")
	child := p.Families[0].Children[0]
	if child.ID != "I2" {
		t.Fatalf("child = %s", child.ID)
	}
	if len(child.Families) != 1 || len(child.Families[0].Children) != 0 {
		t.Errorf("cycle back to the root should be cut: %+v", child.Families)
	}

	p = build(t, s, selection.ModeAncestors, "I1")
	if got := p.ChildOf.Parents[0].ChildOf.Parents; len(got) != 0 {
		t.Errorf("ancestor cycle should be cut, got %+v", got)
	}
}

func TestWrite(t *testing.T) {
	s := remarried(t)
	root, _ := s.Individual("I4")
	sel, _ := selection.Select(s, selection.ModeAncestors, root)

	var buf bytes.Buffer
	if err := Write(&buf, s, sel, root, selection.ModeAncestors, names.Resolver{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var doc map[string]map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := doc["I4"]["child-of"]; !ok {
		t.Errorf("missing child-of key: %s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("\n  \"I4\": {")) {
		t.Errorf("output not indented: %s", buf.String())
	}
}

func TestWrite_Errors(t *testing.T) {
	s := remarried(t)
	root, _ := s.Individual("I1")
	sel, _ := selection.Select(s, selection.ModeAll, nil)

	err := Write(&bytes.Buffer{}, s, sel, root, selection.ModeAll, names.Resolver{})
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("ModeAll error = %v, want CONFIGURATION", err)
	}
	err = Write(&bytes.Buffer{}, s, sel, nil, selection.ModeAncestors, names.Resolver{})
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("nil root error = %v, want CONFIGURATION", err)
	}
}
