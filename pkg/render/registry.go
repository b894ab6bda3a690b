package render

import (
	"strconv"

	"github.com/matzehuels/gedgraph/pkg/records"
)

// Kind distinguishes the two record namespaces. Individual and union ids may
// collide, so registries key on both.
type Kind int

const (
	KindIndividual Kind = iota
	KindUnion
)

type key struct {
	kind Kind
	id   records.ID
}

// Sequence hands out contiguous integer ids starting at 0. Assigning the same
// record twice returns the id it already has, so the id space has no gaps and
// no reuse.
type Sequence struct {
	next int
	ids  map[key]int
}

// NewSequence creates an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{ids: make(map[key]int)}
}

// Assign returns the id for the record, allocating the next one if needed.
func (s *Sequence) Assign(kind Kind, id records.ID) int {
	k := key{kind, id}
	if n, ok := s.ids[k]; ok {
		return n
	}
	n := s.next
	s.ids[k] = n
	s.next++
	return n
}

// Lookup returns the id previously assigned to the record.
func (s *Sequence) Lookup(kind Kind, id records.ID) (int, bool) {
	n, ok := s.ids[key{kind, id}]
	return n, ok
}

// Len returns the number of ids assigned so far.
func (s *Sequence) Len() int { return s.next }

// Port names a compartment of a record-shaped node.
type Port string

const (
	PortHusband    Port = "h"
	PortUnion      Port = "u"
	PortWife       Port = "w"
	PortIndividual Port = "i"
)

// Handle addresses one compartment of a drawn node.
type Handle struct {
	Tag  string
	Port Port
}

// String formats the handle as "tag:port".
func (h Handle) String() string { return h.Tag + ":" + string(h.Port) }

// Tag builds a node tag from a prefix letter and a number, e.g. "f3".
func Tag(prefix string, n int) string { return prefix + strconv.Itoa(n) }

// Handles maps people to the compartment where they are drawn. The first
// handle registered for a person is kept.
type Handles struct {
	byPerson map[records.ID]Handle
}

// NewHandles creates an empty handle registry.
func NewHandles() *Handles {
	return &Handles{byPerson: make(map[records.ID]Handle)}
}

// Set records h for id unless id already has a handle. It reports whether
// the handle was stored.
func (r *Handles) Set(id records.ID, h Handle) bool {
	if _, ok := r.byPerson[id]; ok {
		return false
	}
	r.byPerson[id] = h
	return true
}

// Get returns the handle registered for id.
func (r *Handles) Get(id records.ID) (Handle, bool) {
	h, ok := r.byPerson[id]
	return h, ok
}
