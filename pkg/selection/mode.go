package selection

import (
	"strings"

	"github.com/matzehuels/gedgraph/pkg/errors"
)

// Mode selects which people and unions participate in the output graph.
type Mode int

const (
	// ModeAll includes every individual and union in the record set.
	ModeAll Mode = iota
	// ModeAncestors includes the root and everyone reachable upward through
	// child-of unions.
	ModeAncestors
	// ModeDescendants includes the root, its descendants, and the partners in
	// each descendant union.
	ModeDescendants
	// ModeBranch combines ModeAncestors and ModeDescendants from one root.
	ModeBranch
)

// Modes lists the canonical mode names in declaration order.
var Modes = []Mode{ModeAll, ModeAncestors, ModeDescendants, ModeBranch}

var modeAliases = map[string]Mode{
	"all":         ModeAll,
	"ancestors":   ModeAncestors,
	"anc":         ModeAncestors,
	"descendants": ModeDescendants,
	"descendents": ModeDescendants,
	"desc":        ModeDescendants,
	"branch":      ModeBranch,
}

// ParseMode converts a user-supplied include value, including the short
// aliases "anc" and "desc", into a Mode. Matching is case-insensitive.
func ParseMode(s string) (Mode, error) {
	if m, ok := modeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return ModeAll, errors.New(errors.ErrCodeConfiguration,
		"invalid include: %q (must be one of: all, ancestors, descendants, branch)", s)
}

// String returns the canonical mode name.
func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeAncestors:
		return "ancestors"
	case ModeDescendants:
		return "descendants"
	case ModeBranch:
		return "branch"
	}
	return "unknown"
}

// NeedsRoot reports whether the mode traverses from a root person.
func (m Mode) NeedsRoot() bool { return m != ModeAll }
