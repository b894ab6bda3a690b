// Package locate resolves user-supplied person identifiers against a record set.
package locate

import (
	"strings"

	"github.com/matzehuels/gedgraph/pkg/records"
)

// FieldXref selects matching against the native cross-reference id.
const FieldXref = "xref"

// Person finds the individual identified by identifier.
//
// With field [FieldXref] the identifier is normalized by [NormalizeXref] and
// compared case-insensitively with each person's raw source tag. Any other
// field is matched exactly against the secondary field of that name (e.g.
// "refn", "exid"). The first match in source order wins; a miss is reported
// with ok == false.
func Person(s *records.Set, identifier, field string) (*records.Individual, bool) {
	field = strings.ToLower(strings.TrimSpace(field))
	if field == "" || field == FieldXref {
		want := NormalizeXref(identifier)
		for _, i := range s.Individuals() {
			if strings.ToLower(i.Xref) == want {
				return i, true
			}
		}
		return nil, false
	}
	return s.FindByField(field, identifier)
}

// NormalizeXref converts a user-typed id into the lower-cased bracket form
// used for comparison: "5", "I5", "i5" and "@I5@" all become "@i5@". A doubled
// prefix letter ("ii5") is collapsed.
func NormalizeXref(identifier string) string {
	tag := strings.ToLower(records.IndividualTag)
	id := strings.ToLower(strings.Trim(strings.TrimSpace(identifier), "@"))
	id = tag + id
	for strings.HasPrefix(id, tag+tag) {
		id = id[len(tag):]
	}
	return "@" + id + "@"
}
