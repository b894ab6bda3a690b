// Package names turns person records into display strings.
package names

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/gedgraph/pkg/records"
)

const (
	// Unknown is returned for people whose name is the reader's unknown-name sentinel.
	Unknown = "unknown"
	// None is returned for an absent person reference.
	None = "none"
)

// surnameSuffixRE matches the last slash and everything after it, which
// removes the closing surname delimiter together with any trailing suffix.
var surnameSuffixRE = regexp.MustCompile(`/[^/]*$`)

var markupQuotes = strings.NewReplacer(`"`, "&quot;", "'", "&apos;")

// Resolver renders names in one text style, optionally with a year range.
// The zero value renders plain names without dates.
type Resolver struct {
	Style     records.TextStyle
	ShowDates bool
}

// Name returns the display string for i.
//
// A nil person yields [None] and the unknown-name sentinel yields [Unknown].
// Otherwise the slash-delimited surname markers are removed and the result is
// trimmed. [records.StyleMarkup] also escapes double quotes and apostrophes so
// the value is safe inside attribute values. With ShowDates, a "(birth-death)"
// range is appended on a new line when at least one year is known.
func (r Resolver) Name(i *records.Individual) string {
	if i == nil {
		return None
	}

	name := Clean(i.PrimaryName().Text(r.Style))
	if r.Style == records.StyleMarkup && name != Unknown {
		name = markupQuotes.Replace(name)
	}
	if r.ShowDates {
		if span := Years(i); span != "" {
			name += "\n" + span
		}
	}
	return name
}

// Clean applies the surname-marker transform to a raw name value.
func Clean(raw string) string {
	if strings.Contains(raw, records.UnknownName) {
		return Unknown
	}
	s := surnameSuffixRE.ReplaceAllString(raw, "")
	return strings.TrimSpace(strings.ReplaceAll(s, "/", ""))
}

// Years formats the best birth and death years as "(1850-1920)". Unknown
// sides are left empty; it returns "" when neither year is known.
func Years(i *records.Individual) string {
	birth, hasBirth := i.BirthYear()
	death, hasDeath := i.DeathYear()
	if !hasBirth && !hasDeath {
		return ""
	}

	var b strings.Builder
	b.WriteByte('(')
	if hasBirth {
		b.WriteString(strconv.Itoa(birth))
	}
	b.WriteByte('-')
	if hasDeath {
		b.WriteString(strconv.Itoa(death))
	}
	b.WriteByte(')')
	return b.String()
}
