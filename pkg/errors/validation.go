package errors

import (
	"regexp"
	"unicode"
)

const maxIdentifierLength = 256

var fieldNameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidatePersonID checks a user-supplied person identifier before lookup.
// Any printable text is accepted, since secondary fields such as EXID may
// hold free-form values, but empty, oversized or control-character input is
// rejected as a configuration error.
func ValidatePersonID(id string) error {
	if id == "" {
		return New(ErrCodeConfiguration, "person id cannot be empty")
	}
	if len(id) > maxIdentifierLength {
		return New(ErrCodeConfiguration, "person id too long (max %d characters)", maxIdentifierLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeConfiguration, "person id contains control characters")
		}
	}
	return nil
}

// ValidateFieldName checks the name of the field a person id is matched
// against. Field names are GEDCOM tags: letters, digits and underscores,
// optionally with a leading underscore for custom tags ("_UID").
func ValidateFieldName(name string) error {
	if !fieldNameRE.MatchString(name) {
		return New(ErrCodeConfiguration, "invalid id field %q: use a tag name such as xref, refn or _uid", name)
	}
	return nil
}
