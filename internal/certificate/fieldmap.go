// Package certificate renders graduation certificates from docx templates.
// Templates carry {placeholder} fields; rendering substitutes the matched
// roster attributes plus the request-supplied destination and issue date.
package certificate

import (
	"fmt"
	"time"

	"wathiq/internal/roster"
)

// Gender selects which template a certificate is rendered from. The two
// templates differ in grammatical gender throughout the body text, so this
// is a rendering concern, not a roster attribute.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender accepts the wire forms used by the intake form, including the
// Arabic labels shown to claimants.
func ParseGender(s string) (Gender, error) {
	switch s {
	case "male", "ذكر":
		return GenderMale, nil
	case "female", "انثى", "أنثى":
		return GenderFemale, nil
	default:
		return "", fmt.Errorf("unknown gender %q", s)
	}
}

// Template placeholders beyond the roster attributes.
const (
	FieldDestination = "destination"
	FieldDate        = "date"
)

// issueDateFormat is the day-first form the paper certificate carries.
const issueDateFormat = "02-01-2006"

// templateFields is the full set of roster attributes the templates
// reference. Every one is always present in the map so that a roster row
// with missing columns renders a blank, never a dangling placeholder.
var templateFields = []string{
	roster.AttrFullName,
	roster.AttrTypeOfStudy,
	roster.AttrDepartment,
	roster.AttrSection,
	roster.AttrAverage,
	roster.AttrAppreciation,
	roster.AttrRank,
	roster.AttrTotal,
	roster.AttrTopRank,
}

// FieldMap builds the placeholder substitution map for one certificate.
// Attributes absent from the roster record map to the empty string.
func FieldMap(rec roster.Record, destination string, issuedAt time.Time) map[string]string {
	fields := make(map[string]string, len(templateFields)+2)
	for _, name := range templateFields {
		fields[name] = rec.Attributes[name]
	}
	if fields[roster.AttrFullName] == "" {
		fields[roster.AttrFullName] = rec.FullName
	}
	fields[FieldDestination] = destination
	fields[FieldDate] = issuedAt.Format(issueDateFormat)
	return fields
}
